package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
)

const defaultSearchLimit = 5

// Search ranks guides by how many query terms appear in their title, content,
// category or tags. Score is the fraction of terms matched.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]state.KnowledgeSnippet, error) {
	terms := searchTerms(query)
	if len(terms) == 0 {
		return []state.KnowledgeSnippet{}, nil
	}
	if limit < 1 {
		limit = defaultSearchLimit
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	searchQuery := `
		MATCH (g:Guide)
		WITH g, size([t IN $terms WHERE
			toLower(g.title) CONTAINS t OR
			toLower(g.content) CONTAINS t OR
			toLower(g.category) CONTAINS t OR
			t IN [tag IN COALESCE(g.tags, []) | toLower(tag)]]) as hits
		WHERE hits > 0
		RETURN g.title as title, g.content as content, g.category as category,
		       toFloat(hits) / $termCount as score
		ORDER BY score DESC, g.title ASC
		LIMIT $limit
	`

	result, err := session.Run(ctx, searchQuery, map[string]interface{}{
		"terms":     terms,
		"termCount": float64(len(terms)),
		"limit":     limit,
	})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("search guides", err)
	}

	snippets := []state.KnowledgeSnippet{}
	for result.Next(ctx) {
		record := result.Record()
		snippets = append(snippets, state.KnowledgeSnippet{
			Title:    getStringFromRecord(record, "title"),
			Content:  getStringFromRecord(record, "content"),
			Category: getStringFromRecord(record, "category"),
			Score:    getFloat64FromRecord(record, "score"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("search guides", err)
	}
	return snippets, nil
}

// SeedGuides upserts guides by id and returns how many were written
func (r *Repository) SeedGuides(ctx context.Context, guides []Guide) (int, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	rows := make([]map[string]interface{}, 0, len(guides))
	for _, g := range guides {
		rows = append(rows, map[string]interface{}{
			"id":       g.ID,
			"title":    g.Title,
			"content":  g.Content,
			"category": g.Category,
			"tags":     g.Tags,
		})
	}

	query := `
		UNWIND $guides as row
		MERGE (g:Guide {id: row.id})
		SET g.title = row.title,
		    g.content = row.content,
		    g.category = row.category,
		    g.tags = row.tags,
		    g.updated_at = datetime()
		RETURN count(g) as written
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"guides": rows})
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("seed guides", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return 0, apperrors.NewGraphQueryFailed("seed guides", err)
	}
	written := getIntFromRecord(record, "written")

	r.logger.Info("Guides seeded", zap.Int("written", written))
	return written, nil
}

// ListGuides returns every stored guide ordered by category and title
func (r *Repository) ListGuides(ctx context.Context) ([]Guide, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (g:Guide)
		RETURN g.id as id, g.title as title, g.content as content,
		       g.category as category, g.tags as tags
		ORDER BY g.category, g.title
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("list guides", err)
	}

	guides := []Guide{}
	for result.Next(ctx) {
		record := result.Record()
		guides = append(guides, Guide{
			ID:       getStringFromRecord(record, "id"),
			Title:    getStringFromRecord(record, "title"),
			Content:  getStringFromRecord(record, "content"),
			Category: getStringFromRecord(record, "category"),
			Tags:     getStringSliceFromRecord(record, "tags"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed("list guides", err)
	}
	return guides, nil
}
