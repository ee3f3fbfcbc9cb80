package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"party-planner/backend/internal/state"
	apperrors "party-planner/backend/pkg/errors"
	"party-planner/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
}

// Connect opens a driver for uri and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (*Repository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("connect", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphQueryFailed("verify connectivity", err)
	}
	return NewRepository(driver), nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureConstraints creates the uniqueness constraints the repository relies on
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	statements := []string{
		`CREATE CONSTRAINT plan_id IF NOT EXISTS FOR (p:Plan) REQUIRE p.id IS UNIQUE`,
		`CREATE CONSTRAINT guide_id IF NOT EXISTS FOR (g:Guide) REQUIRE g.id IS UNIQUE`,
		`CREATE CONSTRAINT event_type_name IF NOT EXISTS FOR (e:EventType) REQUIRE e.name IS UNIQUE`,
	}
	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return apperrors.NewGraphQueryFailed("ensure constraints", err)
		}
	}
	return nil
}

// SavePlan archives a finalized planning record, linking it to its event type
func (r *Repository) SavePlan(ctx context.Context, rec state.PlanningRecord) error {
	if rec.PlanID == "" {
		return fmt.Errorf("save plan: record has no plan id")
	}
	resultJSON, err := json.Marshal(rec.Result())
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	eventType, _ := state.NormalizeEventType(rec.EventType)

	query := `
		MERGE (e:EventType {name: $eventType})
		MERGE (p:Plan {id: $planID})
		SET p.event_type = $rawEventType,
		    p.guest_count = $guestCount,
		    p.event_date = datetime($eventDate),
		    p.location = $location,
		    p.result_json = $resultJSON,
		    p.created_at = datetime()
		MERGE (p)-[:FOR_EVENT]->(e)
		RETURN p.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"eventType":    string(eventType),
		"planID":       rec.PlanID,
		"rawEventType": rec.EventType,
		"guestCount":   rec.GuestCount,
		"eventDate":    rec.Date.UTC().Format(time.RFC3339),
		"location":     rec.Location,
		"resultJSON":   string(resultJSON),
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("save plan", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return apperrors.NewGraphQueryFailed("save plan", err)
	}

	r.logger.Info("Plan archived",
		zap.String("plan_id", rec.PlanID),
		zap.String("event_type", string(eventType)),
	)
	return nil
}

// GetPlan reads an archived plan by id
func (r *Repository) GetPlan(ctx context.Context, planID string) (*ArchivedPlan, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Plan {id: $planID})
		RETURN p.event_type as event_type,
		       p.guest_count as guest_count,
		       toString(p.event_date) as event_date,
		       p.location as location,
		       toString(p.created_at) as created_at,
		       p.result_json as result_json
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"planID": planID})
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed("get plan", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewGraphQueryFailed("get plan", err)
		}
		return nil, apperrors.NewPlanNotFound(planID)
	}

	record := result.Record()
	plan := &ArchivedPlan{
		EventType:  getStringFromRecord(record, "event_type"),
		GuestCount: getIntFromRecord(record, "guest_count"),
		EventDate:  getTimeFromRecord(record, "event_date"),
		Location:   getStringFromRecord(record, "location"),
		CreatedAt:  getTimeFromRecord(record, "created_at"),
	}
	if err := json.Unmarshal([]byte(getStringFromRecord(record, "result_json")), &plan.Result); err != nil {
		return nil, apperrors.NewGraphQueryFailed("decode plan", err)
	}
	return plan, nil
}
