package tools

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"party-planner/backend/internal/constants"
)

const (
	baseRelevance    = 0.5
	keywordBonus     = 0.3
	guestCountBonus  = 0.2
	budgetBonus      = 0.2
	maxRelevance     = 1.0
	contextDomainKey = "domain"
)

// domainKeywords lists the words that mark a tool as relevant to a domain
var domainKeywords = map[string][]string{
	constants.EventDomain: {"party", "venue", "catering", "budget", "timeline"},
}

var (
	guestCountKeys = []string{"guest_count", "guests", "capacity"}
	budgetKeys     = []string{"budget", "budget_max", "budget_per_person"}
)

// ToolRecommendation is one ranked tool suggestion
type ToolRecommendation struct {
	Provider       string         `json:"provider"`
	Tool           ToolDescriptor `json:"tool"`
	RelevanceScore float64        `json:"relevance_score"`
}

// RecommendTools scores the tools of every provider whose domain matches the context's
// "domain" value and returns them best first. Equal scores keep registration order.
func (r *Registry) RecommendTools(context map[string]interface{}) []ToolRecommendation {
	domain, _ := context[contextDomainKey].(string)
	recommendations := []ToolRecommendation{}
	if domain == "" {
		return recommendations
	}

	for _, np := range r.snapshot() {
		if np.provider.Domain() != domain {
			continue
		}
		for _, tool := range np.provider.ListTools() {
			recommendations = append(recommendations, ToolRecommendation{
				Provider:       np.name,
				Tool:           tool,
				RelevanceScore: relevance(tool, domainKeywords[domain], context),
			})
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RelevanceScore > recommendations[j].RelevanceScore
	})
	return recommendations
}

func relevance(tool ToolDescriptor, keywords []string, context map[string]interface{}) float64 {
	name := strings.ToLower(tool.Name)
	description := strings.ToLower(tool.Description)

	score := baseRelevance
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(description, kw) {
			score += keywordBonus
			break
		}
	}
	if anyPresent(context, guestCountKeys) && strings.Contains(description, "guest") {
		score += guestCountBonus
	}
	if anyPresent(context, budgetKeys) && strings.Contains(name, "budget") {
		score += budgetBonus
	}
	return math.Min(score, maxRelevance)
}

func anyPresent(context map[string]interface{}, keys []string) bool {
	for _, k := range keys {
		if present(context[k]) {
			return true
		}
	}
	return false
}

// present reports whether a context value is set to something meaningful
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}
