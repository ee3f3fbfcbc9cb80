package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Step labels the position of a PlanningRecord in the planning pipeline
type Step string

const (
	StepStart                Step = "start"
	StepRequirementsAnalyzed Step = "requirements_analyzed"
	StepKnowledgeSearched    Step = "knowledge_searched"
	StepPlanGenerated        Step = "plan_generated"
	StepTasksCreated         Step = "tasks_created"
	StepCostsEstimated       Step = "costs_estimated"
	StepTimelineCreated      Step = "timeline_created"
	StepPlanFinalized        Step = "plan_finalized"
)

// StepOrder is the only legal sequence of steps
var StepOrder = []Step{
	StepStart,
	StepRequirementsAnalyzed,
	StepKnowledgeSearched,
	StepPlanGenerated,
	StepTasksCreated,
	StepCostsEstimated,
	StepTimelineCreated,
	StepPlanFinalized,
}

// Index returns the position of s in StepOrder, or -1 for unknown labels
func (s Step) Index() int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether s is the final step
func (s Step) Terminal() bool {
	return s == StepPlanFinalized
}

// Role tags a message in the conversation trace
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation trace
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Priority ranks tasks, timeline entries and recommendations
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Task is one actionable item of the plan
type Task struct {
	Title         string   `json:"task"`
	Description   string   `json:"description"`
	Priority      Priority `json:"priority"`
	Deadline      string   `json:"deadline"`
	EstimatedTime string   `json:"estimated_time"`
	Responsible   string   `json:"responsible"`
}

// TimelineEntry is a dated milestone before the event
type TimelineEntry struct {
	Date           string   `json:"date"`
	DayDescription string   `json:"day_description"`
	Tasks          []string `json:"tasks"`
	Priority       Priority `json:"priority"`
}

// Recommendation is an advisory note attached to the final plan
type Recommendation struct {
	Category   string   `json:"category"`
	Suggestion string   `json:"suggestion"`
	Priority   Priority `json:"priority"`
}

// KnowledgeSnippet is a ranked piece of reference text from a knowledge source
type KnowledgeSnippet struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

// PlanRequest is the inbound planning request
type PlanRequest struct {
	EventType           string           `json:"event_type"`
	Budget              *decimal.Decimal `json:"budget,omitempty"`
	GuestCount          int              `json:"guest_count"`
	Date                time.Time        `json:"date"`
	Location            string           `json:"location,omitempty"`
	SpecialRequirements string           `json:"special_requirements,omitempty"`
	DietaryRestrictions []string         `json:"dietary_restrictions,omitempty"`
}

// Validate checks the fields the pipeline cannot plan without
func (r PlanRequest) Validate() error {
	if strings.TrimSpace(r.EventType) == "" {
		return ErrInvalidRequest{Field: "event_type", Reason: "cannot be empty"}
	}
	if r.GuestCount <= 0 {
		return ErrInvalidRequest{Field: "guest_count", Reason: "must be positive"}
	}
	if r.Date.IsZero() {
		return ErrInvalidRequest{Field: "date", Reason: "is required"}
	}
	if r.Budget != nil && r.Budget.IsNegative() {
		return ErrInvalidRequest{Field: "budget", Reason: "must not be negative"}
	}
	return nil
}

// PlanResult is the outbound projection of a finalized PlanningRecord
type PlanResult struct {
	PlanID          string           `json:"plan_id"`
	OverallPlan     string           `json:"overall_plan"`
	Tasks           []Task           `json:"tasks"`
	EstimatedCost   *float64         `json:"estimated_cost"`
	Timeline        []TimelineEntry  `json:"timeline"`
	Recommendations []Recommendation `json:"recommendations"`
}

// PlanningRecord accumulates every stage output for a single planning run.
// Input fields are set once by NewPlanningRecord; each derived field is written by one stage.
type PlanningRecord struct {
	EventType           string
	Budget              *decimal.Decimal
	GuestCount          int
	Date                time.Time
	Zone                *time.Location
	Location            string
	SpecialRequirements string
	DietaryRestrictions []string

	Messages []Message

	KnowledgeContext string
	OverallPlan      string
	Tasks            []Task
	EstimatedCost    *decimal.Decimal
	Timeline         []TimelineEntry
	Recommendations  []Recommendation
	PlanID           string
	CurrentStep      Step
	IterationCount   int
}

// NewPlanningRecord builds the initial record for a request. The event date is normalized to UTC;
// the request's zone is kept in Zone so calendar dates render as the caller typed them.
func NewPlanningRecord(req PlanRequest) PlanningRecord {
	rec := PlanningRecord{
		EventType:           strings.TrimSpace(req.EventType),
		GuestCount:          req.GuestCount,
		Date:                req.Date.UTC(),
		Zone:                req.Date.Location(),
		Location:            strings.TrimSpace(req.Location),
		SpecialRequirements: strings.TrimSpace(req.SpecialRequirements),
		DietaryRestrictions: append([]string(nil), req.DietaryRestrictions...),
		CurrentStep:         StepStart,
	}
	if req.Budget != nil {
		b := *req.Budget
		rec.Budget = &b
	}
	return rec
}

// Clone returns a deep copy so a stage never shares backing arrays with its input
func (r PlanningRecord) Clone() PlanningRecord {
	out := r
	out.DietaryRestrictions = append([]string(nil), r.DietaryRestrictions...)
	out.Messages = append([]Message(nil), r.Messages...)
	out.Tasks = append([]Task(nil), r.Tasks...)
	out.Recommendations = append([]Recommendation(nil), r.Recommendations...)
	out.Timeline = make([]TimelineEntry, len(r.Timeline))
	for i, entry := range r.Timeline {
		entry.Tasks = append([]string(nil), entry.Tasks...)
		out.Timeline[i] = entry
	}
	if r.Timeline == nil {
		out.Timeline = nil
	}
	if r.Budget != nil {
		b := *r.Budget
		out.Budget = &b
	}
	if r.EstimatedCost != nil {
		c := *r.EstimatedCost
		out.EstimatedCost = &c
	}
	return out
}

// LocalDate returns the event date in the zone the request was made in
func (r PlanningRecord) LocalDate() time.Time {
	if r.Zone == nil {
		return r.Date
	}
	return r.Date.In(r.Zone)
}

// LastAssistantMessage returns the content of the most recent assistant message, or ""
func (r PlanningRecord) LastAssistantMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleAssistant {
			return r.Messages[i].Content
		}
	}
	return ""
}

// Result projects the record into the outbound result
func (r PlanningRecord) Result() PlanResult {
	res := PlanResult{
		PlanID:          r.PlanID,
		OverallPlan:     r.OverallPlan,
		Tasks:           r.Tasks,
		Timeline:        r.Timeline,
		Recommendations: r.Recommendations,
	}
	if r.EstimatedCost != nil && !r.EstimatedCost.IsZero() {
		cost := r.EstimatedCost.InexactFloat64()
		res.EstimatedCost = &cost
	}
	return res
}

// Errors

type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return fmt.Sprintf("invalid plan request: %s %s", e.Field, e.Reason)
}
