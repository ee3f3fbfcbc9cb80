package graph

import (
	"time"

	"party-planner/backend/internal/state"
)

// Guide is a reference note served to the planner as knowledge
type Guide struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// ArchivedPlan is a finalized plan read back from the graph
type ArchivedPlan struct {
	EventType  string           `json:"event_type"`
	GuestCount int              `json:"guest_count"`
	EventDate  time.Time        `json:"event_date"`
	Location   string           `json:"location,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Result     state.PlanResult `json:"result"`
}
