package tools

import (
	"context"
	"strings"
	"time"

	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/state"
)

// Timeline complexity tiers
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// Milestone is one checklist item ahead of the party
type Milestone struct {
	WeeksBefore int    `json:"weeks_before,omitempty"`
	DaysBefore  int    `json:"days_before,omitempty"`
	DueDate     string `json:"due_date"`
	Task        string `json:"task"`
}

func (m Milestone) leadDays() int {
	return m.WeeksBefore*7 + m.DaysBefore
}

// TimelinePlan is the output of generate_timeline
type TimelinePlan struct {
	PartyDate  string      `json:"party_date"`
	Complexity string      `json:"complexity"`
	Timeline   []Milestone `json:"timeline"`
}

type timelineArgs struct {
	PartyDate  string `json:"party_date"`
	Complexity string `json:"complexity"`
}

var timelineTables = map[string][]Milestone{
	ComplexitySimple: {
		{WeeksBefore: 1, Task: "Book the venue and send invitations"},
		{DaysBefore: 3, Task: "Order food and buy decorations"},
		{DaysBefore: 1, Task: "Final preparation and setup"},
	},
	ComplexityModerate: {
		{WeeksBefore: 3, Task: "Set the budget and decide the concept"},
		{WeeksBefore: 2, Task: "Book the venue and order catering"},
		{DaysBefore: 10, Task: "Send invitations"},
		{DaysBefore: 5, Task: "Buy decorations and supplies"},
		{DaysBefore: 2, Task: "Final confirmation and preparation"},
		{DaysBefore: 1, Task: "Setup and rehearsal"},
	},
	ComplexityComplex: {
		{WeeksBefore: 6, Task: "Draft the overall plan and set the budget"},
		{WeeksBefore: 4, Task: "Book the venue and sign key vendors"},
		{WeeksBefore: 3, Task: "Design and send invitations"},
		{WeeksBefore: 2, Task: "Lock the detailed plan and place final orders"},
		{DaysBefore: 10, Task: "Prepare decorations and plan the rehearsal"},
		{DaysBefore: 5, Task: "Final review and adjustments"},
		{DaysBefore: 2, Task: "Start setup"},
		{DaysBefore: 1, Task: "Final rehearsal and check"},
	},
}

// generateTimeline looks up the checklist for the complexity tier, falling back to
// moderate for unknown tiers, and stamps each item with its due date.
func generateTimeline(_ context.Context, args timelineArgs) (TimelinePlan, error) {
	partyDate, err := ParseEventDate(args.PartyDate)
	if err != nil {
		return TimelinePlan{}, err
	}

	complexity := strings.ToLower(strings.TrimSpace(args.Complexity))
	table, ok := timelineTables[complexity]
	if !ok {
		complexity = ComplexityModerate
		table = timelineTables[complexity]
	}

	milestones := make([]Milestone, len(table))
	for i, m := range table {
		m.DueDate = partyDate.AddDate(0, 0, -m.leadDays()).Format(constants.DateLayout)
		milestones[i] = m
	}
	return TimelinePlan{
		PartyDate:  partyDate.Format(constants.DateLayout),
		Complexity: complexity,
		Timeline:   milestones,
	}, nil
}

// ParseEventDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp and
// returns it in UTC
func ParseEventDate(raw string) (time.Time, error) {
	t, err := state.ParseDate(raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
