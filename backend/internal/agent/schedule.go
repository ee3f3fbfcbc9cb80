package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"party-planner/backend/internal/constants"
	"party-planner/backend/internal/state"
)

var perPersonCost = map[state.EventType]int64{
	state.EventBirthday:    25000,
	state.EventAnniversary: 60000,
	state.EventCorporate:   45000,
	state.EventGraduation:  20000,
	state.EventOther:       30000,
}

const defaultPerPersonCost = 30000

// venueCost returns the flat venue charge for a party size
func venueCost(guests int) decimal.Decimal {
	switch {
	case guests <= 10:
		return decimal.NewFromInt(100000)
	case guests <= 30:
		return decimal.NewFromInt(300000)
	case guests <= 50:
		return decimal.NewFromInt(500000)
	default:
		return decimal.NewFromInt(1000000)
	}
}

// estimateCosts prices the party from the per-person table plus the venue tier.
// A positive budget caps the total; the itemization is not rescaled.
func (p *Pipeline) estimateCosts(_ context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	rate := int64(defaultPerPersonCost)
	if et, ok := state.NormalizeEventType(rec.EventType); ok {
		rate = perPersonCost[et]
	}

	base := decimal.NewFromInt(rate).Mul(decimal.NewFromInt(int64(rec.GuestCount)))
	total := base.Add(venueCost(rec.GuestCount))
	if rec.Budget != nil && rec.Budget.IsPositive() && total.GreaterThan(*rec.Budget) {
		p.logger.Info("Estimate exceeds budget, capping",
			zap.String("estimate", total.String()),
			zap.String("budget", rec.Budget.String()),
		)
		total = *rec.Budget
	}

	rec.EstimatedCost = &total
	rec.CurrentStep = state.StepCostsEstimated
	return rec, nil
}

type milestone struct {
	daysBefore int
	tasks      []string
	priority   state.Priority
}

// milestones are ordered earliest first; the day-of entry is always emitted
var milestones = []milestone{
	{daysBefore: 14, tasks: []string{"Confirm the final plan", "Book the venue", "Prepare invitations"}, priority: state.PriorityHigh},
	{daysBefore: 7, tasks: []string{"Order food and catering", "Confirm the final headcount", "Buy decorations"}, priority: state.PriorityHigh},
	{daysBefore: 3, tasks: []string{"Final venue check", "Prepare decoration setup", "Confirm food pickup or delivery"}, priority: state.PriorityMedium},
	{daysBefore: 1, tasks: []string{"Install decorations", "Final food preparation", "Set up the venue"}, priority: state.PriorityHigh},
	{daysBefore: 0, tasks: []string{"Final setup check", "Run the event", "Clean up"}, priority: state.PriorityCritical},
}

// daysUntil counts whole days from now to the event, both taken in UTC
func daysUntil(now, event time.Time) int {
	return int(math.Floor(event.UTC().Sub(now.UTC()).Hours() / 24))
}

func (p *Pipeline) createTimeline(_ context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	lead := daysUntil(p.now(), rec.Date)

	timeline := make([]state.TimelineEntry, 0, len(milestones))
	for _, m := range milestones {
		if m.daysBefore > 0 && lead < m.daysBefore {
			continue
		}
		timeline = append(timeline, state.TimelineEntry{
			Date:           rec.LocalDate().AddDate(0, 0, -m.daysBefore).Format(constants.DateLayout),
			DayDescription: dayLabel(m.daysBefore),
			Tasks:          append([]string(nil), m.tasks...),
			Priority:       m.priority,
		})
	}

	rec.Timeline = timeline
	rec.CurrentStep = state.StepTimelineCreated
	return rec, nil
}

func dayLabel(daysBefore int) string {
	if daysBefore == 0 {
		return "D-Day"
	}
	return fmt.Sprintf("D-%d", daysBefore)
}

var standingRecommendations = []state.Recommendation{
	{Category: "Cost saving", Suggestion: "Do the parts you can yourself to keep costs down", Priority: state.PriorityMedium},
	{Category: "Success tip", Suggestion: "Start preparing two weeks ahead and work in stages to avoid last-minute stress", Priority: state.PriorityHigh},
	{Category: "Contingency", Suggestion: "Keep a plan B ready for bad weather and other surprises", Priority: state.PriorityMedium},
}

func (p *Pipeline) finalizePlan(_ context.Context, rec state.PlanningRecord) (state.PlanningRecord, error) {
	recs := append([]state.Recommendation(nil), standingRecommendations...)
	if len(rec.DietaryRestrictions) > 0 {
		recs = append(recs, state.Recommendation{
			Category:   "Dietary needs",
			Suggestion: fmt.Sprintf("Make sure the menu accounts for the dietary restrictions (%s)", strings.Join(rec.DietaryRestrictions, ", ")),
			Priority:   state.PriorityHigh,
		})
	}

	rec.Recommendations = recs
	rec.PlanID = p.newID()
	rec.CurrentStep = state.StepPlanFinalized
	return rec, nil
}

func newPlanID() string {
	return uuid.NewString()
}
