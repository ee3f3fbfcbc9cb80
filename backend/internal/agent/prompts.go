package agent

import (
	"fmt"
	"strings"

	"party-planner/backend/internal/state"
)

const requirementsSystemPrompt = `You are a professional event planner.
Analyze the client's request and identify the key points for planning the event.

Cover:
1. The main purpose and mood of the event
2. Budget range and priorities
3. Who is attending (ages, relationships)
4. Special requirements or constraints
5. Dietary considerations

Keep the analysis short and clear.`

const planSystemPrompt = `You are a professional event planner.
Using the client's requirements and the reference information, write a concrete, actionable event plan.

Include:
1. Overall concept and mood
2. Recommended venue and why
3. Food and drink
4. Decorations and atmosphere
5. Activities and program
6. Caveats and tips

Be practical and specific.`

const tasksSystemPrompt = `Turn the event plan into a concrete task list.
Return the tasks as a JSON array in exactly this format:

[
  {
    "task": "task title",
    "description": "details",
    "priority": "high/medium/low",
    "deadline": "deadline relative to the event (D-14, D-7, ...)",
    "estimated_time": "expected duration",
    "responsible": "owner (self/vendor/other)"
  }
]

Set priorities and deadlines relative to the event date.`

const briefDateLayout = "January 2, 2006"

// requirementsBrief renders the request fields as the first human message
func requirementsBrief(rec state.PlanningRecord) string {
	budget := "undecided"
	if rec.Budget != nil {
		budget = rec.Budget.StringFixed(0) + " KRW"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Event type: %s\n", rec.EventType)
	fmt.Fprintf(&b, "Budget: %s\n", budget)
	fmt.Fprintf(&b, "Guests: %d\n", rec.GuestCount)
	fmt.Fprintf(&b, "Date: %s\n", rec.LocalDate().Format(briefDateLayout))
	fmt.Fprintf(&b, "Location: %s\n", orDefault(rec.Location, "undecided"))
	fmt.Fprintf(&b, "Special requirements: %s\n", orDefault(rec.SpecialRequirements, "none"))
	fmt.Fprintf(&b, "Dietary restrictions: %s\n", orDefault(strings.Join(rec.DietaryRestrictions, ", "), "none"))
	return b.String()
}

func planPrompt(rec state.PlanningRecord) string {
	return fmt.Sprintf(`Requirements analysis:
%s

Reference information:
%s

Using the information above, write the complete plan for this %s.`,
		rec.LastAssistantMessage(), rec.KnowledgeContext, rec.EventType)
}

func tasksPrompt(rec state.PlanningRecord) string {
	return fmt.Sprintf(`Event plan:
%s

Event date: %s

Create the concrete task list needed to carry out this plan.`,
		rec.OverallPlan, rec.LocalDate().Format(briefDateLayout))
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
