package tools

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"party-planner/backend/internal/state"
)

var (
	defaultVenuePerGuest      = decimal.NewFromInt(5000)
	defaultCateringPerGuest   = decimal.NewFromInt(25000)
	defaultDecorationPerGuest = decimal.NewFromInt(2000)
	decorationDefaultCap      = decimal.NewFromInt(100000)
	taxRate                   = decimal.NewFromFloat(0.10)
)

// partyMultipliers scales every cost line by event type; unlisted types use 1.0
var partyMultipliers = map[state.EventType]decimal.Decimal{
	state.EventBirthday:    decimal.NewFromFloat(1.0),
	state.EventAnniversary: decimal.NewFromFloat(1.5),
	state.EventCorporate:   decimal.NewFromFloat(1.2),
	state.EventGraduation:  decimal.NewFromFloat(0.8),
}

// BudgetBreakdown itemizes a budget after the party-type multiplier
type BudgetBreakdown struct {
	Venue      float64 `json:"venue"`
	Catering   float64 `json:"catering"`
	Decoration float64 `json:"decoration"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// BudgetEstimate is the output of calculate_budget
type BudgetEstimate struct {
	Breakdown  BudgetBreakdown `json:"breakdown"`
	Multiplier float64         `json:"multiplier"`
	PerPerson  float64         `json:"per_person"`
}

type budgetArgs struct {
	GuestCount     int              `json:"guest_count"`
	PartyType      string           `json:"party_type"`
	VenueCost      *decimal.Decimal `json:"venue_cost"`
	CateringCost   *decimal.Decimal `json:"catering_cost"`
	DecorationCost *decimal.Decimal `json:"decoration_cost"`
}

func calculateBudget(_ context.Context, args budgetArgs) (BudgetEstimate, error) {
	if args.GuestCount <= 0 {
		return BudgetEstimate{}, errors.New("guest_count must be positive")
	}
	guests := decimal.NewFromInt(int64(args.GuestCount))

	venue := orDefault(args.VenueCost, guests.Mul(defaultVenuePerGuest))
	catering := orDefault(args.CateringCost, guests.Mul(defaultCateringPerGuest))
	decoration := orDefault(args.DecorationCost, decimal.Min(decorationDefaultCap, guests.Mul(defaultDecorationPerGuest)))

	multiplier := decimal.NewFromInt(1)
	if et, ok := state.NormalizeEventType(args.PartyType); ok {
		if m, found := partyMultipliers[et]; found {
			multiplier = m
		}
	}

	subtotal := venue.Add(catering).Add(decoration).Mul(multiplier)
	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(tax)

	return BudgetEstimate{
		Breakdown: BudgetBreakdown{
			Venue:      money(venue.Mul(multiplier)),
			Catering:   money(catering.Mul(multiplier)),
			Decoration: money(decoration.Mul(multiplier)),
			Subtotal:   money(subtotal),
			Tax:        money(tax),
			Total:      money(total),
		},
		Multiplier: multiplier.InexactFloat64(),
		PerPerson:  money(total.Div(guests)),
	}, nil
}

func orDefault(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}

// money rounds to two decimal places
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
