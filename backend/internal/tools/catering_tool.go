package tools

import (
	"context"
	"strings"
)

// CateringPackage is one entry of the catering catalog
type CateringPackage struct {
	Name           string   `json:"name"`
	PricePerPerson float64  `json:"price_per_person"`
	Cuisine        string   `json:"cuisine"`
	DietaryOptions []string `json:"dietary_options"`
	MinimumOrder   int      `json:"minimum_order"`
}

// CateringSearchResult is the output of get_catering_options
type CateringSearchResult struct {
	Options []CateringPackage `json:"catering_options"`
}

type cateringArgs struct {
	GuestCount          int      `json:"guest_count"`
	CuisineType         string   `json:"cuisine_type"`
	BudgetPerPerson     *float64 `json:"budget_per_person"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

var cateringCatalog = []CateringPackage{
	{Name: "Premium Buffet", PricePerPerson: 35000, Cuisine: "international", DietaryOptions: []string{"vegetarian", "halal"}, MinimumOrder: 20},
	{Name: "Lunch Box Set", PricePerPerson: 15000, Cuisine: "korean", DietaryOptions: []string{"vegetarian"}, MinimumOrder: 10},
	{Name: "Party Platter", PricePerPerson: 25000, Cuisine: "western", DietaryOptions: []string{"vegetarian", "vegan"}, MinimumOrder: 15},
}

func getCateringOptions(_ context.Context, args cateringArgs) (CateringSearchResult, error) {
	cuisine := strings.ToLower(strings.TrimSpace(args.CuisineType))

	options := []CateringPackage{}
	for _, pkg := range cateringCatalog {
		if limited(args.BudgetPerPerson) && pkg.PricePerPerson > *args.BudgetPerPerson {
			continue
		}
		if cuisine != "" && pkg.Cuisine != cuisine {
			continue
		}
		if len(args.DietaryRestrictions) > 0 && !overlaps(pkg.DietaryOptions, args.DietaryRestrictions) {
			continue
		}
		if args.GuestCount < pkg.MinimumOrder {
			continue
		}
		pkg.DietaryOptions = append([]string(nil), pkg.DietaryOptions...)
		options = append(options, pkg)
	}
	return CateringSearchResult{Options: options}, nil
}

func overlaps(offered, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		for _, o := range offered {
			if o == w {
				return true
			}
		}
	}
	return false
}
