package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

const defaultVenueRateCeiling = 300000

// Venue is one venue search hit
type Venue struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Capacity   int      `json:"capacity"`
	HourlyRate float64  `json:"hourly_rate"`
	Rating     float64  `json:"rating"`
	Amenities  []string `json:"amenities"`
}

// VenueSearchResult is the output of search_venues
type VenueSearchResult struct {
	Venues []Venue `json:"venues"`
}

type venueSearchArgs struct {
	Location  string   `json:"location"`
	Capacity  int      `json:"capacity"`
	BudgetMax *float64 `json:"budget_max"`
}

type venueTemplate struct {
	suffix    string
	extraSeat int
	listRate  float64
	rating    float64
	amenities []string
}

var venueTemplates = []venueTemplate{
	{suffix: "Party Room A", extraSeat: 10, listRate: 200000, rating: 4.5, amenities: []string{"sound system", "parking", "catering support"}},
	{suffix: "Community Center", extraSeat: 20, listRate: 150000, rating: 4.2, amenities: []string{"open floor", "parking", "kitchen"}},
}

// searchVenues returns synthetic venues sized for capacity. Rates are capped at the
// default ceiling; with a positive budget_max, venues charging more are dropped.
func searchVenues(_ context.Context, args venueSearchArgs) (VenueSearchResult, error) {
	location := strings.TrimSpace(args.Location)
	if location == "" {
		return VenueSearchResult{}, errors.New("location must not be empty")
	}

	venues := make([]Venue, 0, len(venueTemplates))
	for _, t := range venueTemplates {
		v := Venue{
			Name:       fmt.Sprintf("%s %s", location, t.suffix),
			Location:   location,
			Capacity:   args.Capacity + t.extraSeat,
			HourlyRate: math.Min(defaultVenueRateCeiling, t.listRate),
			Rating:     t.rating,
			Amenities:  append([]string(nil), t.amenities...),
		}
		if limited(args.BudgetMax) && v.HourlyRate > *args.BudgetMax {
			continue
		}
		venues = append(venues, v)
	}
	return VenueSearchResult{Venues: venues}, nil
}

// limited reports whether an optional price cap is set. Zero means no cap.
func limited(ceiling *float64) bool {
	return ceiling != nil && *ceiling > 0
}
