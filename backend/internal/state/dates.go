package state

import (
	"fmt"
	"strings"
	"time"

	"party-planner/backend/internal/constants"
)

// ParseDate accepts a calendar date (YYYY-MM-DD), read as midnight in loc, or an RFC 3339 timestamp
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(constants.DateLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
}
