package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"party-planner/backend/internal/state"
)

// Usage is sent back when a command cannot be parsed
const Usage = "Usage: `!plan <event type> guests=<n> date=YYYY-MM-DD [budget=<krw>] [location=<place>] [diet=a,b] [req=\"...\"]`"

// ParsePlanCommand turns a chat command into a PlanRequest.
// Bare words before the first key=value pair form the event type; quoted values may contain spaces.
// Dates without an offset are read in loc.
func ParsePlanCommand(content, prefix string, loc *time.Location) (state.PlanRequest, error) {
	var req state.PlanRequest

	content = strings.TrimSpace(norm.NFC.String(content))
	if !strings.HasPrefix(content, prefix) {
		return req, fmt.Errorf("missing %s prefix", prefix)
	}
	if loc == nil {
		loc = time.UTC
	}

	tokens, err := tokenize(strings.TrimPrefix(content, prefix))
	if err != nil {
		return req, err
	}

	var typeWords []string
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			typeWords = append(typeWords, tok)
			continue
		}

		switch strings.ToLower(key) {
		case "guests", "guest_count":
			n, err := strconv.Atoi(value)
			if err != nil {
				return req, fmt.Errorf("guests must be a whole number: %q", value)
			}
			req.GuestCount = n
		case "date":
			d, err := state.ParseDate(value, loc)
			if err != nil {
				return req, err
			}
			req.Date = d
		case "budget":
			b, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
			if err != nil {
				return req, fmt.Errorf("budget must be a number: %q", value)
			}
			req.Budget = &b
		case "location", "loc":
			req.Location = value
		case "diet", "dietary":
			for _, d := range strings.Split(value, ",") {
				if d = strings.TrimSpace(d); d != "" {
					req.DietaryRestrictions = append(req.DietaryRestrictions, d)
				}
			}
		case "req", "requirements":
			req.SpecialRequirements = value
		case "type":
			typeWords = append(typeWords, value)
		default:
			return req, fmt.Errorf("unknown option %q", key)
		}
	}

	req.EventType = strings.Join(typeWords, " ")
	return req, req.Validate()
}

// tokenize splits on whitespace, keeping double-quoted runs together and dropping the quotes
func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
