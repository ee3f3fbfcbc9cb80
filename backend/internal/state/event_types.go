package state

import "strings"

// EventType is the normalized event category used by pricing tables
type EventType string

const (
	EventBirthday    EventType = "birthday"
	EventAnniversary EventType = "anniversary"
	EventCorporate   EventType = "corporate"
	EventGraduation  EventType = "graduation"
	EventOther       EventType = "other"
)

var eventTypeAliases = map[string]EventType{
	"birthday":            EventBirthday,
	"birthday party":      EventBirthday,
	"생일파티":                EventBirthday,
	"anniversary":         EventAnniversary,
	"wedding anniversary": EventAnniversary,
	"결혼기념일":               EventAnniversary,
	"corporate":           EventCorporate,
	"company party":       EventCorporate,
	"office party":        EventCorporate,
	"회사파티":                EventCorporate,
	"graduation":          EventGraduation,
	"graduation party":    EventGraduation,
	"졸업파티":                EventGraduation,
	"other":               EventOther,
	"기타":                  EventOther,
}

// NormalizeEventType maps a free-form event type to a known category.
// The second result is false when the input is not a recognized type.
func NormalizeEventType(raw string) (EventType, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.Join(strings.Fields(key), " ")
	if et, ok := eventTypeAliases[key]; ok {
		return et, true
	}
	return EventOther, false
}
