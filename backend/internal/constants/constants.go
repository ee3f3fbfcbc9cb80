package constants

// Tool provider constants
const (
	// EventProviderName is the registry name of the event-domain provider
	EventProviderName = "event_planning"
	// EventDomain is the domain tag the event-domain provider answers to
	EventDomain = "event_planning"
)

// Planning constants
const (
	// DefaultLocation is used for venue search when a request names no location
	DefaultLocation = "Seoul"
	// DefaultKnowledgeLimit caps the number of snippets merged from the knowledge source
	DefaultKnowledgeLimit = 5
	// DateLayout is the calendar date format used in timelines and tool arguments
	DateLayout = "2006-01-02"
)

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000
)
