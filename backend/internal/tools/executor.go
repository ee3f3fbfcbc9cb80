package tools

// The event-planning provider is split by concern:
//
// Core:
// - executor_core.go: EventProvider, handler binding, CallTool dispatch and panic recovery
// - schema.go: per-tool JSON Schema compilation and argument validation
// - registry.go: Registry, the provider-keyed dispatcher shared by the pipeline and the APIs
// - recommend.go: relevance scoring for RecommendTools
//
// Tool implementations:
// - venue_tool.go: search_venues
// - catering_tool.go: get_catering_options
// - weather_tool.go: check_weather
// - budget_tool.go: calculate_budget
// - timeline_tool.go: generate_timeline
//
// Static documents:
// - resources.go: party:// resource bodies served by ReadResource
