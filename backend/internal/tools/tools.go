package tools

// Tool names - Event Planning Tools
const (
	ToolSearchVenues       = "search_venues"
	ToolGetCateringOptions = "get_catering_options"
	ToolCheckWeather       = "check_weather"
	ToolCalculateBudget    = "calculate_budget"
	ToolGenerateTimeline   = "generate_timeline"
)

// Resource URIs served by the event-domain provider
const (
	ResourceVenueDatabase     = "party://venues/database"
	ResourceCateringMenu      = "party://catering/menu"
	ResourceDecorationCatalog = "party://decorations/catalog"
)

// ParameterSpec describes one tool parameter
type ParameterSpec struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Items       *ParameterSpec `json:"items,omitempty"`
	Minimum     *float64       `json:"minimum,omitempty"`
}

// ToolDescriptor advertises a callable tool
type ToolDescriptor struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  map[string]ParameterSpec `json:"parameters"`
	Required    []string                 `json:"required"`
}

// InputSchema renders the descriptor as a JSON Schema object
func (d ToolDescriptor) InputSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(d.Parameters))
	for name, spec := range d.Parameters {
		properties[name] = spec
	}
	required := d.Required
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ResourceDescriptor advertises a readable document
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mime_type,omitempty"`
}

// Result is the structured output of a tool call. Failed calls carry an "error" key.
type Result map[string]interface{}

func errorResult(message string) Result {
	return Result{"error": message}
}

// ErrorMessage returns the error carried by a failed result
func (r Result) ErrorMessage() (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r["error"]
	if !ok {
		return "", false
	}
	msg, _ := v.(string)
	return msg, true
}

func minimum(v float64) *float64 {
	return &v
}

// eventToolDescriptors returns the tools advertised by the event-domain provider
func eventToolDescriptors() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:        ToolSearchVenues,
			Description: "Search party venues in an area that can hold the requested capacity, optionally under a maximum hourly rate.",
			Parameters: map[string]ParameterSpec{
				"location":   {Type: "string", Description: "Area to search in"},
				"capacity":   {Type: "integer", Description: "Minimum number of people the venue must hold", Minimum: minimum(1)},
				"budget_max": {Type: "number", Description: "Maximum hourly rate", Minimum: minimum(0)},
			},
			Required: []string{"location", "capacity"},
		},
		{
			Name:        ToolGetCateringOptions,
			Description: "Search catering packages that can serve the requested number of guests, filtered by cuisine, price per person and dietary options.",
			Parameters: map[string]ParameterSpec{
				"guest_count":          {Type: "integer", Description: "Number of guests to serve", Minimum: minimum(1)},
				"cuisine_type":         {Type: "string", Description: "Cuisine (korean, western, international)"},
				"budget_per_person":    {Type: "number", Description: "Maximum price per person", Minimum: minimum(0)},
				"dietary_restrictions": {Type: "array", Description: "Dietary tags the package should support", Items: &ParameterSpec{Type: "string", Description: "Dietary tag"}},
			},
			Required: []string{"guest_count"},
		},
		{
			Name:        ToolCheckWeather,
			Description: "Check the forecast for a date and area (for outdoor party planning).",
			Parameters: map[string]ParameterSpec{
				"date":     {Type: "string", Description: "Date (YYYY-MM-DD)"},
				"location": {Type: "string", Description: "Area"},
			},
			Required: []string{"date", "location"},
		},
		{
			Name:        ToolCalculateBudget,
			Description: "Calculate a party budget breakdown with tax and the cost per guest.",
			Parameters: map[string]ParameterSpec{
				"guest_count":     {Type: "integer", Description: "Number of guests", Minimum: minimum(1)},
				"party_type":      {Type: "string", Description: "Party type (birthday, anniversary, corporate, graduation)"},
				"venue_cost":      {Type: "number", Description: "Venue cost", Minimum: minimum(0)},
				"catering_cost":   {Type: "number", Description: "Food and drink cost", Minimum: minimum(0)},
				"decoration_cost": {Type: "number", Description: "Decoration cost", Minimum: minimum(0)},
			},
			Required: []string{"guest_count"},
		},
		{
			Name:        ToolGenerateTimeline,
			Description: "Generate a preparation timeline for a party date. Complexity is one of simple, moderate or complex.",
			Parameters: map[string]ParameterSpec{
				"party_date": {Type: "string", Description: "Party date (YYYY-MM-DD)"},
				"complexity": {Type: "string", Description: "simple, moderate or complex (defaults to moderate)"},
			},
			Required: []string{"party_date"},
		},
	}
}

// eventResourceDescriptors returns the documents served by the event-domain provider
func eventResourceDescriptors() []ResourceDescriptor {
	return []ResourceDescriptor{
		{URI: ResourceVenueDatabase, Name: "Venue Database", Description: "Reference list of party venues", MimeType: "application/json"},
		{URI: ResourceCateringMenu, Name: "Catering Menu", Description: "Catering menu reference", MimeType: "application/json"},
		{URI: ResourceDecorationCatalog, Name: "Decoration Catalog", Description: "Decoration packages and prices", MimeType: "application/json"},
	}
}
