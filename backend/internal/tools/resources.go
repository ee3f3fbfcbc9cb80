package tools

// Static reference documents served by ReadResource

type referenceVenue struct {
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Capacity     int      `json:"capacity"`
	PricePerHour float64  `json:"price_per_hour"`
	Amenities    []string `json:"amenities"`
}

type referenceMenu struct {
	Name           string   `json:"name"`
	PricePerPerson float64  `json:"price_per_person"`
	Cuisine        string   `json:"cuisine"`
	DietaryOptions []string `json:"dietary_options"`
}

type decorationPackage struct {
	Name     string   `json:"name"`
	Theme    string   `json:"theme"`
	Price    float64  `json:"price"`
	Includes []string `json:"includes"`
}

var resourceDocuments = map[string]interface{}{
	ResourceVenueDatabase: map[string][]referenceVenue{
		"venues": {
			{Name: "Grand Hotel Ballroom", Location: "Gangnam", Capacity: 200, PricePerHour: 500000, Amenities: []string{"sound system", "parking", "catering service"}},
			{Name: "Cafe Blue Moon", Location: "Hongdae", Capacity: 30, PricePerHour: 100000, Amenities: []string{"sound system", "projector"}},
		},
	},
	ResourceCateringMenu: map[string][]referenceMenu{
		"catering_options": {
			{Name: "Korean Buffet", PricePerPerson: 25000, Cuisine: "korean", DietaryOptions: []string{"vegetarian", "halal"}},
			{Name: "Western Course", PricePerPerson: 45000, Cuisine: "western", DietaryOptions: []string{"vegetarian", "vegan", "gluten_free"}},
		},
	},
	ResourceDecorationCatalog: map[string][]decorationPackage{
		"decorations": {
			{Name: "Balloon Set", Theme: "birthday", Price: 50000, Includes: []string{"balloon arch", "number balloons", "banner"}},
			{Name: "Table Flowers", Theme: "anniversary", Price: 80000, Includes: []string{"centerpieces", "candles"}},
			{Name: "Stage Backdrop", Theme: "corporate", Price: 150000, Includes: []string{"backdrop", "podium signage", "lighting"}},
		},
	},
}
