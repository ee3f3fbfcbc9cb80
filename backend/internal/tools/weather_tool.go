package tools

import (
	"context"
	"errors"
	"strings"
)

// Forecast is the mock forecast body
type Forecast struct {
	Temperature    string `json:"temperature"`
	Condition      string `json:"condition"`
	Precipitation  string `json:"precipitation"`
	Wind           string `json:"wind"`
	Recommendation string `json:"recommendation"`
}

// WeatherReport is the output of check_weather
type WeatherReport struct {
	Date     string   `json:"date"`
	Location string   `json:"location"`
	Forecast Forecast `json:"forecast"`
}

type weatherArgs struct {
	Date     string `json:"date"`
	Location string `json:"location"`
}

// checkWeather returns a fixed forecast; no weather service is consulted
func checkWeather(_ context.Context, args weatherArgs) (WeatherReport, error) {
	if strings.TrimSpace(args.Date) == "" {
		return WeatherReport{}, errors.New("date must not be empty")
	}
	return WeatherReport{
		Date:     args.Date,
		Location: args.Location,
		Forecast: Forecast{
			Temperature:    "22°C",
			Condition:      "clear",
			Precipitation:  "10%",
			Wind:           "light",
			Recommendation: "Good weather for an outdoor event.",
		},
	}, nil
}
