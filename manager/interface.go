package manager

import (
	"context"
	"fmt"
)

// Geocoding resolves free-text or coordinate queries into a Location.
type Geocoding interface {
	ResolveByName(ctx context.Context, query string) (Location, error)
	// ResolveByCoords never fails; it degrades to a placeholder location.
	ResolveByCoords(ctx context.Context, latitude, longitude float64) Location
}

// Forecast retrieves current, hourly and daily observations for a point.
type Forecast interface {
	Fetch(ctx context.Context, latitude, longitude float64) (Payload, error)
}

// Location is a canonical place. Values are immutable once built.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewLocation validates the coordinate range before building a Location.
func NewLocation(name, country string, latitude, longitude float64) (Location, error) {
	if !ValidCoordinates(latitude, longitude) {
		return Location{}, fmt.Errorf("%w: latitude=%v longitude=%v", ErrInvalidCoordinates, latitude, longitude)
	}

	return Location{
		Name:      name,
		Country:   country,
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

func ValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

type Current struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparentTemperature"`
	RelativeHumidity    float64 `json:"relativeHumidity"`
	IsDay               bool    `json:"isDay"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weatherCode"`
	CloudCover          float64 `json:"cloudCover"`
	PressureMSL         float64 `json:"pressureMsl"`
	SurfacePressure     float64 `json:"surfacePressure"`
	WindSpeed           float64 `json:"windSpeed"`
	WindDirection       float64 `json:"windDirection"`
	WindGusts           float64 `json:"windGusts"`
}

// Hourly series are aligned by index. Nil entries are values the provider
// reported as null.
type Hourly struct {
	Time             []string   `json:"time"`
	Temperature      []float64  `json:"temperature"`
	RelativeHumidity []float64  `json:"relativeHumidity"`
	WeatherCode      []int      `json:"weatherCode"`
	Visibility       []*float64 `json:"visibility"`
}

// Daily series are aligned by index, 0 being today.
type Daily struct {
	Time                        []string   `json:"time"`
	WeatherCode                 []int      `json:"weatherCode"`
	TemperatureMax              []float64  `json:"temperatureMax"`
	TemperatureMin              []float64  `json:"temperatureMin"`
	ApparentTemperatureMax      []float64  `json:"apparentTemperatureMax"`
	ApparentTemperatureMin      []float64  `json:"apparentTemperatureMin"`
	Sunrise                     []string   `json:"sunrise"`
	Sunset                      []string   `json:"sunset"`
	UVIndexMax                  []*float64 `json:"uvIndexMax"`
	PrecipitationSum            []float64  `json:"precipitationSum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitationProbabilityMax"`
	WindSpeedMax                []float64  `json:"windSpeedMax"`
	WindDirectionDominant       []float64  `json:"windDirectionDominant"`
}

// Len is the number of calendar days reported.
func (d Daily) Len() int {
	return len(d.Time)
}

// Payload bundles one forecast response.
type Payload struct {
	Current Current `json:"current"`
	Hourly  Hourly  `json:"hourly"`
	Daily   Daily   `json:"daily"`
}

// Report is the output of one pipeline run before presentation.
type Report struct {
	Location Location `json:"location"`
	Payload  Payload  `json:"payload"`
}
