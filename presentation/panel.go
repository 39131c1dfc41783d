package presentation

import (
	"fmt"
	"time"

	"weatherdash/manager"
	"weatherdash/weathercode"
)

// Metric labels shown in the current panel. Each one has an explanation.
const (
	LabelVisibility = "Visibility"
	LabelHumidity   = "Humidity"
	LabelWindSpeed  = "Wind Speed"
	LabelPressure   = "Pressure"
	LabelUVIndex    = "UV Index"
	LabelCloudiness = "Cloudiness"
)

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Panel is the current-conditions view.
type Panel struct {
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Date          string   `json:"date"`
	WeatherCode   int      `json:"weatherCode"`
	IsDay         bool     `json:"isDay"`
	Description   string   `json:"description"`
	Glyph         string   `json:"glyph"`
	Icon          string   `json:"icon"`
	Temperature   string   `json:"temperature"`
	FeelsLike     string   `json:"feelsLike"`
	MinTemp       string   `json:"minTemp"`
	MaxTemp       string   `json:"maxTemp"`
	Visibility    string   `json:"visibility"`
	Humidity      string   `json:"humidity"`
	WindSpeed     string   `json:"windSpeed"`
	WindDirection string   `json:"windDirection"`
	Pressure      string   `json:"pressure"`
	UVIndex       string   `json:"uvIndex"`
	UVLevel       string   `json:"uvLevel,omitempty"`
	Cloudiness    string   `json:"cloudiness"`
	Metrics       []Metric `json:"metrics"`
}

// VisibilityKm reads the first hourly visibility in metres. Absent data
// yields 10 km.
func VisibilityKm(hourly manager.Hourly) float64 {
	if v, ok := ptrAt(hourly.Visibility, 0); ok {
		return v / 1000
	}
	return defaultVisibility
}

// UVIndex formats today's maximum UV index, or "N/A" when not reported.
func UVIndex(daily manager.Daily) string {
	if uv, ok := ptrAt(daily.UVIndexMax, 0); ok {
		return fixed1(uv)
	}
	return "N/A"
}

func CurrentPanel(location manager.Location, payload manager.Payload, now time.Time) Panel {
	current := payload.Current
	icon := weathercode.NewIcon(current.WeatherCode, current.IsDay)

	panel := Panel{
		City:          location.Name,
		Country:       location.Country,
		Date:          now.Format("Monday, January 2, 2006"),
		WeatherCode:   current.WeatherCode,
		IsDay:         current.IsDay,
		Description:   icon.Description,
		Glyph:         icon.Glyph,
		Icon:          icon.DataURL,
		Temperature:   celsius(current.Temperature),
		FeelsLike:     celsius(current.ApparentTemperature),
		MinTemp:       missing,
		MaxTemp:       missing,
		Visibility:    fixed1(VisibilityKm(payload.Hourly)) + " km",
		Humidity:      plain(current.RelativeHumidity) + "%",
		WindSpeed:     plain(current.WindSpeed) + " km/h",
		WindDirection: WindDirection(current.WindDirection),
		Pressure:      fmt.Sprintf("%d hPa", round(current.PressureMSL)),
		UVIndex:       UVIndex(payload.Daily),
		Cloudiness:    plain(current.CloudCover) + "%",
	}

	if v, ok := floatAt(payload.Daily.TemperatureMin, 0); ok {
		panel.MinTemp = celsius(v)
	}
	if v, ok := floatAt(payload.Daily.TemperatureMax, 0); ok {
		panel.MaxTemp = celsius(v)
	}
	if uv, ok := ptrAt(payload.Daily.UVIndexMax, 0); ok {
		panel.UVLevel = UVLevel(uv)
	}

	panel.Metrics = []Metric{
		{Label: LabelVisibility, Value: panel.Visibility},
		{Label: LabelHumidity, Value: panel.Humidity},
		{Label: LabelWindSpeed, Value: panel.WindSpeed},
		{Label: LabelPressure, Value: panel.Pressure},
		{Label: LabelUVIndex, Value: panel.UVIndex},
		{Label: LabelCloudiness, Value: panel.Cloudiness},
	}

	return panel
}
