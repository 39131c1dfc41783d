package presentation

import (
	"fmt"
	"strings"
)

var explanations = map[string]string{
	LabelVisibility: "Current visibility is %s. Good visibility is above 10km. Reduced visibility can be caused by fog, rain, or pollution.",
	LabelHumidity:   "Relative humidity is %s. Comfortable humidity levels are between 30-50%%. High humidity can make temperatures feel warmer.",
	LabelWindSpeed:  "Current wind speed is %s. Light breeze is 6-11 km/h, moderate breeze is 20-28 km/h, and strong breeze is 39-49 km/h.",
	LabelPressure:   "Atmospheric pressure is %s. Normal pressure is around 1013 hPa. Rising pressure usually means improving weather.",
	LabelUVIndex:    "UV Index is %s. 0-2 is low, 3-5 is moderate, 6-7 is high, 8-10 is very high, and 11+ is extreme. Use sunscreen when UV is 3+.",
	LabelCloudiness: "Cloud cover is %s. This represents the percentage of sky covered by clouds. 0%% is clear sky, 100%% is completely overcast.",
}

var tips = map[string]string{
	"Clear sky":     "Perfect day for outdoor activities! Don't forget sunscreen.",
	"Partly cloudy": "Great weather for a walk or outdoor sports.",
	"Overcast":      "Good day for indoor activities or a cozy coffee.",
	"Light rain":    "Don't forget your umbrella!",
	"Heavy rain":    "Stay indoors and enjoy a good book.",
	"Snow":          "Perfect for winter sports or building a snowman!",
	"Thunderstorm":  "Stay safe indoors and avoid outdoor activities.",
}

const defaultTip = "Have a great day!"

// Explain describes a metric value for the detail modal.
func Explain(label, value string) string {
	if tmpl, ok := explanations[label]; ok {
		return fmt.Sprintf(tmpl, value)
	}
	return fmt.Sprintf("Current %s is %s.", strings.ToLower(label), value)
}

// Tip returns advice for a condition description.
func Tip(condition string) string {
	if tip, ok := tips[condition]; ok {
		return tip
	}
	return defaultTip
}

// Detail is the content of the forecast-card modal.
type Detail struct {
	Title       string `json:"title"`
	Condition   string `json:"condition"`
	Temperature string `json:"temperature"`
	Tip         string `json:"tip"`
}

func ForecastDetail(card ForecastCard) Detail {
	date := strings.TrimSpace(card.Weekday + " " + card.MonthDay)

	return Detail{
		Title:       "Weather for " + date,
		Condition:   card.Description,
		Temperature: card.High + " " + card.Low,
		Tip:         Tip(card.Description),
	}
}
