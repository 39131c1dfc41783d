package presentation

import (
	"weatherdash/manager"
	"weatherdash/weathercode"
)

// ForecastDays is the number of upcoming days listed after today.
const ForecastDays = 5

type ForecastCard struct {
	Index       int    `json:"index"`
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	MonthDay    string `json:"monthDay"`
	WeatherCode int    `json:"weatherCode"`
	Description string `json:"description"`
	Glyph       string `json:"glyph"`
	Icon        string `json:"icon"`
	High        string `json:"high"`
	Low         string `json:"low"`
}

// ForecastList skips today and lists up to ForecastDays following days.
// Cards always use the day glyph.
func ForecastList(daily manager.Daily) []ForecastCard {
	last := min(ForecastDays+1, daily.Len())
	if last <= 1 {
		return []ForecastCard{}
	}

	cards := make([]ForecastCard, 0, last-1)
	for i := 1; i < last; i++ {
		code := intAt(daily.WeatherCode, i)
		icon := weathercode.NewIcon(code, true)
		weekday, monthDay := dayLabels(daily.Time[i])

		card := ForecastCard{
			Index:       i,
			Date:        daily.Time[i],
			Weekday:     weekday,
			MonthDay:    monthDay,
			WeatherCode: code,
			Description: icon.Description,
			Glyph:       icon.Glyph,
			Icon:        icon.DataURL,
			High:        missing,
			Low:         missing,
		}
		if v, ok := floatAt(daily.TemperatureMax, i); ok {
			card.High = degrees(v)
		}
		if v, ok := floatAt(daily.TemperatureMin, i); ok {
			card.Low = degrees(v)
		}

		cards = append(cards, card)
	}

	return cards
}
