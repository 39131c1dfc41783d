// Package weathercode translates WMO weather codes reported by the forecast
// provider into human descriptions and glyphs.
package weathercode

import "sort"

const (
	sun        = "☀️"
	moon       = "🌙"
	sunCloud   = "🌤️"
	partSun    = "⛅"
	cloud      = "☁️"
	fog        = "🌫️"
	sunRain    = "🌦️"
	rain       = "🌧️"
	snowCloud  = "🌨️"
	snowflake  = "❄️"
	thunder    = "⛈️"
	unknownKey = 0
)

// Entry is one row of the code table.
type Entry struct {
	Description string `json:"description"`
	Day         string `json:"dayGlyph"`
	Night       string `json:"nightGlyph"`
}

// Info is the translation of a code for a given time of day.
type Info struct {
	Description string `json:"description"`
	Glyph       string `json:"glyph"`
}

var known = []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 97, 99}

// Lookup returns the table entry for code; unknown codes get the entry for 0.
func Lookup(code int) Entry {
	switch code {
	case 0:
		return Entry{"Clear sky", sun, moon}
	case 1:
		return Entry{"Mainly clear", sunCloud, moon}
	case 2:
		return Entry{"Partly cloudy", partSun, cloud}
	case 3:
		return Entry{"Overcast", cloud, cloud}
	case 45:
		return Entry{"Foggy", fog, fog}
	case 48:
		return Entry{"Depositing rime fog", fog, fog}
	case 51:
		return Entry{"Light drizzle", sunRain, rain}
	case 53:
		return Entry{"Moderate drizzle", sunRain, rain}
	case 55:
		return Entry{"Dense drizzle", rain, rain}
	case 56:
		return Entry{"Light freezing drizzle", snowCloud, snowCloud}
	case 57:
		return Entry{"Dense freezing drizzle", snowCloud, snowCloud}
	case 61:
		return Entry{"Slight rain", sunRain, rain}
	case 63:
		return Entry{"Moderate rain", rain, rain}
	case 65:
		return Entry{"Heavy rain", rain, rain}
	case 66:
		return Entry{"Light freezing rain", snowCloud, snowCloud}
	case 67:
		return Entry{"Heavy freezing rain", snowCloud, snowCloud}
	case 71:
		return Entry{"Slight snow fall", snowCloud, snowCloud}
	case 73:
		return Entry{"Moderate snow fall", snowflake, snowflake}
	case 75:
		return Entry{"Heavy snow fall", snowflake, snowflake}
	case 77:
		return Entry{"Snow grains", snowCloud, snowCloud}
	case 80:
		return Entry{"Slight rain showers", sunRain, rain}
	case 81:
		return Entry{"Moderate rain showers", rain, rain}
	case 82:
		return Entry{"Violent rain showers", thunder, thunder}
	case 85:
		return Entry{"Slight snow showers", snowCloud, snowCloud}
	case 86:
		return Entry{"Heavy snow showers", snowflake, snowflake}
	case 95:
		return Entry{"Thunderstorm", thunder, thunder}
	case 96:
		return Entry{"Thunderstorm with slight hail", thunder, thunder}
	case 97, 99:
		return Entry{"Thunderstorm with heavy hail", thunder, thunder}
	default:
		return Lookup(unknownKey)
	}
}

// Translate picks the description and the day or night glyph for code.
func Translate(code int, isDay bool) Info {
	entry := Lookup(code)
	if isDay {
		return Info{Description: entry.Description, Glyph: entry.Day}
	}
	return Info{Description: entry.Description, Glyph: entry.Night}
}

func Known(code int) bool {
	i := sort.SearchInts(known, code)
	return i < len(known) && known[i] == code
}

// Codes lists every code with its own table row, ascending.
func Codes() []int {
	out := make([]int, len(known))
	copy(out, known)
	return out
}
