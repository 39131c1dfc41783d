package presentation

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

const (
	missing           = "—"
	defaultVisibility = 10.0
	dateLayout        = "2006-01-02"
)

// round matches the half-up rounding the dashboard has always displayed
// (-2.5 becomes -2). The fraction is compared before any addition so values
// just below a half are not pushed over it.
func round(v float64) int {
	floor := math.Floor(v)
	if v-floor >= 0.5 {
		floor++
	}
	return int(floor)
}

// fixed1 prints v with one decimal, rounding the exact binary value with
// halves away from zero (5.25 becomes "5.3").
func fixed1(v float64) string {
	return new(big.Rat).SetFloat64(v).FloatString(1)
}

// plain prints a provider value as given, without padding or fixed decimals.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func celsius(v float64) string {
	return fmt.Sprintf("%d°C", round(v))
}

func degrees(v float64) string {
	return fmt.Sprintf("%d°", round(v))
}

func floatAt(series []float64, i int) (float64, bool) {
	if i < 0 || i >= len(series) {
		return 0, false
	}
	return series[i], true
}

func ptrAt(series []*float64, i int) (float64, bool) {
	if i < 0 || i >= len(series) || series[i] == nil {
		return 0, false
	}
	return *series[i], true
}

func intAt(series []int, i int) int {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}

// dayLabels returns the short weekday and month-day labels for a provider
// date. Unparseable dates are passed through as the weekday label.
func dayLabels(date string) (weekday, monthDay string) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date, ""
	}
	return t.Format("Mon"), t.Format("Jan 2")
}

// WindDirection names the 16-point compass sector for a bearing in degrees.
func WindDirection(deg float64) string {
	directions := [...]string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

	i := round(deg/22.5) % len(directions)
	if i < 0 {
		i += len(directions)
	}
	return directions[i]
}

func UVLevel(uv float64) string {
	switch {
	case uv <= 2:
		return "Low"
	case uv <= 5:
		return "Moderate"
	case uv <= 7:
		return "High"
	case uv <= 10:
		return "Very High"
	default:
		return "Extreme"
	}
}
