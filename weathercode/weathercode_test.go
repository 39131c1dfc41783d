package weathercode

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		code        int
		description string
		day         string
		night       string
	}{
		{0, "Clear sky", "☀️", "🌙"},
		{1, "Mainly clear", "🌤️", "🌙"},
		{2, "Partly cloudy", "⛅", "☁️"},
		{3, "Overcast", "☁️", "☁️"},
		{45, "Foggy", "🌫️", "🌫️"},
		{48, "Depositing rime fog", "🌫️", "🌫️"},
		{51, "Light drizzle", "🌦️", "🌧️"},
		{53, "Moderate drizzle", "🌦️", "🌧️"},
		{55, "Dense drizzle", "🌧️", "🌧️"},
		{56, "Light freezing drizzle", "🌨️", "🌨️"},
		{57, "Dense freezing drizzle", "🌨️", "🌨️"},
		{61, "Slight rain", "🌦️", "🌧️"},
		{63, "Moderate rain", "🌧️", "🌧️"},
		{65, "Heavy rain", "🌧️", "🌧️"},
		{66, "Light freezing rain", "🌨️", "🌨️"},
		{67, "Heavy freezing rain", "🌨️", "🌨️"},
		{71, "Slight snow fall", "🌨️", "🌨️"},
		{73, "Moderate snow fall", "❄️", "❄️"},
		{75, "Heavy snow fall", "❄️", "❄️"},
		{77, "Snow grains", "🌨️", "🌨️"},
		{80, "Slight rain showers", "🌦️", "🌧️"},
		{81, "Moderate rain showers", "🌧️", "🌧️"},
		{82, "Violent rain showers", "⛈️", "⛈️"},
		{85, "Slight snow showers", "🌨️", "🌨️"},
		{86, "Heavy snow showers", "❄️", "❄️"},
		{95, "Thunderstorm", "⛈️", "⛈️"},
		{96, "Thunderstorm with slight hail", "⛈️", "⛈️"},
		{97, "Thunderstorm with heavy hail", "⛈️", "⛈️"},
		{99, "Thunderstorm with heavy hail", "⛈️", "⛈️"},
	}

	if len(tests) != len(Codes()) {
		t.Fatalf("table has %d rows, translator knows %d codes", len(tests), len(Codes()))
	}

	for _, tt := range tests {
		if got, want := Translate(tt.code, true), (Info{tt.description, tt.day}); got != want {
			t.Errorf("Translate(%d, day) = %+v, want %+v", tt.code, got, want)
		}
		if got, want := Translate(tt.code, false), (Info{tt.description, tt.night}); got != want {
			t.Errorf("Translate(%d, night) = %+v, want %+v", tt.code, got, want)
		}
		if !Known(tt.code) {
			t.Errorf("Known(%d) = false", tt.code)
		}
	}
}

func TestLookupUnknownFallsBackToClearSky(t *testing.T) {
	for _, code := range []int{-1, 4, 50, 98, 100, 999} {
		if got := Lookup(code); got != Lookup(0) {
			t.Errorf("Lookup(%d) = %+v, want the code 0 entry", code, got)
		}
		if Known(code) {
			t.Errorf("Known(%d) = true", code)
		}
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != 29 {
		t.Fatalf("expected 29 codes, got %d", len(codes))
	}

	for i, code := range codes {
		if i > 0 && codes[i-1] >= code {
			t.Errorf("codes are not ascending at %d", i)
		}
		if !Known(code) {
			t.Errorf("Known(%d) = false", code)
		}
		entry := Lookup(code)
		if entry.Description == "" || entry.Day == "" || entry.Night == "" {
			t.Errorf("incomplete entry for %d: %+v", code, entry)
		}
	}

	codes[0] = 12345
	if Codes()[0] != 0 {
		t.Error("Codes must return a copy")
	}
}

func TestIcon(t *testing.T) {
	t.Run("should render the glyph centred on the canvas", func(t *testing.T) {
		svg := string(SVG("☀️"))

		for _, want := range []string{`width="64"`, `height="64"`, `x="32"`, `y="32"`, `font-size="48"`, ">☀️</text>"} {
			if !strings.Contains(svg, want) {
				t.Errorf("expected %q in %s", want, svg)
			}
		}
	})

	t.Run("should escape markup", func(t *testing.T) {
		if svg := string(SVG("<b>")); !strings.Contains(svg, "&lt;b&gt;") {
			t.Errorf("glyph not escaped: %s", svg)
		}
	})

	t.Run("should encode a base64 data URL", func(t *testing.T) {
		icon := NewIcon(3, false)
		if icon.Description != "Overcast" || icon.Glyph != "☁️" {
			t.Errorf("unexpected info %+v", icon.Info)
		}

		const prefix = "data:image/svg+xml;base64,"
		if !strings.HasPrefix(icon.DataURL, prefix) {
			t.Fatalf("unexpected data URL %q", icon.DataURL)
		}
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(icon.DataURL, prefix))
		if err != nil {
			t.Fatalf("expected nil, got %s", err)
		}
		if string(raw) != string(SVG("☁️")) {
			t.Errorf("data URL does not decode to the SVG")
		}
	})
}
