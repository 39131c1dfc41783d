package ambient

type ParticleKind string

const (
	ParticleNone  ParticleKind = "none"
	ParticleCloud ParticleKind = "cloud"
	ParticleRain  ParticleKind = "rain"
	ParticleSnow  ParticleKind = "snow"
)

// Theme is the background theme of the dashboard. Exactly one is active.
type Theme string

const (
	ThemeNone   Theme = "none"
	ThemeSunny  Theme = "sunny"
	ThemeCloudy Theme = "cloudy"
	ThemeRainy  Theme = "rainy"
	ThemeSnowy  Theme = "snowy"
)

// Class is the CSS class applied for the theme; empty for ThemeNone.
func (t Theme) Class() string {
	if t == ThemeNone || t == "" {
		return ""
	}
	return "weather-bg-" + string(t)
}

// Spec describes the particles and theme derived from a weather code.
type Spec struct {
	ParticleKind  ParticleKind `json:"particleKind"`
	ParticleCount int          `json:"particleCount"`
	Theme         Theme        `json:"themeClass"`
}
