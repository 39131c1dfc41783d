package presentation

import "weatherdash/ambient"

type bucket int

const (
	bucketOther bucket = iota
	bucketSunny
	bucketCloudy
	bucketRainy
	bucketSnowy
)

func classify(code int) bucket {
	switch code {
	case 0, 1:
		return bucketSunny
	case 2, 3, 45, 48:
		return bucketCloudy
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return bucketRainy
	case 71, 73, 75, 77, 85, 86:
		return bucketSnowy
	default:
		return bucketOther
	}
}

// Ambient derives the particle effect and background theme for a code.
// Codes outside the four buckets get light cloud particles and no theme.
func Ambient(code int) ambient.Spec {
	switch classify(code) {
	case bucketSunny:
		return ambient.Spec{ParticleKind: ambient.ParticleCloud, ParticleCount: 15, Theme: ambient.ThemeSunny}
	case bucketCloudy:
		return ambient.Spec{ParticleKind: ambient.ParticleCloud, ParticleCount: 20, Theme: ambient.ThemeCloudy}
	case bucketRainy:
		return ambient.Spec{ParticleKind: ambient.ParticleRain, ParticleCount: 50, Theme: ambient.ThemeRainy}
	case bucketSnowy:
		return ambient.Spec{ParticleKind: ambient.ParticleSnow, ParticleCount: 30, Theme: ambient.ThemeSnowy}
	default:
		return ambient.Spec{ParticleKind: ambient.ParticleCloud, ParticleCount: 15, Theme: ambient.ThemeNone}
	}
}
