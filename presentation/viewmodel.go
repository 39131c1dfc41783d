// Package presentation turns a pipeline report into renderable view models.
// Every function here is pure.
package presentation

import (
	"time"

	"weatherdash/ambient"
	"weatherdash/manager"
)

// ViewModel is rebuilt on every successful pipeline run.
type ViewModel struct {
	Location     manager.Location `json:"location"`
	Conditions   manager.Current  `json:"conditions"`
	Current      Panel            `json:"current"`
	VisibilityKm float64          `json:"visibilityKm"`
	Forecast     []ForecastCard   `json:"forecast"`
	Ambient      ambient.Spec     `json:"ambient"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func Assemble(report manager.Report, now time.Time) ViewModel {
	return ViewModel{
		Location:     report.Location,
		Conditions:   report.Payload.Current,
		Current:      CurrentPanel(report.Location, report.Payload, now),
		VisibilityKm: VisibilityKm(report.Payload.Hourly),
		Forecast:     ForecastList(report.Payload.Daily),
		Ambient:      Ambient(report.Payload.Current.WeatherCode),
		UpdatedAt:    now,
	}
}
