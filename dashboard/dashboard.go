// Package dashboard holds the application context shared by every surface:
// the Idle → Loading → Success/Error state machine, the displayed view model,
// the active theme, transient notices and the particle field.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"weatherdash/ambient"
	"weatherdash/manager"
	"weatherdash/presentation"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a toast-style transient message.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

const (
	loadingMessage    = "Loading weather data..."
	refreshingMessage = "Refreshing weather data..."
	genericFailure    = "Failed to fetch weather data. Please try again."
	coordsFailure     = "Failed to fetch weather data for your location."
)

// ErrSuperseded is returned to the caller of a run whose result was dropped
// because a newer run started after it.
var ErrSuperseded = errors.New("superseded by a newer request")

// Pipeline is the resolve-and-fetch sequence the dashboard drives.
type Pipeline interface {
	ByCity(ctx context.Context, query string) (manager.Report, error)
	ByCoords(ctx context.Context, latitude, longitude float64) (manager.Report, error)
}

type query struct {
	city      string
	coords    bool
	latitude  float64
	longitude float64
}

func (q query) String() string {
	if q.coords {
		return fmt.Sprintf("%v,%v", q.latitude, q.longitude)
	}
	return q.city
}

// Snapshot is an immutable copy of the dashboard state.
type Snapshot struct {
	Status     Status                  `json:"status"`
	Query      string                  `json:"query,omitempty"`
	Error      string                  `json:"error,omitempty"`
	Notice     *Notice                 `json:"notice,omitempty"`
	Theme      ambient.Theme           `json:"theme"`
	ThemeClass string                  `json:"themeClass,omitempty"`
	View       *presentation.ViewModel `json:"view,omitempty"`
	Generation uint64                  `json:"generation"`
}

type Dashboard struct {
	mu          sync.Mutex
	pipeline    Pipeline
	field       *ambient.Field
	defaultCity string
	logger      logr.Logger
	now         func() time.Time

	status     Status
	last       *query
	errMessage string
	notice     *Notice
	theme      ambient.Theme
	view       *presentation.ViewModel
	generation uint64
}

func New(pipeline Pipeline, field *ambient.Field, defaultCity string, logger logr.Logger) *Dashboard {
	if field == nil {
		field = ambient.NewField(nil)
	}

	return &Dashboard{
		pipeline:    pipeline,
		field:       field,
		defaultCity: defaultCity,
		logger:      logger.WithName("dashboard"),
		now:         time.Now,
		status:      StatusIdle,
		theme:       ambient.ThemeNone,
	}
}

// SetClock replaces the wall clock, for tests.
func (d *Dashboard) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// SearchCity runs the name pipeline. Blank queries are ignored.
func (d *Dashboard) SearchCity(ctx context.Context, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return d.Snapshot(), nil
	}

	token := d.begin(query{city: city})
	report, err := d.pipeline.ByCity(ctx, city)

	return d.finish(token, report, err, "")
}

// SearchCoords runs the coordinate pipeline. Out-of-range coordinates are
// rejected without touching the state.
func (d *Dashboard) SearchCoords(ctx context.Context, latitude, longitude float64) (Snapshot, error) {
	if !manager.ValidCoordinates(latitude, longitude) {
		return d.Snapshot(), fmt.Errorf("%w: latitude=%v longitude=%v", manager.ErrInvalidCoordinates, latitude, longitude)
	}

	token := d.begin(query{coords: true, latitude: latitude, longitude: longitude})
	report, err := d.pipeline.ByCoords(ctx, latitude, longitude)

	return d.finish(token, report, err, coordsFailure)
}

// LoadDefault uses the device position when the locator has one and falls
// back to the default city otherwise.
func (d *Dashboard) LoadDefault(ctx context.Context, locator Locator) (Snapshot, error) {
	if locator != nil {
		latitude, longitude, err := locator.Locate(ctx)
		if err == nil && manager.ValidCoordinates(latitude, longitude) {
			return d.SearchCoords(ctx, latitude, longitude)
		}
		if err != nil {
			d.logger.V(1).Info("device position unavailable, using default city", "city", d.defaultCity, "error", err.Error())
		}
	}

	return d.SearchCity(ctx, d.defaultCity)
}

// Retry re-enters the pipeline with the last query.
func (d *Dashboard) Retry(ctx context.Context, locator Locator) (Snapshot, error) {
	d.mu.Lock()
	last := d.last
	d.mu.Unlock()

	switch {
	case last == nil:
		return d.LoadDefault(ctx, locator)
	case last.coords:
		return d.SearchCoords(ctx, last.latitude, last.longitude)
	default:
		return d.SearchCity(ctx, last.city)
	}
}

// Refresh re-runs the last city search, or the default load when the last
// run was not a city search.
func (d *Dashboard) Refresh(ctx context.Context, locator Locator) (Snapshot, error) {
	d.mu.Lock()
	last := d.last
	d.notice = &Notice{Kind: NoticeInfo, Message: refreshingMessage, At: d.now()}
	d.mu.Unlock()

	if last != nil && !last.coords {
		return d.SearchCity(ctx, last.city)
	}
	return d.LoadDefault(ctx, locator)
}

func (d *Dashboard) begin(q query) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	d.status = StatusLoading
	d.last = &q
	d.notice = &Notice{Kind: NoticeInfo, Message: loadingMessage, At: d.now()}

	return d.generation
}

func (d *Dashboard) finish(token uint64, report manager.Report, err error, failure string) (Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if token != d.generation {
		d.logger.V(1).Info("discarding stale result", "token", token, "latest", d.generation)
		return d.snapshotLocked(), ErrSuperseded
	}

	now := d.now()

	if err != nil {
		message := failure
		if message == "" {
			message = err.Error()
		}
		if message == "" {
			message = genericFailure
		}

		d.status = StatusError
		d.errMessage = message
		d.view = nil
		d.notice = &Notice{Kind: NoticeError, Message: message, At: now}

		return d.snapshotLocked(), err
	}

	view := presentation.Assemble(report, now)

	d.status = StatusSuccess
	d.errMessage = ""
	d.view = &view
	d.theme = view.Ambient.Theme
	d.notice = &Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("Weather updated for %s!", view.Location.Name), At: now}

	// The panel is published above; particles trail in afterwards.
	d.field.Start(view.Ambient, now)

	d.logger.Info("weather updated", "location", view.Location.Name, "code", view.Conditions.WeatherCode, "theme", string(view.Ambient.Theme))

	return d.snapshotLocked(), nil
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Dashboard) snapshotLocked() Snapshot {
	s := Snapshot{
		Status:     d.status,
		Error:      d.errMessage,
		Theme:      d.theme,
		ThemeClass: d.theme.Class(),
		Generation: d.generation,
	}

	if d.last != nil {
		s.Query = d.last.String()
	}
	if d.notice != nil {
		n := *d.notice
		s.Notice = &n
	}
	if d.status == StatusSuccess && d.view != nil {
		view := *d.view
		s.View = &view
	}

	return s
}

// ForecastDetail returns the modal content for the forecast card whose
// source index is index.
func (d *Dashboard) ForecastDetail(index int) (presentation.Detail, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != StatusSuccess || d.view == nil {
		return presentation.Detail{}, false
	}

	for _, card := range d.view.Forecast {
		if card.Index == index {
			return presentation.ForecastDetail(card), true
		}
	}

	return presentation.Detail{}, false
}

// Location returns the displayed location, if any.
func (d *Dashboard) Location() (manager.Location, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != StatusSuccess || d.view == nil {
		return manager.Location{}, false
	}
	return d.view.Location, true
}

func (d *Dashboard) Field() *ambient.Field {
	return d.field
}
