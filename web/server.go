package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	geojson "github.com/paulmach/go.geojson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"weatherdash/dashboard"
	"weatherdash/manager"
	"weatherdash/presentation"
	"weatherdash/weathercode"
)

type Webserver struct {
	OTELTracer     trace.Tracer
	dashboard      *dashboard.Dashboard
	locator        dashboard.Locator
	logger         logr.Logger
	requestTimeout time.Duration
}

// NewServer builds the HTTP surface. locator supplies the default device
// position when a caller does not send one.
func NewServer(d *dashboard.Dashboard, locator dashboard.Locator, otelTracer trace.Tracer, logger logr.Logger, requestTimeout time.Duration) *Webserver {
	if requestTimeout <= 0 {
		requestTimeout = 60 * time.Second
	}

	return &Webserver{
		OTELTracer:     otelTracer,
		dashboard:      d,
		locator:        locator,
		logger:         logger.WithName("web"),
		requestTimeout: requestTimeout,
	}
}

func (we *Webserver) CreateServer() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(middleware.Timeout(we.requestTimeout))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", we.handleHealth)
		r.Get("/state", we.handleState)

		r.Post("/search", we.handleSearch)
		r.Post("/locate", we.handleLocate)
		r.Post("/locate/default", we.handleLoadDefault)
		r.Post("/retry", we.handleRetry)
		r.Post("/refresh", we.handleRefresh)

		r.Get("/explain", we.handleExplain)
		r.Get("/tip", we.handleTip)
		r.Get("/forecast/{index}", we.handleForecastDetail)
		r.Get("/suggestions", we.handleSuggestions)
		r.Get("/icon/{code}", we.handleIcon)
		r.Get("/particles", we.handleParticles)
		r.Get("/location.geojson", we.handleLocationGeoJSON)
	})

	return router
}

func (we *Webserver) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (we *Webserver) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, we.dashboard.Snapshot())
}

func (we *Webserver) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "search-city")
	defer span.End()

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "city is required")
		return
	}

	snapshot, err := we.dashboard.SearchCity(ctx, city)
	writeRun(w, snapshot, err)
}

func (we *Webserver) handleLocate(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "search-coords")
	defer span.End()

	latitude, longitude, ok, err := coordinates(r)
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "lat and lon must be numbers")
		return
	}

	snapshot, err := we.dashboard.SearchCoords(ctx, latitude, longitude)
	writeRun(w, snapshot, err)
}

func (we *Webserver) handleLoadDefault(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "load-default")
	defer span.End()

	locator, err := we.requestLocator(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat and lon must be numbers")
		return
	}

	snapshot, err := we.dashboard.LoadDefault(ctx, locator)
	writeRun(w, snapshot, err)
}

func (we *Webserver) handleRetry(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "retry")
	defer span.End()

	snapshot, err := we.dashboard.Retry(ctx, we.locator)
	writeRun(w, snapshot, err)
}

func (we *Webserver) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := we.OTELTracer.Start(ctx, "refresh")
	defer span.End()

	locator, err := we.requestLocator(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat and lon must be numbers")
		return
	}

	snapshot, err := we.dashboard.Refresh(ctx, locator)
	writeRun(w, snapshot, err)
}

func (we *Webserver) handleExplain(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	value := r.URL.Query().Get("value")
	if label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"title":       label,
		"explanation": presentation.Explain(label, value),
	})
}

func (we *Webserver) handleTip(w http.ResponseWriter, r *http.Request) {
	condition := r.URL.Query().Get("condition")
	writeJSON(w, http.StatusOK, map[string]string{
		"condition": condition,
		"tip":       presentation.Tip(condition),
	})
}

func (we *Webserver) handleForecastDetail(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	detail, ok := we.dashboard.ForecastDetail(index)
	if !ok {
		writeError(w, http.StatusNotFound, "no forecast for that day")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (we *Webserver) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := presentation.Suggest(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []presentation.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (we *Webserver) handleIcon(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "code must be an integer")
		return
	}

	isDay := true
	if raw := r.URL.Query().Get("day"); raw != "" {
		isDay, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "day must be a boolean")
			return
		}
	}

	info := weathercode.Translate(code, isDay)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Weather-Description", info.Description)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(weathercode.SVG(info.Glyph))
}

func (we *Webserver) handleParticles(w http.ResponseWriter, r *http.Request) {
	snapshot := we.dashboard.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"theme":     snapshot.Theme,
		"particles": we.dashboard.Field().Snapshot(),
	})
}

func (we *Webserver) handleLocationGeoJSON(w http.ResponseWriter, r *http.Request) {
	location, ok := we.dashboard.Location()
	if !ok {
		writeError(w, http.StatusNotFound, "no location displayed")
		return
	}

	feature := geojson.NewPointFeature([]float64{location.Longitude, location.Latitude})
	feature.SetProperty("name", location.Name)
	if location.Country != "" {
		feature.SetProperty("country", location.Country)
	}

	body, err := feature.MarshalJSON()
	if err != nil {
		we.logger.Error(err, "encode location feature")
		writeError(w, http.StatusInternalServerError, "cannot encode location")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// requestLocator prefers a position sent by the caller over the server's.
func (we *Webserver) requestLocator(r *http.Request) (dashboard.Locator, error) {
	latitude, longitude, ok, err := coordinates(r)
	if err != nil {
		return nil, err
	}
	if ok {
		return dashboard.Fixed(latitude, longitude), nil
	}
	return we.locator, nil
}

// coordinates parses lat/lon query parameters. ok is false when both are
// absent.
func coordinates(r *http.Request) (latitude, longitude float64, ok bool, err error) {
	rawLat, rawLon := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if rawLat == "" && rawLon == "" {
		return 0, 0, false, nil
	}

	if latitude, err = strconv.ParseFloat(rawLat, 64); err != nil {
		return 0, 0, false, err
	}
	if longitude, err = strconv.ParseFloat(rawLon, 64); err != nil {
		return 0, 0, false, err
	}

	return latitude, longitude, true, nil
}

func writeRun(w http.ResponseWriter, snapshot dashboard.Snapshot, err error) {
	writeJSON(w, statusFor(err), snapshot)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, manager.ErrInvalidCoordinates):
		return http.StatusBadRequest
	case errors.Is(err, manager.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, manager.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
