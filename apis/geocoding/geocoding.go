package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"weatherdash/config"
	"weatherdash/manager"
)

// PlaceholderName is used when reverse geocoding yields nothing.
const PlaceholderName = "Your Location"

const tracerName = "weatherdash/geocoding"

func New(cfg config.Geocoding, logger logr.Logger) *geocoding {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &geocoding{
		client:   client,
		endpoint: cfg.Endpoint,
		language: cfg.Language,
		logger:   logger.WithName("geocoding"),
	}
}

type geocoding struct {
	client   *resty.Client
	endpoint string
	language string
	logger   logr.Logger
}

var _ manager.Geocoding = (*geocoding)(nil)

type result struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g *geocoding) ResolveByName(ctx context.Context, query string) (manager.Location, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GET-LOCATION")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	params := map[string]string{
		"name":     query,
		"count":    "1",
		"language": g.language,
		"format":   "json",
	}

	results, err := g.processRequest(ctx, params)
	if err != nil {
		return manager.Location{}, &manager.UpstreamError{Message: "Failed to find city location", StatusCode: statusOf(err), Err: err}
	}

	if len(results) == 0 {
		return manager.Location{}, &manager.NotFoundError{Query: query}
	}

	best := results[0]
	location, err := manager.NewLocation(best.Name, best.Country, best.Latitude, best.Longitude)
	if err != nil {
		return manager.Location{}, &manager.UpstreamError{Message: "Failed to find city location", Err: err}
	}

	return location, nil
}

func (g *geocoding) ResolveByCoords(ctx context.Context, latitude, longitude float64) manager.Location {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GET-LOCATION-REVERSE")
	defer span.End()

	location := manager.Location{
		Name:      PlaceholderName,
		Latitude:  latitude,
		Longitude: longitude,
	}

	params := map[string]string{
		"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
		"count":     "1",
		"language":  g.language,
		"format":    "json",
	}

	results, err := g.processRequest(ctx, params)
	if err != nil {
		g.logger.V(1).Info("reverse lookup degraded", "latitude", latitude, "longitude", longitude, "error", err.Error())
		return location
	}

	if len(results) > 0 && results[0].Name != "" {
		location.Name = results[0].Name
	}

	return location
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status code: %d\n%s", e.code, e.body)
}

func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.code
	}
	return 0
}

func (g *geocoding) processRequest(ctx context.Context, params map[string]string) ([]result, error) {
	type responseStruct struct {
		Results []result `json:"results"`
	}

	request := g.client.R().SetContext(ctx)
	request.SetQueryParams(params)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	response, err := request.Get(g.endpoint)
	if err != nil {
		return nil, err
	}

	if !response.IsSuccess() {
		return nil, &statusError{code: response.StatusCode(), body: response.String()}
	}

	var body responseStruct
	if err = json.Unmarshal(response.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}

	return body.Results, nil
}
