package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "weatherdash/manager"

func New(geocoding Geocoding, forecast Forecast, logger logr.Logger) *Pipeline {
	return &Pipeline{
		geocoding: geocoding,
		forecast:  forecast,
		logger:    logger.WithName("pipeline"),
	}
}

// Pipeline runs resolve then fetch. The two calls are sequential since the
// fetch needs the resolved coordinates.
type Pipeline struct {
	geocoding Geocoding
	forecast  Forecast
	logger    logr.Logger
}

func (p *Pipeline) ByCity(ctx context.Context, query string) (Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline-by-city")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	if p.geocoding == nil || p.forecast == nil {
		return Report{}, fmt.Errorf("pipeline is not configured")
	}

	location, err := p.geocoding.ResolveByName(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logFailure("resolve by name", query, err)
		return Report{}, err
	}

	payload, err := p.forecast.Fetch(ctx, location.Latitude, location.Longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logFailure("fetch weather", query, err)
		return Report{}, err
	}

	p.logger.V(1).Info("pipeline finished", "query", query, "location", location.Name, "days", payload.Daily.Len())

	return Report{Location: location, Payload: payload}, nil
}

func (p *Pipeline) ByCoords(ctx context.Context, latitude, longitude float64) (Report, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline-by-coords")
	defer span.End()
	span.SetAttributes(attribute.Float64("latitude", latitude), attribute.Float64("longitude", longitude))

	if p.geocoding == nil || p.forecast == nil {
		return Report{}, fmt.Errorf("pipeline is not configured")
	}

	if !ValidCoordinates(latitude, longitude) {
		err := fmt.Errorf("%w: latitude=%v longitude=%v", ErrInvalidCoordinates, latitude, longitude)
		span.RecordError(err)
		return Report{}, err
	}

	location := p.geocoding.ResolveByCoords(ctx, latitude, longitude)

	payload, err := p.forecast.Fetch(ctx, latitude, longitude)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logFailure("fetch weather", fmt.Sprintf("%v,%v", latitude, longitude), err)
		return Report{}, err
	}

	return Report{Location: location, Payload: payload}, nil
}

func (p *Pipeline) logFailure(step, query string, err error) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		p.logger.Error(upstream.Err, step+" failed", "query", query, "status", upstream.StatusCode)
		return
	}

	p.logger.V(1).Info(step+" failed", "query", query, "error", err.Error())
}
