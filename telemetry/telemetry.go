package telemetry

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"weatherdash/config"
)

// NewLogger returns a logr.Logger writing through the standard log package.
// Messages above verbosity are dropped.
func NewLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags))
}

// SetupTracing installs the global tracer provider and W3C propagator. Spans
// are exported to zipkin only when a collector URL is configured.
func SetupTracing(cfg config.Telemetry, logger logr.Logger) (func(context.Context) error, error) {
	otel.SetLogger(logger.WithName("otel"))

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weatherdash"
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	}

	if cfg.ZipkinURL != "" {
		exporter, err := zipkin.New(cfg.ZipkinURL)
		if err != nil {
			return nil, fmt.Errorf("create zipkin exporter: %w", err)
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}

	tp := trace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
