// Package tracing installs the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"taxipark/config"
	"taxipark/pkg/logger"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// Init sets the global provider according to cfg.TracingExporter. The
// returned shutdown flushes pending spans.
func Init(cfg config.Config, log logger.ILogger) (func(context.Context) error, error) {
	switch cfg.TracingExporter {
	case ExporterNone, "":
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	case ExporterStdout:
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", cfg.TracingExporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(provider)
	log.Info("tracing enabled", logger.String("exporter", cfg.TracingExporter))

	return provider.Shutdown, nil
}

// Tracer is the tracer used for spans created by this module.
func Tracer() trace.Tracer {
	return otel.Tracer("taxipark")
}
