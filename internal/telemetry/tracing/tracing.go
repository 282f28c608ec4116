package tracing

import (
	"context"
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("gym-app-backend")
var GlobalBackupTracer = otel.Tracer("gym-app-backup")

// EndSpanWithErrCheck records err on the span (when set) and ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// HoneycombSetup configures the otel SDK to export to honeycomb. Service name, API key
// and endpoint come from the OTEL_* / HONEYCOMB_* env vars. The returned func flushes and
// shuts down the exporters.
func HoneycombSetup(ctx context.Context, serviceName string) (func(), error) {
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	)
	if err != nil {
		return nil, fmt.Errorf("configure otel: %w", err)
	}

	_, span := GlobalTracer.Start(ctx, "tracing.setup")
	span.End()
	log.Debugf("honeycomb tracing set up for %s", serviceName)

	return otelShutdown, nil
}
