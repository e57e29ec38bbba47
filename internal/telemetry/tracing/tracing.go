package tracing

import (
	"fmt"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	honeycomb "github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer = otel.Tracer("formava-sync")

// HoneycombSetup registers the global OpenTelemetry SDK, exporting spans to
// Honeycomb over OTLP (HONEYCOMB_API_KEY and OTEL_SERVICE_NAME env vars), and
// hooks the redis client into the same trace pipeline. The returned shutdown
// flushes pending spans and must be called on server teardown. When tracing
// is disabled all spans in the module go to the no-op provider.
func HoneycombSetup(enabled bool, serviceName string, rdb *redis.Client) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing disabled")
		return func() {}, nil
	}

	rdb.AddHook(redisotel.NewTracingHook())

	bsp := honeycomb.NewBaggageSpanProcessor()
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithSpanProcessor(bsp),
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, fmt.Errorf("configure opentelemetry sdk: %w", err)
	}

	return otelShutdown, nil
}

// EndSpanWithErrCheck ends the span, recording the error on it if present.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
