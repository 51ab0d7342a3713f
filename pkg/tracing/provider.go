// Package tracing инициализирует OpenTelemetry для процесса.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"

	"taskmanager/pkg/logger"
)

// Константы для сообщений logger и ошибок.
const (
	LogTracingDisabled = "tracing disabled: no OTLP endpoint configured"
	LogTracingEnabled  = "tracing enabled"
	ErrCreateExporter  = "failed to create OTLP exporter"
	ErrCreateResource  = "failed to create tracing resource"
)

// ShutdownFunc сбрасывает накопленные спаны и останавливает провайдер.
type ShutdownFunc func(context.Context) error

// Setup регистрирует глобальный TracerProvider, экспортирующий спаны по OTLP/HTTP.
// Пустой endpoint отключает трассировку: возвращается no-op ShutdownFunc.
func Setup(ctx context.Context, serviceName, endpoint string, sampleRatio float64) (ShutdownFunc, error) {
	log := logger.Log(ctx)
	noop := func(context.Context) error { return nil }

	if endpoint == "" {
		log.Debug(ctx, LogTracingDisabled)
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		log.Error(ctx, ErrCreateExporter, zap.Error(err))
		return noop, fmt.Errorf("%s: %w", ErrCreateExporter, err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.Error(ctx, ErrCreateResource, zap.Error(err))
		return noop, fmt.Errorf("%s: %w", ErrCreateResource, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info(ctx, LogTracingEnabled, zap.String("endpoint", endpoint), zap.Float64("sample_ratio", sampleRatio))
	return tp.Shutdown, nil
}
