package otel

import (
	"context"
	stderrors "errors"

	runtimeotel "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
)

const ErrInit errors.Code = "otel init failed"

// ShutdownFunc flushes and stops the providers Init installed.
type ShutdownFunc func(context.Context) error

// Init installs the global tracer and meter providers. Disabled signals get
// SDK providers without exporters so the shutdown path is uniform.
func Init(ctx context.Context, cfg *Config, logger *log.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	logger.Info("OTEL configuration",
		log.Bool("tracing_enabled", cfg.TracingEnabled),
		log.Bool("metrics_enabled", cfg.MetricsEnabled),
		log.Bool("go_metrics_enabled", cfg.RuntimeMetricsEnabled),
		log.String("endpoint", cfg.Endpoint),
		log.String("service_name", cfg.ServiceName))

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	if cfg.TracingEnabled {
		if tp, err = newTracerProvider(ctx, cfg, res); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
	if cfg.MetricsEnabled {
		if mp, err = newMeterProvider(ctx, cfg, res); err != nil {
			_ = tp.Shutdown(ctx)
			return nil, err
		}
		// instruments created in package init() delegate to this provider
		otel.SetMeterProvider(mp)

		if cfg.RuntimeMetricsEnabled {
			if err := runtimeotel.Start(runtimeotel.WithMeterProvider(mp)); err != nil {
				_ = tp.Shutdown(ctx)
				_ = mp.Shutdown(ctx)
				return nil, errors.Wrap(ErrInit, err, "start runtime metrics")
			}
		}
	}

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

func newResource(ctx context.Context, cfg *Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.InstanceID != "" {
		attrs = append(attrs, semconv.ServiceInstanceID(cfg.InstanceID))
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithFromEnv(),
		resource.WithHost(),
		resource.WithOS(),
		resource.WithProcessRuntimeVersion(),
	)
	if err != nil {
		return nil, errors.Wrap(ErrInit, err, "build resource")
	}
	return res, nil
}

// sampler maps a rate onto the SDK samplers; out of range rates clamp.
func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

func newTracerProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(ErrInit, err, "create trace exporter")
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SamplingRate)),
	), nil
}

func newMeterProvider(ctx context.Context, cfg *Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts,
			otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()),
			otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(ErrInit, err, "create metric exporter")
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(cfg.MetricsExportInterval),
		)),
	), nil
}
