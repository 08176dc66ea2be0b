package bootstrap

import (
	"context"
	"log/slog"

	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/observability"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(StartTracing),
)

// StartTracing installs the OTLP tracer provider when tracing is enabled
// and flushes pending spans on shutdown.
func StartTracing(lc fx.Lifecycle, cfg config.Config) error {
	if !cfg.Tracing.Enabled {
		slog.Info("tracing disabled")
		return nil
	}
	tp, err := observability.NewTracerProvider(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}
	observability.InstallTracing(tp)
	slog.Info("tracing enabled",
		"endpoint", cfg.Tracing.Endpoint,
		"sample_ratio", cfg.Tracing.SampleRatio)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return nil
}
