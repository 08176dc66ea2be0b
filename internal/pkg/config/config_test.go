//go:build unit

package config_test

import (
	"testing"
	"time"

	"redemption-ledger/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, config.NewTestConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"short secret", func(c *config.Config) { c.JWT.Secret = "abc" }, "JWT_SECRET"},
		{"threshold above one", func(c *config.Config) { c.Redemption.MatchThreshold = 1.5 }, "MATCH_THRESHOLD"},
		{"empty retry schedule", func(c *config.Config) { c.Redemption.RetrySchedule = nil }, "REDEMPTION_RETRY_SCHEDULE"},
		{"lease shorter than job", func(c *config.Config) { c.Worker.LeaseDuration = time.Second }, "WORKER_LEASE_DURATION"},
		{"zero burst", func(c *config.Config) { c.RateLimit.ReceiptBurst = 0 }, "rate limit"},
		{"tracing sample ratio", func(c *config.Config) {
			c.Tracing = config.TracingConfig{Enabled: true, Endpoint: "otel:4318", SampleRatio: 2}
		}, "TRACING_SAMPLE_RATIO"},
		{"tracing without endpoint", func(c *config.Config) {
			c.Tracing = config.TracingConfig{Enabled: true, SampleRatio: 1}
		}, "TRACING_OTLP_ENDPOINT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "ledger")
	t.Setenv("JWT_SECRET", "a-long-enough-secret")
	t.Setenv("AUTHORITY_BASE_URL", "http://authority")
	t.Setenv("OCR_BASE_URL", "http://ocr")
	t.Setenv("REDEMPTION_RETRY_SCHEDULE", "10s,1m")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{10 * time.Second, time.Minute}, cfg.Redemption.RetrySchedule)
	assert.Equal(t, 0.30, cfg.Redemption.ReferralRate)
	assert.Equal(t, 30*time.Second, cfg.JWT.Leeway)
	assert.NoError(t, cfg.Validate())
}
