package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, collaborator URLs), secrets
// - default: Business parameters and tuning values shared by every environment
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Redemption RedemptionConfig
	Authority  AuthorityConfig
	OCR        OCRConfig
	Worker     WorkerConfig
	RateLimit  RateLimitConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
	// empty disables the rotating file sink
	File           string `envconfig:"LOG_FILE"`
	FileMaxSizeMB  int    `envconfig:"LOG_FILE_MAX_SIZE_MB" default:"100"`
	FileMaxBackups int    `envconfig:"LOG_FILE_MAX_BACKUPS" default:"5"`
	FileMaxAgeDays int    `envconfig:"LOG_FILE_MAX_AGE_DAYS" default:"28"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// empty accepts tokens from any issuer
	Issuer string        `envconfig:"JWT_ISSUER"`
	Leeway time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type RedemptionConfig struct {
	ClaimTTL         time.Duration   `envconfig:"CLAIM_TTL" default:"168h"`
	ReceiptMaxAge    time.Duration   `envconfig:"RECEIPT_MAX_AGE" default:"168h"`
	ReceiptRetention time.Duration   `envconfig:"RECEIPT_RETENTION" default:"2160h"`
	MaxImageBytes    int64           `envconfig:"RECEIPT_MAX_IMAGE_BYTES" default:"10485760"`
	MatchThreshold   float64         `envconfig:"MATCH_THRESHOLD" default:"0.75"`
	CategoryBoost    float64         `envconfig:"MATCH_CATEGORY_BOOST" default:"0.10"`
	TieBreak         string          `envconfig:"MATCH_TIE_BREAK" default:"earliest_claim"`
	VocabularyFile   string          `envconfig:"MATCH_VOCABULARY_FILE"`
	ReferralRate     float64         `envconfig:"REFERRAL_RATE" default:"0.30"`
	ReferralBase     string          `envconfig:"REFERRAL_BASE" default:"margin"`
	RetrySchedule    []time.Duration `envconfig:"REDEMPTION_RETRY_SCHEDULE" default:"30s,1m,5m,15m,1h"`
}

type AuthorityConfig struct {
	BaseURL             string        `envconfig:"AUTHORITY_BASE_URL" required:"true"`
	APIKey              string        `envconfig:"AUTHORITY_API_KEY"`
	RequestTimeout      time.Duration `envconfig:"AUTHORITY_REQUEST_TIMEOUT" default:"10s"`
	BreakerWindow       time.Duration `envconfig:"AUTHORITY_BREAKER_WINDOW" default:"60s"`
	BreakerMinCalls     int           `envconfig:"AUTHORITY_BREAKER_MIN_CALLS" default:"10"`
	BreakerFailureRatio float64       `envconfig:"AUTHORITY_BREAKER_FAILURE_RATIO" default:"0.5"`
	BreakerCooldown     time.Duration `envconfig:"AUTHORITY_BREAKER_COOLDOWN" default:"30s"`
}

type OCRConfig struct {
	BaseURL        string        `envconfig:"OCR_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"OCR_REQUEST_TIMEOUT" default:"30s"`
}

type WorkerConfig struct {
	Concurrency   int           `envconfig:"WORKER_CONCURRENCY" default:"4"`
	PollInterval  time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"1s"`
	JobTimeout    time.Duration `envconfig:"WORKER_JOB_TIMEOUT" default:"60s"`
	LeaseDuration time.Duration `envconfig:"WORKER_LEASE_DURATION" default:"90s"`
	MaxAttempts   int           `envconfig:"WORKER_MAX_ATTEMPTS" default:"10"`
	SweepInterval time.Duration `envconfig:"WORKER_SWEEP_INTERVAL" default:"1m"`
}

type RateLimitConfig struct {
	ReceiptsPerMinute float64 `envconfig:"RATE_LIMIT_RECEIPTS_PER_MINUTE" default:"5"`
	ReceiptBurst      int     `envconfig:"RATE_LIMIT_RECEIPT_BURST" default:"5"`
}

type TracingConfig struct {
	Enabled     bool    `envconfig:"TRACING_ENABLED" default:"false"`
	Endpoint    string  `envconfig:"TRACING_OTLP_ENDPOINT" default:"localhost:4318"`
	Insecure    bool    `envconfig:"TRACING_OTLP_INSECURE" default:"true"`
	ServiceName string  `envconfig:"TRACING_SERVICE_NAME" default:"redemption-ledger"`
	SampleRatio float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings envconfig accepts but the service cannot run with.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}
	check(len(c.JWT.Secret) >= 8, "JWT_SECRET must be at least 8 characters")
	check(c.JWT.Leeway >= 0, "JWT_LEEWAY must not be negative")
	check(c.Redemption.ClaimTTL > 0, "CLAIM_TTL must be positive")
	check(c.Redemption.ReceiptMaxAge > 0, "RECEIPT_MAX_AGE must be positive")
	check(c.Redemption.MaxImageBytes > 0, "RECEIPT_MAX_IMAGE_BYTES must be positive")
	check(c.Redemption.MatchThreshold > 0 && c.Redemption.MatchThreshold <= 1, "MATCH_THRESHOLD must be in (0, 1]")
	check(len(c.Redemption.RetrySchedule) > 0, "REDEMPTION_RETRY_SCHEDULE must not be empty")
	check(c.Worker.Concurrency > 0, "WORKER_CONCURRENCY must be positive")
	check(c.Worker.MaxAttempts > 0, "WORKER_MAX_ATTEMPTS must be positive")
	check(c.Worker.LeaseDuration > c.Worker.JobTimeout, "WORKER_LEASE_DURATION must exceed WORKER_JOB_TIMEOUT")
	check(c.RateLimit.ReceiptsPerMinute > 0 && c.RateLimit.ReceiptBurst > 0, "receipt rate limit must be positive")
	if c.Tracing.Enabled {
		check(c.Tracing.Endpoint != "", "TRACING_OTLP_ENDPOINT must be set when tracing is enabled")
		check(c.Tracing.SampleRatio >= 0 && c.Tracing.SampleRatio <= 1, "TRACING_SAMPLE_RATIO must be in [0, 1]")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Redemption: RedemptionConfig{
			ClaimTTL:         7 * 24 * time.Hour,
			ReceiptMaxAge:    7 * 24 * time.Hour,
			ReceiptRetention: 90 * 24 * time.Hour,
			MaxImageBytes:    1 << 20,
			MatchThreshold:   0.75,
			CategoryBoost:    0.10,
			TieBreak:         "earliest_claim",
			ReferralRate:     0.30,
			ReferralBase:     "margin",
			RetrySchedule:    []time.Duration{30 * time.Second, time.Minute, 5 * time.Minute, 15 * time.Minute, time.Hour},
		},
		Authority: AuthorityConfig{
			BaseURL:             "http://localhost:8890",
			RequestTimeout:      2 * time.Second,
			BreakerWindow:       60 * time.Second,
			BreakerMinCalls:     10,
			BreakerFailureRatio: 0.5,
			BreakerCooldown:     30 * time.Second,
		},
		OCR: OCRConfig{
			BaseURL:        "http://localhost:8890",
			RequestTimeout: 2 * time.Second,
		},
		Worker: WorkerConfig{
			Concurrency:   2,
			PollInterval:  50 * time.Millisecond,
			JobTimeout:    60 * time.Second,
			LeaseDuration: 90 * time.Second,
			MaxAttempts:   5,
			SweepInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			ReceiptsPerMinute: 60,
			ReceiptBurst:      10,
		},
	}
}
