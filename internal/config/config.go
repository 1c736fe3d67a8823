package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
	Analysis AnalysisConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// Enabled reports whether enough settings are present to open a pool.
func (d DatabaseConfig) Enabled() bool {
	return d.DBHost != "" && d.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AdminSecret    string
	AdminExpiresIn time.Duration
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type AnalysisConfig struct {
	MaxFileSize        int64
	SupportedFileTypes []string
	MaxExtractedSkills int
	JobFetchTimeout    time.Duration
	JobFetchHeadless   bool
	// JobFetchAllowPrivate lets job urls point at private networks.
	JobFetchAllowPrivate bool
	BatchWorkers         int
	// Retention is how long stored analyses are kept before a purge.
	Retention time.Duration
}

const (
	defaultMaxFileSize      = 10 * 1024 * 1024
	defaultMaxSkills        = 20
	defaultJobFetchTimeout  = 20 * time.Second
	defaultBatchWorkers     = 4
	defaultRetention        = 30 * 24 * time.Hour
	defaultAdminExpiresIn   = 12 * time.Hour
	defaultRedisTTL         = 600 * time.Second
	defaultRabbitMQExchange = "skillsift.events"
)

var defaultSupportedFileTypes = []string{".pdf", ".docx", ".txt"}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			return d
		}
		// bare numbers are seconds
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return time.Duration(v) * time.Second
		}
		invalid = append(invalid, key)
		return def
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 0),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", defaultRedisTTL),
	}

	cfg.JWT = JWTConfig{
		AdminSecret:    opt("ADMIN_JWT_SECRET"),
		AdminExpiresIn: optDuration("ADMIN_JWT_EXPIRES_IN", defaultAdminExpiresIn),
	}

	cfg.RabbitMQ = RabbitMQConfig{
		URL:      opt("RABBITMQ_URL"),
		Exchange: opt("RABBITMQ_EXCHANGE"),
	}
	if cfg.RabbitMQ.Exchange == "" {
		cfg.RabbitMQ.Exchange = defaultRabbitMQExchange
	}

	cfg.Analysis = AnalysisConfig{
		MaxFileSize:          int64(optInt("MAX_FILE_SIZE", defaultMaxFileSize)),
		SupportedFileTypes:   parseFileTypes(opt("SUPPORTED_FILE_TYPES")),
		MaxExtractedSkills:   optInt("MAX_EXTRACTED_SKILLS", defaultMaxSkills),
		JobFetchTimeout:      optDuration("JOB_FETCH_TIMEOUT", defaultJobFetchTimeout),
		JobFetchHeadless:     optBool("JOB_FETCH_HEADLESS", false),
		JobFetchAllowPrivate: optBool("JOB_FETCH_ALLOW_PRIVATE", false),
		BatchWorkers:         optInt("BATCH_WORKERS", defaultBatchWorkers),
		Retention:            optDuration("ANALYSIS_RETENTION", defaultRetention),
	}
	if cfg.Analysis.BatchWorkers <= 0 {
		cfg.Analysis.BatchWorkers = defaultBatchWorkers
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Default returns a configuration usable without any environment, for the
// CLI and tests.
func Default() Config {
	return Config{
		App:      AppConfig{AppName: "skillsift", Environment: "local", HTTPPort: "8080"},
		Redis:    RedisConfig{TTL: defaultRedisTTL},
		JWT:      JWTConfig{AdminExpiresIn: defaultAdminExpiresIn},
		RabbitMQ: RabbitMQConfig{Exchange: defaultRabbitMQExchange},
		Analysis: AnalysisConfig{
			MaxFileSize:        defaultMaxFileSize,
			SupportedFileTypes: append([]string(nil), defaultSupportedFileTypes...),
			MaxExtractedSkills: defaultMaxSkills,
			JobFetchTimeout:    defaultJobFetchTimeout,
			BatchWorkers:       defaultBatchWorkers,
			Retention:          defaultRetention,
		},
	}
}

func parseFileTypes(raw string) []string {
	if raw == "" {
		return append([]string(nil), defaultSupportedFileTypes...)
	}
	out := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return append([]string(nil), defaultSupportedFileTypes...)
	}
	return out
}
