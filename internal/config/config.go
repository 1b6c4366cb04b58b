package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	AMQP      AMQPConfig
	Log       LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BodyLimit   int
	CORSOrigins []string
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production") || strings.EqualFold(a.Environment, "prod")
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
	SlowQueryThreshold    time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type StorageConfig struct {
	Driver    string
	Dir       string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type LogConfig struct {
	Mode string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

var devOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:3002"}

// Load reads configuration from the process environment. A .env file in the
// working directory, when present, is loaded first without overriding variables
// that are already set.
func Load() (Config, error) {
	_ = godotenv.Load()

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
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
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
	optDur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "career-portal"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "5000"),
		BodyLimit:   optInt("HTTP_BODY_LIMIT", 12*1024*1024),
	}
	cfg.App.CORSOrigins = parseOrigins(opt("CORS_ORIGIN", ""), cfg.App.IsProduction())

	cfg.Database = DatabaseConfig{
		DBHost:                req("DB_HOST"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                req("DB_NAME"),
		DBUser:                req("DB_USER"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
		SlowQueryThreshold:    optDur("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR", "localhost:6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      optDur("REDIS_TTL", 10*time.Minute),
	}

	cfg.RateLimit = RateLimitConfig{
		Max:    optInt("RATE_LIMIT_MAX_REQUESTS", 1000),
		Window: time.Duration(optInt("RATE_LIMIT_WINDOW_MS", 15*60*1000)) * time.Millisecond,
	}

	cfg.Storage = StorageConfig{
		Driver:    strings.ToLower(opt("STORAGE_DRIVER", "disk")),
		Dir:       opt("STORAGE_DIR", "uploads/resumes"),
		Bucket:    opt("S3_BUCKET", ""),
		Region:    opt("S3_REGION", "auto"),
		Endpoint:  opt("S3_ENDPOINT", ""),
		AccessKey: opt("S3_ACCESS_KEY", ""),
		SecretKey: opt("S3_SECRET_KEY", ""),
	}
	switch cfg.Storage.Driver {
	case "disk":
	case "s3":
		if cfg.Storage.Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	cfg.AMQP = AMQPConfig{
		URL:      opt("AMQP_URL", ""),
		Exchange: opt("AMQP_EXCHANGE", "career_portal.activity"),
	}

	cfg.Log = LogConfig{Mode: opt("LOG_MODE", cfg.App.Environment)}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func parseOrigins(raw string, production bool) []string {
	out := make([]string, 0)
	seen := map[string]struct{}{}
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	for _, o := range strings.Split(raw, ",") {
		add(o)
	}
	if !production {
		for _, o := range devOrigins {
			add(o)
		}
	}
	return out
}
