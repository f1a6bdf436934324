package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cover     CoverConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	BaseURL     string // public base URL, dùng để build cover reference
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// CoverConfig cấu hình việc tải và lưu ảnh bìa sách
type CoverConfig struct {
	Storage        string // local | minio
	Dir            string // thư mục lưu artifact khi Storage = local
	RoutePrefix    string // path public phục vụ ảnh bìa, vd: /api/books/cover/
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxBytes       int64
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // bookcovers
	UseSSL    bool   // false for local
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type WorkerConfig struct {
	Concurrency int
	SweepSpec   string        // cron spec cho job dọn artifact mồ côi, "off" = tắt
	SweepMinAge time.Duration // artifact mới hơn ngưỡng này có thể thuộc transaction chưa commit
	HealthAddr  string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bookcatalog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Cover: CoverConfig{
			Storage:        getEnv("COVER_STORAGE", "local"),
			Dir:            getEnv("COVER_DIR", "./uploads/bookcovers"),
			RoutePrefix:    getEnv("COVER_ROUTE_PREFIX", "/api/books/cover/"),
			ConnectTimeout: getEnvDuration("COVER_CONNECT_TIMEOUT", 3*time.Second),
			ReadTimeout:    getEnvDuration("COVER_READ_TIMEOUT", 3*time.Second),
			MaxBytes:       int64(getEnvInt("COVER_MAX_BYTES", 10*1024*1024)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "bookcovers"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
			Burst: getEnvInt("RATE_LIMIT_BURST", 10),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 5),
			SweepSpec:   getEnv("COVER_SWEEP_SPEC", "@every 1h"),
			SweepMinAge: getEnvDuration("COVER_SWEEP_MIN_AGE", 15*time.Minute),
			HealthAddr:  getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.BaseURL == "" {
		return fmt.Errorf("APP_BASE_URL must not be empty")
	}
	switch c.Cover.Storage {
	case "local", "minio":
	default:
		return fmt.Errorf("COVER_STORAGE must be local or minio, got %q", c.Cover.Storage)
	}
	if strings.Trim(c.Cover.RoutePrefix, "/") == "" {
		return fmt.Errorf("COVER_ROUTE_PREFIX must not be empty")
	}
	// cover route được mount trong group /api/books
	if !strings.HasPrefix(strings.Trim(c.Cover.RoutePrefix, "/"), "api/books/") {
		return fmt.Errorf("COVER_ROUTE_PREFIX must be under /api/books/, got %q", c.Cover.RoutePrefix)
	}
	if c.Cover.ConnectTimeout <= 0 || c.Cover.ReadTimeout <= 0 {
		return fmt.Errorf("cover timeouts must be positive")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
