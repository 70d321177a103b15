package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv string

	// Store selection
	StoreDriver string

	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Mongo
	MongoURI      string
	MongoDatabase string

	// Redis (category cache, optional)
	RedisURL         string
	CategoryCacheTTL time.Duration

	// JWT
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Third-party services
	StripeSecretKey string
	CloudinaryURL   string
	SentryDSN       string

	// Server
	Port               string
	CORSOrigins        string
	RateLimitPerMinute int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using system environment variables")
	}

	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),

		StoreDriver: getEnv("STORE_DRIVER", DriverPostgres),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lapsell_corner"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "lapsellCorner"),

		RedisURL:         getEnv("REDIS_URL", ""),
		CategoryCacheTTL: parseDuration(getEnv("CATEGORY_CACHE_TTL", "10m"), 10*time.Minute),

		JWTSecret:       getEnv("ACCESS_TOKEN", getEnv("JWT_SECRET", "")),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		CloudinaryURL:   getEnv("CLOUDINARY_URL", ""),
		SentryDSN:       getEnv("SENTRY_DSN", ""),

		Port:               getEnv("PORT", "5000"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMinute: parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "120"), 120),
	}
}

// Validate reports the first missing setting required to serve traffic.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("ACCESS_TOKEN environment variable is required")
	}
	return c.ValidateStore()
}

// ValidateStore checks only the settings of the selected store driver.
func (c *Config) ValidateStore() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI environment variable is required")
		}
	case DriverMemory:
	default:
		return errors.New("STORE_DRIVER must be one of postgres, mongo, memory")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
