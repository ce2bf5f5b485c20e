package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string

	// CartStore selects the cart persistence backend: memory, sqlite, postgres or mongo.
	CartStore string

	JWTSecret string

	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string

	CORSOrigins       []string
	AnalyticsInterval time.Duration
	LogLevel          string
}

// Load reads the process environment, pulling in a .env file outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	interval, err := time.ParseDuration(getEnv("ANALYTICS_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_INTERVAL: %w", err)
	}

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8000"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "armenu"),
		SQLitePath:    getEnv("SQLITE_PATH", "carts.db"),

		CartStore: strings.ToLower(getEnv("CART_STORE", "postgres")),

		JWTSecret: os.Getenv("JWT_SECRET"),

		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),

		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		AnalyticsInterval: interval,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.CartStore {
	case "memory", "sqlite", "postgres", "mongo":
	default:
		return nil, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Require fails when any of the listed environment variables is empty.
func Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if os.Getenv(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
