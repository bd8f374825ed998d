package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Statistic and time-range defaults shared by the CLI and the server.
const (
	DefaultStatistic = "median"
	DefaultPlatform  = "pc"
	DefaultTimeRange = 10
	MaxTimeRange     = 60
	MinTimeRange     = 1
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIRoot        string
	UserAgent      string
	RequestTimeout int // seconds

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	SnapshotEnabled bool
	SnapshotPath    string

	HistoryEnabled   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ServerAddr string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIRoot:        getEnv("WARMAC_API_ROOT", "https://api.warframe.market/v1"),
		UserAgent:      getEnv("WARMAC_USER_AGENT", "Mozilla/5.0 Gecko/20100101 Firefox/116.0"),
		RequestTimeout: getEnvInt("WARMAC_REQUEST_TIMEOUT", 5),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 500),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		SnapshotEnabled: getEnvBool("SNAPSHOT_ENABLED", false),
		SnapshotPath:    getEnv("SNAPSHOT_PATH", "./output/raw_orders.csv"),

		HistoryEnabled:   getEnvBool("HISTORY_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "warmac"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "warmac123"),
		PostgresDB:       getEnv("POSTGRES_DB", "warmac_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
