package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Backend     BackendConfig
	Catalog     CatalogConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig points at the authoritative REST backend (catalog, transactions, login).
type BackendConfig struct {
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	FetchRate  float64
	FetchBurst int
}

type CatalogConfig struct {
	SearchDebounce time.Duration
	FetchTimeout   time.Duration
}

type AuthConfig struct {
	// JWTSecret verifies backend tokens when set; otherwise claims are read unverified.
	JWTSecret  string
	SessionTTL time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getString("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Backend: BackendConfig{
			BaseURL:    getString("BACKEND_BASE_URL", "http://localhost:8000"),
			Timeout:    getDuration("BACKEND_TIMEOUT", 10*time.Second),
			PageSize:   getInt("BACKEND_PAGE_SIZE", 10),
			FetchRate:  getFloat("BACKEND_FETCH_RATE", 10),
			FetchBurst: getInt("BACKEND_FETCH_BURST", 5),
		},
		Catalog: CatalogConfig{
			SearchDebounce: getDuration("CATALOG_SEARCH_DEBOUNCE", 500*time.Millisecond),
			FetchTimeout:   getDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:  getString("JWT_SECRET", ""),
			SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Host:     getString("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:            getString("DB_HOST", ""),
			Port:            getInt("DB_PORT", 3306),
			User:            getString("DB_USER", "root"),
			Password:        getString("DB_PASSWORD", ""),
			Name:            getString("DB_NAME", "pos_terminal"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getString("RABBITMQ_HOST", ""),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getString("RABBITMQ_USER", "guest"),
			Password: getString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

// GetDSN builds the MySQL DSN for the checkout journal.
func (c *Config) GetDSN() string {
	d := c.Database
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local", d.User, d.Password, d.Host, d.Port, d.Name)
}

// Enabled reports whether the checkout journal database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func (r RabbitMQConfig) Enabled() bool {
	return r.Host != ""
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(getString(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getString(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getString(key, ""))
	if err != nil {
		return def
	}
	return v
}
