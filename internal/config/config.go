package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	Database  Database
	Logger    Logger
	Browser   Browser
	Oracle    Oracle
	Selectors Selectors
	Metrics   Metrics
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Enabled сообщает, настроено ли хранилище истории запусков.
func (d Database) Enabled() bool {
	return d.Host != ""
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Engine          string
	Endpoint        string
	SpawnLocal      bool
	Display         string
	Headless        bool
	Timeout         time.Duration
	PollInterval    time.Duration
	NavigateTimeout time.Duration
}

type Oracle struct {
	HTTPTimeout time.Duration
}

type Selectors struct {
	Path string
}

type Metrics struct {
	File string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Engine:          env("PW_BROWSER", "firefox"),
			Endpoint:        os.Getenv("PW_ENDPOINT"),
			SpawnLocal:      envBoolDefault("PW_SPAWN_LOCAL", true),
			Display:         os.Getenv("DISPLAY"),
			Headless:        envBoolDefault("PW_HEADLESS", true),
			Timeout:         envDuration("PW_TIMEOUT", 30*time.Second),
			PollInterval:    envDuration("PW_POLL_INTERVAL", 250*time.Millisecond),
			NavigateTimeout: envDuration("PW_NAVIGATE_TIMEOUT", 60*time.Second),
		},
		Oracle: Oracle{
			HTTPTimeout: envDuration("ORACLE_HTTP_TIMEOUT", 30*time.Second),
		},
		Selectors: Selectors{
			Path: os.Getenv("FWPULL_SELECTORS"),
		},
		Metrics: Metrics{
			File: os.Getenv("METRICS_FILE"),
		},
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// envDuration принимает как "30s"/"250ms", так и целое число миллисекунд.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if ms := envInt(key, 0); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envBoolDefault(key string, defaultValue bool) bool {
	if os.Getenv(key) == "" {
		return defaultValue
	}
	return envBool(key)
}
