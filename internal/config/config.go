package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBackendURL     = "http://localhost:5000"
	DefaultServerPort     = "8080"
	DefaultScanSessionTTL = 2 * time.Minute
)

type Config struct {
	BackendURL    string
	ServerPort    string
	SessionSecret string
	DBDSN         string
	LogLevel      string

	// 0 keeps the bulk import fan-out unbounded.
	ImportConcurrency int
	ScanSessionTTL    time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// FromEnv builds the config from a lookup function so tests don't touch the process env.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		BackendURL:     strings.TrimRight(getenv("BACKEND_URL"), "/"),
		ServerPort:     getenv("SERVER_PORT"),
		SessionSecret:  getenv("SESSION_SECRET"),
		DBDSN:          getenv("DB_DSN"),
		LogLevel:       getenv("LOG_LEVEL"),
		ScanSessionTTL: DefaultScanSessionTTL,
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = DefaultServerPort
	}
	if cfg.SessionSecret == "" {
		return nil, errMissing("SESSION_SECRET")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if v := getenv("IMPORT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errInvalid("IMPORT_CONCURRENCY", v)
		}
		cfg.ImportConcurrency = n
	}
	if v := getenv("SCAN_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errInvalid("SCAN_SESSION_TTL", v)
		}
		cfg.ScanSessionTTL = d
	}

	return cfg, nil
}

// SetupLogging applies LOG_LEVEL to the global logrus logger.
func (c *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
