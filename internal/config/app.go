package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"WashroomMonitor/internal/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppConfig holds the server settings read from the environment.
type AppConfig struct {
	Port             string
	CORSOrigins      []string
	DisplayTimezone  string
	StorageTimezone  string
	JWTKey           []byte
	TokenTTL         time.Duration
	AuthRequired     bool
	ReportCacheTTL   time.Duration
	ReminderInterval time.Duration
	RedisURL         string
}

func NewAppConfig(log *zap.Logger) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:            getEnv("PORT", "8080"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", clock.DefaultDisplayZone),
		StorageTimezone: getEnv("STORAGE_TIMEZONE", "Local"),
		JWTKey:          []byte(os.Getenv("JWT_KEY")),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReportCacheTTL, err = getDuration("REPORT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReminderInterval, err = getDuration("REMINDER_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.AuthRequired, err = getBool("AUTH_REQUIRED", false); err != nil {
		return nil, err
	}

	if len(cfg.JWTKey) == 0 {
		log.Warn("JWT_KEY not set, using a random key; tokens will not survive a restart")
		cfg.JWTKey = []byte(uuid.NewString())
	}
	return cfg, nil
}

// Addr is the listen address.
func (c *AppConfig) Addr() string {
	return ":" + c.Port
}

// NewClock builds the time normalizer from the configured zones.
func NewClock(cfg *AppConfig) (*clock.Clock, error) {
	display, err := clock.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	storage, err := clock.LoadLocation(cfg.StorageTimezone)
	if err != nil {
		return nil, fmt.Errorf("STORAGE_TIMEZONE: %w", err)
	}
	return clock.New(display, storage), nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
