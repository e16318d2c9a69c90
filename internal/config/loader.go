package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the CRM service.
type Config struct {
	HTTPPort           int
	SQLiteDSN          string
	SeedFile           string
	SessionTTL         time.Duration
	PropertyFetchDelay time.Duration
	GlobalSearchLimit  int
	MetricsMode        string
	LogLevel           slog.Level
	Location           *time.Location
}

// LoadEnvFiles copies variables from the given .env files into the process
// environment. Files that do not exist are skipped and variables that are
// already set keep their value.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("kunde inte läsa %s: %w", path, err)
		}
	}
	return nil
}

// Load parses configuration values from the current process environment.
//
// Every variable is optional. Invalid values are collected and reported in a
// single error so an operator can fix them in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:           8080,
		SessionTTL:         24 * time.Hour,
		PropertyFetchDelay: 500 * time.Millisecond,
		GlobalSearchLimit:  5,
		MetricsMode:        "placeholder",
		LogLevel:           slog.LevelInfo,
	}

	invalid := make([]string, 0, 2)

	if portValue := lookup("CRM_HTTP_PORT"); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "CRM_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	cfg.SQLiteDSN = lookup("CRM_SQLITE_DSN")
	cfg.SeedFile = lookup("CRM_SEED_FILE")

	if ttlValue := lookup("CRM_SESSION_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CRM_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if delayValue := lookup("CRM_PROPERTY_FETCH_DELAY"); delayValue != "" {
		delay, err := time.ParseDuration(delayValue)
		if err != nil || delay < 0 {
			invalid = append(invalid, "CRM_PROPERTY_FETCH_DELAY")
		} else {
			cfg.PropertyFetchDelay = delay
		}
	}

	if limitValue := lookup("CRM_GLOBAL_SEARCH_LIMIT"); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "CRM_GLOBAL_SEARCH_LIMIT")
		} else {
			cfg.GlobalSearchLimit = limit
		}
	}

	if mode := strings.ToLower(lookup("CRM_METRICS_MODE")); mode != "" {
		switch mode {
		case "placeholder", "activity":
			cfg.MetricsMode = mode
		default:
			invalid = append(invalid, "CRM_METRICS_MODE")
		}
	}

	if levelValue := lookup("CRM_LOG_LEVEL"); levelValue != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(levelValue)); err != nil {
			invalid = append(invalid, "CRM_LOG_LEVEL")
		}
	}

	zone := lookup("CRM_TIMEZONE")
	if zone == "" {
		zone = "Europe/Stockholm"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		invalid = append(invalid, "CRM_TIMEZONE")
	} else {
		cfg.Location = loc
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("ogiltiga värden i miljövariabler: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
