package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	LogHashSalt    string
	MatchThreshold float64
	CaptureTimeout time.Duration
	PollInterval   time.Duration
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var captureTimeoutSec, pollIntervalSec int

	fs := flag.NewFlagSet("unielect", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election tuning
	fs.Float64Var(&cfg.MatchThreshold, "match-threshold", 0, "Biometric acceptance threshold (0..1)")
	fs.IntVar(&captureTimeoutSec, "capture-timeout", 0, "Seconds before an unresolved capture times out")
	fs.IntVar(&pollIntervalSec, "poll-interval", 0, "Auditor leaderboard poll interval in seconds")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.LogHashSalt, "log-salt", "", "Salt for hashed IDs in audit logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.MatchThreshold == 0 {
		if s := os.Getenv("MATCH_THRESHOLD"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid MATCH_THRESHOLD env variable")
			}
			cfg.MatchThreshold = v
		} else {
			cfg.MatchThreshold = 0.80
		}
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 1 {
		return Config{}, errors.New("match threshold must be in (0, 1]")
	}

	if captureTimeoutSec == 0 {
		if s := os.Getenv("CAPTURE_TIMEOUT_SECONDS"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid CAPTURE_TIMEOUT_SECONDS env variable")
			}
			captureTimeoutSec = v
		} else {
			captureTimeoutSec = 10
		}
	}
	cfg.CaptureTimeout = time.Duration(captureTimeoutSec) * time.Second

	if pollIntervalSec == 0 {
		if s := os.Getenv("POLL_INTERVAL_SECONDS"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid POLL_INTERVAL_SECONDS env variable")
			}
			pollIntervalSec = v
		} else {
			pollIntervalSec = 5
		}
	}
	cfg.PollInterval = time.Duration(pollIntervalSec) * time.Second

	// Secrets - MUST be provided
	if cfg.LogHashSalt == "" {
		cfg.LogHashSalt = os.Getenv("LOG_HASH_SALT")
	}
	if cfg.LogHashSalt == "" {
		return Config{}, errors.New("LOG_HASH_SALT required")
	}

	return cfg, nil
}
