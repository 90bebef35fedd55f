// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "MATCH_THRESHOLD",
		"CAPTURE_TIMEOUT_SECONDS", "POLL_INTERVAL_SECONDS", "LOG_HASH_SALT",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:election.db", "-log-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.MatchThreshold != 0.80 {
		t.Errorf("Expected default match threshold 0.80, got %v", cfg.MatchThreshold)
	}
	if cfg.CaptureTimeout != 10*time.Second {
		t.Errorf("Expected default capture timeout 10s, got %v", cfg.CaptureTimeout)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("Expected default poll interval 5s, got %v", cfg.PollInterval)
	}
}

func TestParseFlagsExplicit(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{
		"-p", "9090",
		"-d", "postgres://localhost/election",
		"-t", "postgres",
		"-match-threshold", "0.9",
		"-capture-timeout", "30",
		"-poll-interval", "2",
		"-log-salt", "s3cret",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected database type postgres, got %q", cfg.DatabaseType)
	}
	if cfg.MatchThreshold != 0.9 {
		t.Errorf("Expected match threshold 0.9, got %v", cfg.MatchThreshold)
	}
	if cfg.CaptureTimeout != 30*time.Second {
		t.Errorf("Expected capture timeout 30s, got %v", cfg.CaptureTimeout)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("Expected poll interval 2s, got %v", cfg.PollInterval)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "file:election.db")
	t.Setenv("LOG_HASH_SALT", "env-salt")
	t.Setenv("MATCH_THRESHOLD", "0.75")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 7000 {
		t.Errorf("Expected port 7000 from env, got %d", cfg.Port)
	}
	if cfg.LogHashSalt != "env-salt" {
		t.Errorf("Expected salt from env, got %q", cfg.LogHashSalt)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Errorf("Expected match threshold 0.75 from env, got %v", cfg.MatchThreshold)
	}
}

func TestParseFlagsValidation(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name string
		args []string
	}{
		{"missing database URL", []string{"-log-salt", "s"}},
		{"missing log salt", []string{"-d", "file:x.db"}},
		{"bad database type", []string{"-d", "file:x.db", "-t", "oracle", "-log-salt", "s"}},
		{"threshold above one", []string{"-d", "file:x.db", "-match-threshold", "1.5", "-log-salt", "s"}},
		{"negative threshold", []string{"-d", "file:x.db", "-match-threshold", "-0.1", "-log-salt", "s"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFlags(tc.args); err == nil {
				t.Errorf("Expected an error for %s", tc.name)
			}
		})
	}
}
