// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"

	"github.com/danielhkuo/pollhall/models"
)

// setRequiredEnv provides the secrets every successful parse needs.
func setRequiredEnv(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "env-token-secret")
	t.Setenv("IP_HASH_SALT", "env-ip-salt")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{"-d", "file:app.db"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 3320 {
		t.Errorf("Port = %d, want 3320", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.VotePolicy != models.PolicyDualKey {
		t.Errorf("VotePolicy = %q, want %q", cfg.VotePolicy, models.PolicyDualKey)
	}
	if cfg.Ownerless {
		t.Error("Ownerless = true, want false by default")
	}
	if cfg.TokenSecret != "env-token-secret" {
		t.Errorf("TokenSecret = %q, want value from env", cfg.TokenSecret)
	}
}

func TestParseFlags_EnvFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "file:env.db")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("VOTE_POLICY", models.PolicyUserKey)
	t.Setenv("OWNERLESS", "true")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "file:env.db" {
		t.Errorf("DatabaseURL = %q, want file:env.db", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.VotePolicy != models.PolicyUserKey {
		t.Errorf("VotePolicy = %q, want %q", cfg.VotePolicy, models.PolicyUserKey)
	}
	if !cfg.Ownerless {
		t.Error("Ownerless = false, want true from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "file:env.db")
	t.Setenv("VOTE_POLICY", models.PolicyDualKey)

	cfg, err := ParseFlags([]string{
		"-p", "9090",
		"-d", "file:cli.db",
		"-policy", models.PolicyUserKey,
		"-ownerless",
	})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want CLI value 9090", cfg.Port)
	}
	if cfg.DatabaseURL != "file:cli.db" {
		t.Errorf("DatabaseURL = %q, want CLI value", cfg.DatabaseURL)
	}
	if cfg.VotePolicy != models.PolicyUserKey {
		t.Errorf("VotePolicy = %q, want CLI value", cfg.VotePolicy)
	}
	if !cfg.Ownerless {
		t.Error("Ownerless = false, want true from flag")
	}
}

func TestParseFlags_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{
			name: "missing database url",
			args: nil,
		},
		{
			name: "bad database type",
			args: []string{"-d", "file:app.db", "-t", "oracle"},
		},
		{
			name: "bad vote policy",
			args: []string{"-d", "file:app.db", "-policy", "hybrid"},
		},
		{
			name: "bad PORT env",
			args: []string{"-d", "file:app.db"},
			env:  map[string]string{"PORT": "not-a-number"},
		},
		{
			name: "missing token secret",
			args: []string{"-d", "file:app.db"},
			env:  map[string]string{"TOKEN_SECRET": ""},
		},
		{
			name: "missing ip salt",
			args: []string{"-d", "file:app.db"},
			env:  map[string]string{"IP_HASH_SALT": ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("ParseFlags() error = nil, want error")
			}
		})
	}
}
