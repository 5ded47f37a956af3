package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_STR", "hello")
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_INT_BAD", "forty-two")
	t.Setenv("CFG_BOOL", "true")
	t.Setenv("CFG_DUR", "90s")
	t.Setenv("CFG_DUR_BAD", "soon")

	if got := GetEnvString("CFG_STR", "x"); got != "hello" {
		t.Errorf("GetEnvString = %q", got)
	}
	if got := GetEnvString("CFG_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnvString missing = %q", got)
	}
	if got := GetEnvInt("CFG_INT", 0); got != 42 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("CFG_INT_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt invalid = %d, want default", got)
	}
	if got := GetEnvBool("CFG_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}
	if got := GetEnvDuration("CFG_DUR", 0); got != 90*time.Second {
		t.Errorf("GetEnvDuration = %v", got)
	}
	if got := GetEnvDuration("CFG_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration invalid = %v, want default", got)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Worker.PurgeSchedule != "@hourly" {
		t.Errorf("PurgeSchedule = %q, want @hourly", cfg.Worker.PurgeSchedule)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9000"
  base_url: "https://vnnews.vn"
worker:
  digest_schedule: "0 6 * * *"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_ADDR", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Env beats file, file beats default.
	if cfg.Server.Addr != ":9100" {
		t.Errorf("Addr = %q, want env override :9100", cfg.Server.Addr)
	}
	if cfg.Server.BaseURL != "https://vnnews.vn" {
		t.Errorf("BaseURL = %q, want file value", cfg.Server.BaseURL)
	}
	if cfg.Worker.DigestSchedule != "0 6 * * *" {
		t.Errorf("DigestSchedule = %q, want file value", cfg.Worker.DigestSchedule)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want default", cfg.Server.RequestTimeout)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded on malformed YAML")
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration(time.Second); err != nil {
		t.Errorf("positive duration rejected: %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("zero duration accepted")
	}
	if err := ValidatePositiveDuration(-time.Second); err == nil {
		t.Error("negative duration accepted")
	}
}
