package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ferdiebergado/devconnector/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `{
		"app": {"key": "from-file"},
		"server": {"port": 8000, "read_timeout": "3s"},
		"jwt": {"ttl": "1h"}
	}`)

	t.Setenv("DEVCONNECTOR_SERVER__PORT", "9000")
	t.Setenv("DEVCONNECTOR_DB__PASSWORD", "hunter2")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load(%q) = %v, want: %v", path, err, nil)
	}

	if got, want := cfg.Server.Port, 9000; got != want {
		t.Errorf("cfg.Server.Port = %d, want: %d", got, want)
	}

	if got, want := cfg.Server.ReadTimeout, 3*time.Second; got != want {
		t.Errorf("cfg.Server.ReadTimeout = %v, want: %v", got, want)
	}

	if got, want := cfg.JWT.TTL, time.Hour; got != want {
		t.Errorf("cfg.JWT.TTL = %v, want: %v", got, want)
	}

	if got, want := cfg.JWT.Header, "x-auth-token"; got != want {
		t.Errorf("cfg.JWT.Header = %q, want: %q", got, want)
	}

	if got, want := cfg.DB.Password, "hunter2"; got != want {
		t.Errorf("cfg.DB.Password = %q, want: %q", got, want)
	}

	wantOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.Server.AllowedOrigins, wantOrigins) {
		t.Errorf("cfg.Server.AllowedOrigins = %v, want: %v", cfg.Server.AllowedOrigins, wantOrigins)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": 8000}}`)

	_, err := config.Load(path)
	if !errors.Is(err, config.ErrMissingKey) {
		t.Errorf("config.Load(%q) = %v, want: %v", path, err, config.ErrMissingKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.json")
	if _, err := config.Load(path); err == nil {
		t.Errorf("config.Load(%q) = nil, want: error", path)
	}
}
