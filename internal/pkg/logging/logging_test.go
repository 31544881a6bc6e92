package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ferdiebergado/devconnector/internal/pkg/logging"
)

func TestSetupLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logging.SetupLogger("production", "debug", &buf)

	slog.Info("login", "x-auth-token", "eyJhbGciOi", "password", "hunter2", "user_id", "u1")

	out := buf.String()
	for _, secret := range []string{"eyJhbGciOi", "hunter2"} {
		if strings.Contains(out, secret) {
			t.Errorf("log output %q contains %q", out, secret)
		}
	}

	if !strings.Contains(out, `"user_id":"u1"`) {
		t.Errorf("log output %q does not contain user_id", out)
	}
}

func TestSetupLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logging.SetupLogger("development", "warn", &buf)

	slog.Info("hidden")
	slog.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("log output %q contains info message at warn level", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("log output %q does not contain warn message", out)
	}
}
