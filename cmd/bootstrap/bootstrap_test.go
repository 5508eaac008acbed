package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-vaccine-registration/config"

	"github.com/sirupsen/logrus"
)

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registration.log")

	sink, err := setupLogger(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("setupLogger() error: %v", err)
	}
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
	if sink == nil {
		t.Fatal("expected a closer for the file sink")
	}

	logrus.Debug("wizard started")
	sink.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"msg":"wizard started"`) {
		t.Errorf("log file = %s", raw)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", logrus.GetLevel())
	}
}

func TestSetupLogger_Stdout(t *testing.T) {
	sink, err := setupLogger(config.LogConfig{Level: "warn"})
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })
	if err != nil || sink != nil {
		t.Fatalf("setupLogger() = %v, %v", sink, err)
	}
}

func TestSetupLogger_BadLevel(t *testing.T) {
	if _, err := setupLogger(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
