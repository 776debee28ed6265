package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAPI, "")
	path := writeFile(t, "config.yaml", `
log_level: debug
api:
  base_url: http://analysis-vm:5000
  timeout: 3s
ui:
  sensors: [Cowrie, Honeytrap]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.API.BaseURL != "http://analysis-vm:5000" || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.UI.Sensors) != 2 || cfg.UI.Sensors[1] != "Honeytrap" {
		t.Fatalf("unexpected sensors: %v", cfg.UI.Sensors)
	}
	if cfg.UI.CopyFeedback != 1200*time.Millisecond {
		t.Fatalf("copy_feedback default not applied: %v", cfg.UI.CopyFeedback)
	}
}

func TestLoadJSON(t *testing.T) {
	t.Setenv(EnvAPI, "")
	path := writeFile(t, "config.json", `{"api": {"base_url": "https://tpot.example:8443"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://tpot.example:8443" || cfg.API.Timeout != 15*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
}

func TestLoadJSONWithDurations(t *testing.T) {
	t.Setenv(EnvAPI, "")
	path := writeFile(t, "config.json", `{"api": {"base_url": "http://x:5000", "timeout": "15s"}, "ui": {"copy_feedback": "2s"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Timeout != 15*time.Second || cfg.UI.CopyFeedback != 2*time.Second {
		t.Fatalf("durations not decoded: timeout=%v copy_feedback=%v", cfg.API.Timeout, cfg.UI.CopyFeedback)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvAPI, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.UI.Sensors) == 0 || cfg.API.BaseURL == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAPI, "http://10.0.0.2:5000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.2:5000" {
		t.Fatalf("env override ignored: %s", cfg.API.BaseURL)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv(EnvAPI, "")
	cases := map[string]string{
		"empty":        "   ",
		"bad url":      "api:\n  base_url: not-a-url\n",
		"bad scheme":   "api:\n  base_url: ftp://host\n",
		"bad level":    "log_level: chatty\n",
		"reserved all": "ui:\n  sensors: [all]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "config.yaml", content)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}
