package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgard/cogisbot/internal/config"
)

func TestLoadConfig_FromFile(t *testing.T) {
	yaml := `
telegram:
  token: "123:abc"
logger:
  level: debug
  json: true
lookup:
  timeout: 30s
scheduler:
  tasks:
    catalog_refresh:
      enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("logger config = %+v", cfg.Logger)
	}
	if cfg.Lookup.Timeout != 30*time.Second {
		t.Errorf("lookup timeout = %v", cfg.Lookup.Timeout)
	}
	if task, ok := cfg.Scheduler.Tasks["catalog_refresh"]; !ok || task.Enabled {
		t.Errorf("catalog_refresh task = %+v, want present and disabled", task)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "456:def")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Telegram.Token != "456:def" {
		t.Errorf("token from env = %q", cfg.Telegram.Token)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logger.Level)
	}
	if cfg.Lookup.Timeout != 15*time.Second {
		t.Errorf("default lookup timeout = %v", cfg.Lookup.Timeout)
	}
	if cfg.Database.Path == "" || cfg.Settings.Path == "" {
		t.Errorf("storage paths not defaulted: %+v", cfg)
	}
	if cfg.Messages.Welcome == "" || cfg.Messages.NotAuthorized == "" {
		t.Error("message templates not defaulted")
	}
	task, ok := cfg.Scheduler.Tasks["catalog_refresh"]
	if !ok || !task.Enabled || task.Schedule == "" {
		t.Errorf("default catalog_refresh task = %+v", task)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "Missing token",
			yaml: "logger:\n  level: info\n",
		},
		{
			name: "Bad log level",
			yaml: "telegram:\n  token: \"1:a\"\nlogger:\n  level: loud\n",
		},
		{
			name: "Lookup timeout out of range",
			yaml: "telegram:\n  token: \"1:a\"\nlookup:\n  timeout: 10m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if _, err := config.LoadConfig(path); err == nil {
				t.Error("LoadConfig accepted invalid configuration")
			}
		})
	}
}
