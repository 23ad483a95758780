package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnvOnlyDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Discovery.ProbabilityThreshold != 0.05 {
		t.Errorf("probability threshold = %v, want 0.05", cfg.Discovery.ProbabilityThreshold)
	}
	if cfg.Discovery.Interval != 360*time.Second {
		t.Errorf("discovery interval = %v, want 360s", cfg.Discovery.Interval)
	}
	if cfg.Discovery.PageLimit != 500 {
		t.Errorf("discovery page limit = %d, want 500", cfg.Discovery.PageLimit)
	}
	if cfg.Detector.Interval != 4*time.Second {
		t.Errorf("detector interval = %v, want 4s", cfg.Detector.Interval)
	}
	if cfg.Detector.MinSize != 50000 || cfg.Detector.MaxSize != 10000000 {
		t.Errorf("detector bounds = %v..%v, want 50000..10000000", cfg.Detector.MinSize, cfg.Detector.MaxSize)
	}
	if cfg.Detector.PageLimit != 1000 {
		t.Errorf("detector page limit = %d, want 1000", cfg.Detector.PageLimit)
	}
	if len(cfg.Discovery.Categories) != 2 || cfg.Discovery.Categories[0] != "sports" || cfg.Discovery.Categories[1] != "politics" {
		t.Errorf("categories = %v, want [sports politics]", cfg.Discovery.Categories)
	}
	if cfg.Gamma.BaseURL != "https://gamma-api.polymarket.com" {
		t.Errorf("gamma base url = %s", cfg.Gamma.BaseURL)
	}
	if cfg.DataAPI.BaseURL != "https://data-api.polymarket.com" {
		t.Errorf("data api base url = %s", cfg.DataAPI.BaseURL)
	}
	if cfg.DB.Path != "polymarket_monitor.db" {
		t.Errorf("db path = %s", cfg.DB.Path)
	}
	if cfg.Email.SMTPHost != "smtp.gmail.com" || cfg.Email.SMTPPort != 587 {
		t.Errorf("smtp defaults = %s:%d", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("LW_DETECTOR_MIN_SIZE", "100000")
	os.Setenv("LW_DISCORD_WEBHOOK_URL", "https://discord.test/webhook")
	t.Cleanup(func() {
		os.Unsetenv("LW_DETECTOR_MIN_SIZE")
		os.Unsetenv("LW_DISCORD_WEBHOOK_URL")
	})

	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Detector.MinSize != 100000 {
		t.Errorf("min size = %v, want env override 100000", cfg.Detector.MinSize)
	}
	if cfg.Discord.WebhookURL != "https://discord.test/webhook" {
		t.Errorf("webhook url = %s, want env override", cfg.Discord.WebhookURL)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("detector:\n  interval: 10s\n  min_size: 25000\ndiscovery:\n  categories:\n    - sports\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Detector.Interval != 10*time.Second {
		t.Errorf("interval = %v, want 10s", cfg.Detector.Interval)
	}
	if cfg.Detector.MinSize != 25000 {
		t.Errorf("min size = %v, want 25000", cfg.Detector.MinSize)
	}
	if cfg.Detector.MaxSize != 10000000 {
		t.Errorf("max size = %v, default should survive partial file", cfg.Detector.MaxSize)
	}
	if len(cfg.Discovery.Categories) != 1 || cfg.Discovery.Categories[0] != "sports" {
		t.Errorf("categories = %v, want [sports]", cfg.Discovery.Categories)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestWarnings(t *testing.T) {
	var cfg Config
	cfg.Detector.MinSize = 50000
	cfg.Detector.MaxSize = 10000000

	warns := cfg.Warnings()
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want only the no-channel warning", warns)
	}

	cfg.Discord.WebhookURL = "https://discord.test/webhook"
	if warns = cfg.Warnings(); len(warns) != 0 {
		t.Fatalf("warnings = %v, want none with a channel configured", warns)
	}

	cfg.Email.Enabled = true
	if warns = cfg.Warnings(); len(warns) != 1 {
		t.Fatalf("warnings = %v, want the missing smtp_pass warning", warns)
	}

	cfg.Email.SMTPPass = "secret"
	cfg.Detector.MinSize = 20
	cfg.Detector.MaxSize = 10
	if warns = cfg.Warnings(); len(warns) != 1 {
		t.Fatalf("warnings = %v, want the inverted bounds warning", warns)
	}
}
