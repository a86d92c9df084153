package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"examprep/internal/platform/config"
	"examprep/internal/platform/datemath"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty home must fail")
	}
	cfg, err := config.New("/tmp/home")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if datemath.FormatDateKey(cfg.ExamDate) != "2026-04-11" || datemath.FormatDateKey(cfg.StartDate) != "2026-01-12" {
		t.Fatalf("unexpected default dates: %v %v", cfg.ExamDate, cfg.StartDate)
	}
	if cfg.MinimumHours != 3 || cfg.Store != config.StoreSQLite || cfg.CheckInDelay != 600*time.Millisecond {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DBPath != filepath.Join("/tmp/home", ".examprep", "examprep.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
}

func TestLoadAppliesYAMLAndDotenv(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	yamlBody := "exam_date: 2027-05-20\nstart_date: 2027-02-01\nminimum_hours: 2.5\nallow_before_start: false\ncheckin_delay_ms: 0\nquote_plugin: bin/quotes\n"
	if err := os.WriteFile(filepath.Join(home, "examprep.yaml"), []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".env"), []byte("EXAMPREP_STORE=file\nEXAMPREP_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if datemath.FormatDateKey(cfg.ExamDate) != "2027-05-20" || datemath.FormatDateKey(cfg.StartDate) != "2027-02-01" {
		t.Fatalf("dates not applied: %v %v", cfg.ExamDate, cfg.StartDate)
	}
	if cfg.MinimumHours != 2.5 || cfg.AllowBeforeStart || cfg.CheckInDelay != 0 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Store != config.StoreFile || cfg.LogLevel != "debug" {
		t.Fatalf("dotenv values not applied: %+v", cfg)
	}
	if cfg.QuotePlugin != filepath.Join(home, "bin", "quotes") {
		t.Fatalf("quote plugin path should resolve against home, got %s", cfg.QuotePlugin)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"bad date":       "exam_date: april\n",
		"start after":    "exam_date: 2026-01-01\nstart_date: 2026-02-01\n",
		"negative hours": "minimum_hours: -1\n",
		"unknown store":  "store: redis\n",
		"broken yaml":    "exam_date: [\n",
	}
	for name, body := range cases {
		home := t.TempDir()
		if err := os.WriteFile(filepath.Join(home, "examprep.yaml"), []byte(body), 0o644); err != nil {
			t.Fatalf("%s: write yaml: %v", name, err)
		}
		if _, err := config.Load(home); err == nil {
			t.Fatalf("%s: expected load to fail", name)
		}
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load without files: %v", err)
	}
	if cfg.MinimumHours != config.DefaultMinimumHours {
		t.Fatalf("expected default minimum hours, got %v", cfg.MinimumHours)
	}
}
