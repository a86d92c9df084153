package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"examprep/internal/platform/datemath"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"

	DefaultMinimumHours = 3.0
	DefaultCheckInDelay = 600 * time.Millisecond

	envPrefix = "EXAMPREP_"
)

type Config struct {
	HomePath     string
	DataDir      string
	DBPath       string
	SnapshotPath string
	SchedulePath string
	LogPath      string

	ExamDate         time.Time
	StartDate        time.Time
	MinimumHours     float64
	AllowBeforeStart bool

	Store        string
	CheckInDelay time.Duration
	QuotePlugin  string
	LogLevel     string
}

type fileConfig struct {
	ExamDate         *string  `yaml:"exam_date"`
	StartDate        *string  `yaml:"start_date"`
	MinimumHours     *float64 `yaml:"minimum_hours"`
	AllowBeforeStart *bool    `yaml:"allow_before_start"`
	Store            *string  `yaml:"store"`
	CheckInDelayMS   *int     `yaml:"checkin_delay_ms"`
	QuotePlugin      *string  `yaml:"quote_plugin"`
	LogLevel         *string  `yaml:"log_level"`
}

// New returns the built-in defaults rooted at homePath.
func New(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	dataDir := filepath.Join(homePath, ".examprep")
	return Config{
		HomePath:         homePath,
		DataDir:          dataDir,
		DBPath:           filepath.Join(dataDir, "examprep.db"),
		SnapshotPath:     filepath.Join(dataDir, "checkins.json"),
		SchedulePath:     filepath.Join(homePath, "schedule.yaml"),
		LogPath:          filepath.Join(dataDir, "examprep.log"),
		ExamDate:         datemath.Date(2026, time.April, 11, time.Local),
		StartDate:        datemath.Date(2026, time.January, 12, time.Local),
		MinimumHours:     DefaultMinimumHours,
		AllowBeforeStart: true,
		Store:            StoreSQLite,
		CheckInDelay:     DefaultCheckInDelay,
		LogLevel:         "info",
	}, nil
}

// Load applies <home>/examprep.yaml, then <home>/.env and the process
// environment (EXAMPREP_*) on top of the defaults. The process environment
// wins over .env.
func Load(homePath string) (Config, error) {
	cfg, err := New(homePath)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(filepath.Join(homePath, "examprep.yaml")); err != nil {
		return Config{}, err
	}
	dotenv, err := readDotenv(filepath.Join(homePath, ".env"))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if math.IsNaN(c.MinimumHours) || math.IsInf(c.MinimumHours, 0) || c.MinimumHours < 0 {
		return fmt.Errorf("minimum hours must be a non-negative number")
	}
	if datemath.DateValue(c.StartDate) > datemath.DateValue(c.ExamDate) {
		return fmt.Errorf("start date %s is after exam date %s", datemath.FormatDateKey(c.StartDate), datemath.FormatDateKey(c.ExamDate))
	}
	switch c.Store {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	if c.CheckInDelay < 0 {
		return fmt.Errorf("check-in delay must be non-negative")
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if fc.ExamDate != nil {
		if c.ExamDate, err = datemath.ParseDateKey(*fc.ExamDate, time.Local); err != nil {
			return fmt.Errorf("exam_date: %w", err)
		}
	}
	if fc.StartDate != nil {
		if c.StartDate, err = datemath.ParseDateKey(*fc.StartDate, time.Local); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	if fc.MinimumHours != nil {
		c.MinimumHours = *fc.MinimumHours
	}
	if fc.AllowBeforeStart != nil {
		c.AllowBeforeStart = *fc.AllowBeforeStart
	}
	if fc.Store != nil {
		c.Store = strings.ToLower(strings.TrimSpace(*fc.Store))
	}
	if fc.CheckInDelayMS != nil {
		c.CheckInDelay = time.Duration(*fc.CheckInDelayMS) * time.Millisecond
	}
	if fc.QuotePlugin != nil {
		c.QuotePlugin = c.resolve(*fc.QuotePlugin)
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "STORE"); ok {
		c.Store = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(envPrefix + "MIN_HOURS"); ok {
		hours, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sMIN_HOURS: %w", envPrefix, err)
		}
		c.MinimumHours = hours
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "QUOTE_PLUGIN"); ok {
		c.QuotePlugin = c.resolve(v)
	}
	return nil
}

func (c Config) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(c.HomePath, path))
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}
