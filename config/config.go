package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete processing configuration
type Config struct {
	Calendar CalendarConfig `json:"calendar" yaml:"calendar"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Logging  LoggingConfig  `json:"logging" yaml:"logging"`
}

// CalendarConfig selects the business-day calendar
type CalendarConfig struct {
	Country string `json:"country" yaml:"country"` // "CO" or "none"
	Years   int    `json:"years,omitempty" yaml:"years,omitempty"`

	// ExtraHolidays lists one-off holidays (YYYY-MM-DD) on top of the
	// generated national calendar.
	ExtraHolidays []string `json:"extra_holidays,omitempty" yaml:"extra_holidays,omitempty"`
}

// ReportConfig contains regulatory report parsing parameters
type ReportConfig struct {
	Separator     string  `json:"separator,omitempty" yaml:"separator,omitempty"`
	Catalog       string  `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	IBRCurve      string  `json:"ibr_curve,omitempty" yaml:"ibr_curve,omitempty"`
	LargeExposure float64 `json:"large_exposure_limit,omitempty" yaml:"large_exposure_limit,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoggingConfig contains log output parameters
type LoggingConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Calendar.Country {
	case "CO", "none":
	default:
		return fmt.Errorf("calendar.country must be 'CO' or 'none'")
	}
	if c.Calendar.Years < 0 {
		return fmt.Errorf("calendar.years must not be negative")
	}
	for _, d := range c.Calendar.ExtraHolidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("calendar.extra_holidays: bad date %q", d)
		}
	}
	if len(c.Report.Separator) > 1 {
		return fmt.Errorf("report.separator must be a single character")
	}
	if c.Report.LargeExposure < 0 {
		return fmt.Errorf("report.large_exposure_limit must not be negative")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal.dir required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			Country: "CO",
			Years:   5,
		},
		Report: ReportConfig{
			Separator: ";",
		},
		Journal: JournalConfig{
			Type: "csv",
			Dir:  "./journal",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
