// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is prepended to relative dataset file names.
	DataDir string `koanf:"data_dir"`

	HostsFile    string `koanf:"hosts_file"`
	MedalsFile   string `koanf:"medals_file"`
	GDPFile      string `koanf:"gdp_file"`
	AthletesFile string `koanf:"athletes_file"`

	// MedalsDelimiter is the single-character separator of the medals file.
	MedalsDelimiter string `koanf:"medals_delimiter"`

	// Season filters host games and athlete events.
	Season string `koanf:"season"`

	// EconomyCountry is the country the GDP file describes.
	EconomyCountry string `koanf:"economy_country"`

	// EconomyFromYear is the first year of the economy line chart.
	EconomyFromYear int `koanf:"economy_from_year"`

	// BarTopN is the number of teams in the events bar chart.
	BarTopN int `koanf:"bar_top_n"`

	// SankeyTopCountries caps the teams offered per Sankey year.
	SankeyTopCountries int `koanf:"sankey_top_countries"`

	// LoadWorkers bounds the parallel dataset reads at startup.
	LoadWorkers int `koanf:"load_workers"`
}

// New creates a Config with defaults matching the bundled datasets.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DataDir:            "input",
		HostsFile:          "olympic_hosts.csv",
		MedalsFile:         "Country_Medals.csv",
		GDPFile:            "China_GDP.csv",
		AthletesFile:       "athlete_events.csv",
		MedalsDelimiter:    ";",
		Season:             "Summer",
		EconomyCountry:     "China",
		EconomyFromYear:    1984,
		BarTopN:            8,
		SankeyTopCountries: 20,
		LoadWorkers:        4,
	}
}

// Path resolves a dataset file against DataDir.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// Delimiter returns MedalsDelimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.MedalsDelimiter)
	return r
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.HostsFile == "" || c.MedalsFile == "" || c.GDPFile == "" || c.AthletesFile == "":
		return fmt.Errorf("every dataset file must be set: %w", ErrInvalidConfig)
	case utf8.RuneCountInString(c.MedalsDelimiter) != 1:
		return fmt.Errorf("medals_delimiter %q must be one character: %w", c.MedalsDelimiter, ErrInvalidConfig)
	case c.Season == "":
		return fmt.Errorf("season must not be empty: %w", ErrInvalidConfig)
	case c.EconomyCountry == "":
		return fmt.Errorf("economy_country must not be empty: %w", ErrInvalidConfig)
	case c.BarTopN <= 0:
		return fmt.Errorf("bar_top_n must be positive, got %d: %w", c.BarTopN, ErrInvalidConfig)
	case c.SankeyTopCountries <= 0:
		return fmt.Errorf("sankey_top_countries must be positive, got %d: %w", c.SankeyTopCountries, ErrInvalidConfig)
	case c.LoadWorkers <= 0:
		return fmt.Errorf("load_workers must be positive, got %d: %w", c.LoadWorkers, ErrInvalidConfig)
	}
	return nil
}
