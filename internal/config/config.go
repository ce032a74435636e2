// =============================================================================
// GRIR Report Toolkit - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration.
//
// CONFIGURATION SOURCES:
//   1. Main config (config.yaml): input file locations, output directories,
//      price tolerance, notification toggle
//   2. Environment (.env / process env): SMTP transport credentials
//
// Mail credentials deliberately never live in the YAML file; they are read
// from the environment the way the account password reaches production.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultPriceTolerance is the allowed absolute difference between
// goods-receipt value and invoice value before a price discrepancy is
// flagged. Differences exactly equal to the tolerance do not flag.
const DefaultPriceTolerance = 0.05

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the application configuration loaded from the main YAML file.
type Config struct {
	// MovementsFile is the XLSX export of the purchase-order history
	// (goods receipt and invoice receipt events).
	MovementsFile string `yaml:"movements_file"`

	// POLinesFile is the XLSX export of the purchase-order line items.
	POLinesFile string `yaml:"po_lines_file"`

	// ContactsFile is the XLSX table of plant notification contacts.
	ContactsFile string `yaml:"contacts_file"`

	// OutputDir is where generated summary and per-plant reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is where generated reports are archived after a run.
	// Default: "./output_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ReportNameFormat names the master summary workbook. Placeholders:
	//   {timestamp} - run timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - short random run identifier
	// Default: "GRIR_summary_{timestamp}_{uuid}.xlsx"
	ReportNameFormat string `yaml:"report_name_format"`

	// PriceTolerance is the price-discrepancy tolerance in currency units.
	// Must be a positive decimal. Default: 0.05
	PriceTolerance float64 `yaml:"price_tolerance"`

	// SendEmails enables dispatch of the per-plant notification emails.
	// Default: false
	SendEmails bool `yaml:"send_emails"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// SMTP holds the mail transport settings, populated from the
	// environment rather than from the YAML file.
	SMTP SMTPConfig `yaml:"-"`
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Tolerance returns the price tolerance as a decimal for exact
// comparisons in the classifier.
func (c *Config) Tolerance() decimal.Decimal {
	return decimal.NewFromFloat(c.PriceTolerance)
}

// =============================================================================
// ERRORS
// =============================================================================

// ConfigError reports an invalid or unusable configuration value.
// It aborts the run; there is no sensible way to proceed with, say,
// a negative price tolerance.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the main configuration file, applies defaults, pulls SMTP
// settings from the environment and validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	cfg.SMTP = loadSMTPFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.MovementsFile == "" {
		cfg.MovementsFile = "./data/EKBE.xlsx"
	}
	if cfg.POLinesFile == "" {
		cfg.POLinesFile = "./data/EKPO.xlsx"
	}
	if cfg.ContactsFile == "" {
		cfg.ContactsFile = "./data/email.xlsx"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./output_archive"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "GRIR_summary_{timestamp}_{uuid}.xlsx"
	}
	if cfg.PriceTolerance == 0 {
		cfg.PriceTolerance = DefaultPriceTolerance
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// loadSMTPFromEnv reads the mail transport settings from the environment.
// A .env file is honored when present; a missing file is not an error.
func loadSMTPFromEnv() SMTPConfig {
	_ = godotenv.Load()

	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	host := os.Getenv("SMTP_SERVER")
	if host == "" {
		host = "smtp.gmail.com"
	}

	return SMTPConfig{
		Host:     host,
		Port:     port,
		Sender:   os.Getenv("SENDER_EMAIL"),
		Password: os.Getenv("SENDER_PASSWORD"),
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.PriceTolerance <= 0 {
		return &ConfigError{
			Field:  "price_tolerance",
			Reason: fmt.Sprintf("must be a positive decimal, got %v", c.PriceTolerance),
		}
	}

	if c.SendEmails {
		if c.SMTP.Sender == "" {
			return &ConfigError{Field: "SENDER_EMAIL", Reason: "required when send_emails is enabled"}
		}
		if c.SMTP.Password == "" {
			return &ConfigError{Field: "SENDER_PASSWORD", Reason: "required when send_emails is enabled"}
		}
		if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
			return &ConfigError{Field: "SMTP_PORT", Reason: fmt.Sprintf("invalid port %d", c.SMTP.Port)}
		}
	}

	return nil
}
