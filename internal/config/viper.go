// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
		Quote              string `mapstructure:"quote" yaml:"quote"`
		DateFormat         string `mapstructure:"date_format" yaml:"date_format"`
		ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
		DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
		HasHeaders         bool   `mapstructure:"has_headers" yaml:"has_headers"`
		MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`
	} `mapstructure:"csv" yaml:"csv"`

	Import struct {
		Currency           string `mapstructure:"currency" yaml:"currency"`
		FlipAmount         bool   `mapstructure:"flip_amount" yaml:"flip_amount"`
		AmountInMinorUnits bool   `mapstructure:"amount_in_minor_units" yaml:"amount_in_minor_units"`
		TwoDigitYearPivot  int    `mapstructure:"two_digit_year_pivot" yaml:"two_digit_year_pivot"`
	} `mapstructure:"import" yaml:"import"`

	Dedup struct {
		MaxDateDiffDays    int     `mapstructure:"max_date_diff_days" yaml:"max_date_diff_days"`
		MaxAmountDiffMinor int64   `mapstructure:"max_amount_diff_minor" yaml:"max_amount_diff_minor"`
		MinConfidence      float64 `mapstructure:"min_confidence" yaml:"min_confidence"`
	} `mapstructure:"dedup" yaml:"dedup"`

	Filter struct {
		Mode       string `mapstructure:"mode" yaml:"mode"`
		CutoffDays int    `mapstructure:"cutoff_days" yaml:"cutoff_days"`
	} `mapstructure:"filter" yaml:"filter"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bank-import")
	v.AddConfigPath(".bank-import")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("BANKIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.quote", `"`)
	v.SetDefault("csv.date_format", "yyyy-MM-dd")
	v.SetDefault("csv.thousands_separator", ",")
	v.SetDefault("csv.decimal_separator", ".")
	v.SetDefault("csv.has_headers", true)
	v.SetDefault("csv.max_rows", 0)

	// Import defaults
	v.SetDefault("import.currency", "USD")
	v.SetDefault("import.flip_amount", false)
	v.SetDefault("import.amount_in_minor_units", false)
	v.SetDefault("import.two_digit_year_pivot", 50)

	// Duplicate detection defaults
	v.SetDefault("dedup.max_date_diff_days", 3)
	v.SetDefault("dedup.max_amount_diff_minor", 1)
	v.SetDefault("dedup.min_confidence", 0.7)

	// Old transaction filter defaults
	v.SetDefault("filter.mode", "do-not-ignore")
	v.SetDefault("filter.cutoff_days", 0)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter and quote
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}
	if len(config.CSV.Quote) != 1 {
		return fmt.Errorf("CSV quote must be a single character, got: %s", config.CSV.Quote)
	}
	if config.CSV.MaxRows < 0 {
		return fmt.Errorf("csv.max_rows must not be negative, got: %d", config.CSV.MaxRows)
	}

	// Validate two-digit-year pivot
	if config.Import.TwoDigitYearPivot < 0 || config.Import.TwoDigitYearPivot > 99 {
		return fmt.Errorf("import.two_digit_year_pivot must be between 0 and 99, got: %d", config.Import.TwoDigitYearPivot)
	}

	// Validate duplicate detection thresholds
	if config.Dedup.MaxDateDiffDays < 0 {
		return fmt.Errorf("dedup.max_date_diff_days must not be negative, got: %d", config.Dedup.MaxDateDiffDays)
	}
	if config.Dedup.MaxAmountDiffMinor < 0 {
		return fmt.Errorf("dedup.max_amount_diff_minor must not be negative, got: %d", config.Dedup.MaxAmountDiffMinor)
	}
	if config.Dedup.MinConfidence < 0.0 || config.Dedup.MinConfidence > 1.0 {
		return fmt.Errorf("dedup.min_confidence must be between 0.0 and 1.0, got: %f", config.Dedup.MinConfidence)
	}

	// Validate filter mode
	switch config.Filter.Mode {
	case "do-not-ignore", "ignore-all", "ignore-duplicates":
	default:
		return fmt.Errorf("invalid filter mode: %s (must be 'do-not-ignore', 'ignore-all' or 'ignore-duplicates')", config.Filter.Mode)
	}
	if config.Filter.CutoffDays < 0 {
		return fmt.Errorf("filter.cutoff_days must not be negative, got: %d", config.Filter.CutoffDays)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
