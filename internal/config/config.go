// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"github.com/t4p/competition-toolkit/pkg/constants"
)

// Configuration holds all configuration for the competition toolkit.
type Configuration struct {
	Server     ServerConfig     `yaml:"server,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Currency   CurrencyConfig   `yaml:"currency,omitempty"`
	History    HistoryConfig    `yaml:"history,omitempty"`
	Thresholds ThresholdsConfig `yaml:"thresholds,omitempty"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Address     string `yaml:"address,omitempty"`
	MaxBodySize int64  `yaml:"maxBodySize,omitempty"`
}

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// CurrencyConfig holds exchange-rate client options.
type CurrencyConfig struct {
	BaseCurrency    string `yaml:"baseCurrency,omitempty"`
	APIBaseURL      string `yaml:"apiBaseUrl,omitempty"`
	TimeoutSeconds  int    `yaml:"timeoutSeconds,omitempty"`
	CacheTTLSeconds int    `yaml:"cacheTtlSeconds,omitempty"`
}

// HistoryConfig holds history persistence options.
type HistoryConfig struct {
	Directory   string `yaml:"directory,omitempty"`
	RecentLimit int    `yaml:"recentLimit,omitempty"`
}

// ThresholdsConfig holds the merger notification thresholds. Values default
// to the published authority figures and may be overridden when they change.
type ThresholdsConfig struct {
	Global   float64 `yaml:"global,omitempty"`
	Local    float64 `yaml:"local,omitempty"`
	Currency string  `yaml:"currency,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields the defaults without error so
// the toolkit runs out of the box.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := &Configuration{}

	if configPath != "" {
		viper.SetConfigFile(configPath)
		viper.AutomaticEnv()
		viper.SetConfigType("yml")

		if err := viper.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
			// Missing file: fall through to defaults.
		} else if err := viper.Unmarshal(configuration); err != nil {
			return nil, fmt.Errorf("unable to decode into struct, %s", err)
		}
	}

	configuration.applyDefaults()
	return configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxBodySize <= 0 {
		c.Server.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	if c.Currency.BaseCurrency == "" {
		c.Currency.BaseCurrency = constants.DefaultThresholdCurrency
	}
	if c.Currency.APIBaseURL == "" {
		c.Currency.APIBaseURL = constants.DefaultRateAPIBaseURL
	}
	if c.Currency.TimeoutSeconds <= 0 {
		c.Currency.TimeoutSeconds = constants.DefaultRateTimeoutSeconds
	}
	if c.Currency.CacheTTLSeconds <= 0 {
		c.Currency.CacheTTLSeconds = constants.DefaultRateCacheTTLSeconds
	}
	if c.History.Directory == "" {
		c.History.Directory = constants.DefaultHistoryDirectory
	}
	if c.History.RecentLimit <= 0 {
		c.History.RecentLimit = constants.DefaultRecentLimit
	}
	if c.Thresholds.Global <= 0 {
		c.Thresholds.Global = constants.DefaultGlobalThreshold
	}
	if c.Thresholds.Local <= 0 {
		c.Thresholds.Local = constants.DefaultLocalThreshold
	}
	if c.Thresholds.Currency == "" {
		c.Thresholds.Currency = constants.DefaultThresholdCurrency
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never block startup.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if !supportedCurrency(c.Currency.BaseCurrency) {
		warnings = append(warnings, fmt.Sprintf("base currency %q is not in the supported set (%s); live rate lookups may fail",
			c.Currency.BaseCurrency, strings.Join(constants.SupportedCurrencies, ", ")))
	}
	if !supportedCurrency(c.Thresholds.Currency) {
		warnings = append(warnings, fmt.Sprintf("threshold currency %q is not in the supported set (%s)",
			c.Thresholds.Currency, strings.Join(constants.SupportedCurrencies, ", ")))
	}
	if c.Thresholds.Local > c.Thresholds.Global {
		warnings = append(warnings, fmt.Sprintf("local threshold (%.0f) exceeds global threshold (%.0f); check the configured values",
			c.Thresholds.Local, c.Thresholds.Global))
	}
	if c.Currency.CacheTTLSeconds < 60 {
		warnings = append(warnings, fmt.Sprintf("rate cache TTL of %ds will hammer the rate provider", c.Currency.CacheTTLSeconds))
	}

	return warnings
}

func supportedCurrency(code string) bool {
	for _, c := range constants.SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
