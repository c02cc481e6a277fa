// Package config provides configuration management for the pricing engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/MedusaOnMe/PlyOpt/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Chain   ChainConfig   `mapstructure:"chain"`
	Order   OrderConfig   `mapstructure:"order"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ChainConfig holds chain-generation and pricing configuration.
// Every knob that was module-level state in earlier revisions is threaded
// explicitly from here into the generators.
type ChainConfig struct {
	StrikeCount       int     `mapstructure:"strike_count"`        // must be odd
	StrikeStepPercent float64 `mapstructure:"strike_step_percent"` // fraction of spot per step
	BaseIV            float64 `mapstructure:"base_iv"`             // percent
	RiskFreeRate      float64 `mapstructure:"risk_free_rate"`      // annualized fraction
	ATMTolerance      float64 `mapstructure:"atm_tolerance"`       // |spot/strike - 1| bound
	NearExpiryDays    int     `mapstructure:"near_expiry_days"`
	DefaultSpot       float64 `mapstructure:"default_spot"` // caller fallback when spot is missing
}

// OrderConfig holds order-valuation configuration.
type OrderConfig struct {
	FeeBps      int64 `mapstructure:"fee_bps"`
	MaxQuantity int64 `mapstructure:"max_quantity"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/plyopt"
	}
	return filepath.Join(home, ".config", "plyopt")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	v.SetEnvPrefix("PLYOPT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config.yaml: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chain.strike_count", 11)
	v.SetDefault("chain.strike_step_percent", 0.05)
	v.SetDefault("chain.base_iv", 55.0)
	v.SetDefault("chain.risk_free_rate", 0.05)
	v.SetDefault("chain.atm_tolerance", 0.03)
	v.SetDefault("chain.near_expiry_days", 3)
	v.SetDefault("chain.default_spot", 50.0)

	v.SetDefault("order.fee_bps", 5)
	v.SetDefault("order.max_quantity", 1000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Chain.StrikeCount < 3 || c.Chain.StrikeCount%2 == 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.strike_count must be odd and >= 3, got %d", c.Chain.StrikeCount)
	}
	if c.Chain.StrikeStepPercent <= 0 || c.Chain.StrikeStepPercent >= 1 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.strike_step_percent must be in (0, 1), got %v", c.Chain.StrikeStepPercent)
	}
	if c.Chain.BaseIV <= 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.base_iv must be positive, got %v", c.Chain.BaseIV)
	}
	if c.Chain.RiskFreeRate < 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.risk_free_rate must not be negative, got %v", c.Chain.RiskFreeRate)
	}
	if c.Chain.ATMTolerance <= 0 || c.Chain.ATMTolerance >= 0.5 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.atm_tolerance must be in (0, 0.5), got %v", c.Chain.ATMTolerance)
	}
	if c.Chain.NearExpiryDays < 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.near_expiry_days must not be negative, got %d", c.Chain.NearExpiryDays)
	}
	if c.Chain.DefaultSpot <= 0 || c.Chain.DefaultSpot > 100 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "chain.default_spot must be in (0, 100], got %v", c.Chain.DefaultSpot)
	}
	if c.Order.FeeBps < 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "order.fee_bps must not be negative, got %d", c.Order.FeeBps)
	}
	if c.Order.MaxQuantity <= 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "order.max_quantity must be positive, got %d", c.Order.MaxQuantity)
	}
	return nil
}
