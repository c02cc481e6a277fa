package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/MedusaOnMe/PlyOpt/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Chain.StrikeCount != 11 {
		t.Errorf("strike_count = %d, want 11", cfg.Chain.StrikeCount)
	}
	if cfg.Chain.StrikeStepPercent != 0.05 {
		t.Errorf("strike_step_percent = %v, want 0.05", cfg.Chain.StrikeStepPercent)
	}
	if cfg.Chain.BaseIV != 55.0 {
		t.Errorf("base_iv = %v, want 55", cfg.Chain.BaseIV)
	}
	if cfg.Chain.RiskFreeRate != 0.05 {
		t.Errorf("risk_free_rate = %v, want 0.05", cfg.Chain.RiskFreeRate)
	}
	if cfg.Chain.DefaultSpot != 50.0 {
		t.Errorf("default_spot = %v, want 50", cfg.Chain.DefaultSpot)
	}
	if cfg.Order.FeeBps != 5 || cfg.Order.MaxQuantity != 1000 {
		t.Errorf("order defaults = %+v", cfg.Order)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
chain:
  strike_count: 21
  base_iv: 72.5
order:
  fee_bps: 10
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Chain.StrikeCount != 21 {
		t.Errorf("strike_count = %d, want 21 from file", cfg.Chain.StrikeCount)
	}
	if cfg.Chain.BaseIV != 72.5 {
		t.Errorf("base_iv = %v, want 72.5 from file", cfg.Chain.BaseIV)
	}
	if cfg.Order.FeeBps != 10 {
		t.Errorf("fee_bps = %d, want 10 from file", cfg.Order.FeeBps)
	}
	// Untouched keys keep their defaults.
	if cfg.Chain.StrikeStepPercent != 0.05 {
		t.Errorf("strike_step_percent = %v, want default 0.05", cfg.Chain.StrikeStepPercent)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "chain:\n  strike_count: 10\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Fatalf("even strike_count err = %v, want ErrConfigInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even strike count", func(c *Config) { c.Chain.StrikeCount = 10 }},
		{"strike count too small", func(c *Config) { c.Chain.StrikeCount = 1 }},
		{"zero step", func(c *Config) { c.Chain.StrikeStepPercent = 0 }},
		{"step too large", func(c *Config) { c.Chain.StrikeStepPercent = 1 }},
		{"zero base iv", func(c *Config) { c.Chain.BaseIV = 0 }},
		{"negative rate", func(c *Config) { c.Chain.RiskFreeRate = -0.01 }},
		{"zero atm tolerance", func(c *Config) { c.Chain.ATMTolerance = 0 }},
		{"negative near expiry", func(c *Config) { c.Chain.NearExpiryDays = -1 }},
		{"spot above cap", func(c *Config) { c.Chain.DefaultSpot = 101 }},
		{"negative fee", func(c *Config) { c.Order.FeeBps = -1 }},
		{"zero max quantity", func(c *Config) { c.Order.MaxQuantity = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); !apperrors.Is(err, apperrors.ErrConfigInvalid) {
				t.Fatalf("err = %v, want ErrConfigInvalid", err)
			}
		})
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}
