// Package config holds the rule tunables and server settings. The file is
// read once at startup and the loaded values are immutable for the life of
// the process.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical constant set (Code des Assurances, art. A.121-1 and following),
// applied when fields are absent from the config file.
const (
	DefaultRoundingDecimals       = 2
	DefaultBase                   = 1.00
	DefaultFloor                  = 0.50
	DefaultCeiling                = 3.50
	DefaultFullClaimFactor        = 1.25
	DefaultPartialClaimFactor     = 1.125
	DefaultAnnualReductionFactor  = 0.95
	DefaultReductionMinMonths     = 10
	DefaultDeferralMonths         = 2
	DefaultRapidDescentYears      = 2
	DefaultFranchiseFloorYears    = 3
	DefaultInterruptionResetYears = 3
	DefaultYoungLicenseYears      = 3
	DefaultYoungFloor             = 0.90
	DefaultStaleAfterDays         = 90
	DefaultPort                   = 8080
)

type Config struct {
	Engine Engine `yaml:"engine"`
	Server Server `yaml:"server"`
}

// Engine is the full numeric rule set of the coefficient computation.
type Engine struct {
	// RoundingDecimals is the truncation precision applied after every
	// multiplication ("arrondi par défaut").
	RoundingDecimals int `yaml:"rounding_decimals"`

	// Base is the starting coefficient of an unknown history.
	Base float64 `yaml:"base"`

	// Floor and Ceiling clamp the coefficient after every period.
	Floor   float64 `yaml:"floor"`
	Ceiling float64 `yaml:"ceiling"`

	// Majoration factors per fully and partially responsible claim.
	FullClaimFactor    float64 `yaml:"full_claim_factor"`
	PartialClaimFactor float64 `yaml:"partial_claim_factor"`

	// AnnualReductionFactor rewards a claim-free assessment period.
	AnnualReductionFactor float64 `yaml:"annual_reduction_factor"`

	// ReductionMinMonths is the minimum length of a final partial period
	// for it to still earn the annual reduction.
	ReductionMinMonths int `yaml:"reduction_min_months"`

	// DeferralMonths pushes a claim that close to a period end into the
	// following period (assessment lag).
	DeferralMonths int `yaml:"deferral_months"`

	// RapidDescentYears of claim-free periods reset a malus to the base.
	RapidDescentYears int `yaml:"rapid_descent_years"`

	// FranchiseFloorYears at the floor earn the bonus franchise.
	FranchiseFloorYears int `yaml:"franchise_floor_years"`

	// InterruptionResetYears without cover forfeit a carried bonus.
	InterruptionResetYears int `yaml:"interruption_reset_years"`

	// YoungLicenseYears / YoungFloor bound the plausible coefficient of a
	// recently licensed primary driver.
	YoungLicenseYears int     `yaml:"young_license_years"`
	YoungFloor        float64 `yaml:"young_floor"`

	// StaleAfterDays flags a document edited too long before the
	// reference date.
	StaleAfterDays int `yaml:"stale_after_days"`
}

type Server struct {
	Port int `yaml:"port"`

	// AuditDB is the path of the sqlite calculation log; empty disables it.
	AuditDB string `yaml:"audit_db"`

	// LogMode selects the zap config: dev | prod.
	LogMode string `yaml:"log_mode"`
}

// Default returns the canonical configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultEngine returns the canonical rule set alone.
func DefaultEngine() *Engine {
	return &Default().Engine
}

// Load reads the yaml file at path, fills defaults for absent fields and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	e := &c.Engine
	if e.RoundingDecimals == 0 {
		e.RoundingDecimals = DefaultRoundingDecimals
	}
	if e.Base == 0 {
		e.Base = DefaultBase
	}
	if e.Floor == 0 {
		e.Floor = DefaultFloor
	}
	if e.Ceiling == 0 {
		e.Ceiling = DefaultCeiling
	}
	if e.FullClaimFactor == 0 {
		e.FullClaimFactor = DefaultFullClaimFactor
	}
	if e.PartialClaimFactor == 0 {
		e.PartialClaimFactor = DefaultPartialClaimFactor
	}
	if e.AnnualReductionFactor == 0 {
		e.AnnualReductionFactor = DefaultAnnualReductionFactor
	}
	if e.ReductionMinMonths == 0 {
		e.ReductionMinMonths = DefaultReductionMinMonths
	}
	if e.DeferralMonths == 0 {
		e.DeferralMonths = DefaultDeferralMonths
	}
	if e.RapidDescentYears == 0 {
		e.RapidDescentYears = DefaultRapidDescentYears
	}
	if e.FranchiseFloorYears == 0 {
		e.FranchiseFloorYears = DefaultFranchiseFloorYears
	}
	if e.InterruptionResetYears == 0 {
		e.InterruptionResetYears = DefaultInterruptionResetYears
	}
	if e.YoungLicenseYears == 0 {
		e.YoungLicenseYears = DefaultYoungLicenseYears
	}
	if e.YoungFloor == 0 {
		e.YoungFloor = DefaultYoungFloor
	}
	if e.StaleAfterDays == 0 {
		e.StaleAfterDays = DefaultStaleAfterDays
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogMode == "" {
		c.Server.LogMode = "dev"
	}
}

// Validate rejects rule sets the engine cannot run on.
func (c *Config) Validate() error {
	e := &c.Engine
	if e.Floor >= e.Ceiling {
		return fmt.Errorf("config: floor %.2f must be below ceiling %.2f", e.Floor, e.Ceiling)
	}
	if e.Base < e.Floor || e.Base > e.Ceiling {
		return fmt.Errorf("config: base %.2f outside [%.2f, %.2f]", e.Base, e.Floor, e.Ceiling)
	}
	if e.FullClaimFactor <= 1 || e.PartialClaimFactor <= 1 {
		return fmt.Errorf("config: claim factors must exceed 1")
	}
	if e.AnnualReductionFactor <= 0 || e.AnnualReductionFactor >= 1 {
		return fmt.Errorf("config: annual reduction factor must be in (0, 1)")
	}
	if e.RoundingDecimals < 0 || e.RoundingDecimals > 6 {
		return fmt.Errorf("config: rounding decimals must be in [0, 6]")
	}
	if e.DeferralMonths < 0 || e.DeferralMonths > 11 {
		return fmt.Errorf("config: deferral months must be in [0, 11]")
	}
	return nil
}
