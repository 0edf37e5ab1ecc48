// Package config loads relief.yaml: the tunable weights for the
// Priority Manager, Matching Engine, and Dashboard, with in-code
// defaults applied to anything the file omits.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relieflogix/relief/pkg/domain/services/dashboard"
	"github.com/relieflogix/relief/pkg/domain/services/matching"
	"github.com/relieflogix/relief/pkg/domain/services/priority"
)

// Config models relief.yaml.
type Config struct {
	Aging struct {
		LowToMedium    float64 `yaml:"low_to_medium"`
		MediumToHigh   float64 `yaml:"medium_to_high"`
		HighToCritical float64 `yaml:"high_to_critical"`
	} `yaml:"aging"`

	Matching struct {
		MaxProximityDistanceKm       float64 `yaml:"max_proximity_distance_km"`
		ProximityWeight              float64 `yaml:"proximity_weight"`
		CategoryMatchWeight          float64 `yaml:"category_match_weight"`
		AllowPartialFulfillment      bool    `yaml:"allow_partial_fulfillment"`
		MinPartialFulfillmentPercent float64 `yaml:"min_partial_fulfillment_percent"`
	} `yaml:"matching"`

	Dashboard struct {
		PanicThresholdHours float64 `yaml:"panic_threshold_hours"`
		TopCriticalCount    int     `yaml:"top_critical_count"`
	} `yaml:"dashboard"`

	AuditLogPath    string `yaml:"audit_log_path"`
	MaxInMemoryLogs int    `yaml:"max_in_memory_logs"`
}

// Default returns a Config populated entirely from the package's
// in-code defaults.
func Default() *Config {
	var c Config
	c.Aging.LowToMedium = priority.DefaultAgingConfig().LowToMedium
	c.Aging.MediumToHigh = priority.DefaultAgingConfig().MediumToHigh
	c.Aging.HighToCritical = priority.DefaultAgingConfig().HighToCritical

	mc := matching.DefaultConfig()
	c.Matching.MaxProximityDistanceKm = mc.MaxProximityDistanceKm
	c.Matching.ProximityWeight = mc.ProximityWeight
	c.Matching.CategoryMatchWeight = mc.CategoryMatchWeight
	c.Matching.AllowPartialFulfillment = mc.AllowPartialFulfillment
	c.Matching.MinPartialFulfillmentPercent = mc.MinPartialFulfillmentPercent

	dc := dashboard.DefaultConfig()
	c.Dashboard.PanicThresholdHours = dc.PanicThresholdHours
	c.Dashboard.TopCriticalCount = dc.TopCriticalCount

	c.MaxInMemoryLogs = 1000
	return &c
}

// Load reads and validates relief.yaml from path. If path does not
// exist, the all-defaults Config is returned rather than an error — a
// coordinator must be runnable with zero configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses config from raw YAML, starting from defaults so a
// partial file only overrides the fields it sets.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid relief config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive weights/thresholds that would silently
// degrade the Priority Manager or Matching Engine.
func (c *Config) Validate() error {
	if c.Aging.LowToMedium <= 0 || c.Aging.MediumToHigh <= 0 || c.Aging.HighToCritical <= 0 {
		return fmt.Errorf("config.aging thresholds must all be positive")
	}
	if c.Matching.MaxProximityDistanceKm <= 0 {
		return fmt.Errorf("config.matching.max_proximity_distance_km must be positive")
	}
	if c.Matching.MinPartialFulfillmentPercent < 0 || c.Matching.MinPartialFulfillmentPercent > 100 {
		return fmt.Errorf("config.matching.min_partial_fulfillment_percent must be within [0, 100]")
	}
	if c.Dashboard.PanicThresholdHours <= 0 {
		return fmt.Errorf("config.dashboard.panic_threshold_hours must be positive")
	}
	if c.Dashboard.TopCriticalCount <= 0 {
		return fmt.Errorf("config.dashboard.top_critical_count must be positive")
	}
	return nil
}

// AgingConfig adapts the loaded aging thresholds to priority.AgingConfig.
func (c *Config) AgingConfig() priority.AgingConfig {
	return priority.AgingConfig{
		LowToMedium:    c.Aging.LowToMedium,
		MediumToHigh:   c.Aging.MediumToHigh,
		HighToCritical: c.Aging.HighToCritical,
	}
}

// MatchingConfig adapts the loaded matching weights to matching.Config.
func (c *Config) MatchingConfig() matching.Config {
	return matching.Config{
		MaxProximityDistanceKm:       c.Matching.MaxProximityDistanceKm,
		ProximityWeight:              c.Matching.ProximityWeight,
		CategoryMatchWeight:          c.Matching.CategoryMatchWeight,
		AllowPartialFulfillment:      c.Matching.AllowPartialFulfillment,
		MinPartialFulfillmentPercent: c.Matching.MinPartialFulfillmentPercent,
	}
}

// DashboardConfig adapts the loaded dashboard tuning to dashboard.Config.
func (c *Config) DashboardConfig() dashboard.Config {
	return dashboard.Config{
		PanicThresholdHours: c.Dashboard.PanicThresholdHours,
		TopCriticalCount:    c.Dashboard.TopCriticalCount,
	}
}
