// Package config holds the tunable parameters for the classification
// pipeline (internal/classify). The schema mirrors the one accepted by the
// CLI's --config flag, so the same JSON file documents and drives a run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the canonical location of the driving-preset tuning
// file shipped with the repository.
const DefaultConfigPath = "config/tuning.driving.json"

// TuningConfig is the JSON-facing configuration for a pipeline run. Every
// field is optional (a nil pointer means "use the preset default"), so a
// caller can override a single threshold without repeating the rest.
type TuningConfig struct {
	TMaxGapSeconds      *int64   `json:"t_max_gap,omitempty"`
	MinWindowLen        *int     `json:"min_window_len,omitempty"`
	RStationaryMeters   *float64 `json:"r_stationary,omitempty"`
	MobileDecimDMeters  *float64 `json:"mobile_decim_d,omitempty"`
	MobileDecimTSeconds *int64   `json:"mobile_decim_t,omitempty"`
	MaxSpeedMS          *float64 `json:"max_speed_ms,omitempty"`
}

func ptrInt64(v int64) *int64     { return &v }
func ptrInt(v int) *int           { return &v }
func ptrFloat64(v float64) *float64 { return &v }

// DrivingPreset returns the fully-populated "driving" tuning defaults
// (§6 of the design: wide gap tolerance, coarse stationary radius, loose
// decimation). This is also the fallback used by every Get* accessor.
func DrivingPreset() *TuningConfig {
	return &TuningConfig{
		TMaxGapSeconds:      ptrInt64(120),
		MinWindowLen:        ptrInt(1),
		RStationaryMeters:   ptrFloat64(350.0),
		MobileDecimDMeters:  ptrFloat64(100.0),
		MobileDecimTSeconds: ptrInt64(30),
		MaxSpeedMS:          ptrFloat64(55.56), // ~200 km/h
	}
}

// WalkingPreset returns the tightened "walking" tuning defaults.
func WalkingPreset() *TuningConfig {
	return &TuningConfig{
		TMaxGapSeconds:      ptrInt64(60),
		MinWindowLen:        ptrInt(1),
		RStationaryMeters:   ptrFloat64(50.0),
		MobileDecimDMeters:  ptrFloat64(10.0),
		MobileDecimTSeconds: ptrInt64(5),
		MaxSpeedMS:          ptrFloat64(2.22), // ~8 km/h
	}
}

// EmptyTuningConfig returns a TuningConfig with every field nil. Combined
// with the Get* accessors (which fall back to the driving preset), this is
// a safe starting point for building up overrides programmatically.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads overrides from a JSON file and layers them over
// the driving preset. Fields absent from the file keep their preset value.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	const maxFileSize = 1 * 1024 * 1024 // 1MB
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DrivingPreset()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that set fields carry sane values. Unset fields (nil) are
// always valid since they defer to a preset.
func (c *TuningConfig) Validate() error {
	if c.TMaxGapSeconds != nil && *c.TMaxGapSeconds <= 0 {
		return fmt.Errorf("t_max_gap must be positive, got %d", *c.TMaxGapSeconds)
	}
	if c.MinWindowLen != nil && *c.MinWindowLen < 1 {
		return fmt.Errorf("min_window_len must be at least 1, got %d", *c.MinWindowLen)
	}
	if c.RStationaryMeters != nil && *c.RStationaryMeters < 0 {
		return fmt.Errorf("r_stationary must be non-negative, got %f", *c.RStationaryMeters)
	}
	if c.MobileDecimDMeters != nil && *c.MobileDecimDMeters < 0 {
		return fmt.Errorf("mobile_decim_d must be non-negative, got %f", *c.MobileDecimDMeters)
	}
	if c.MobileDecimTSeconds != nil && *c.MobileDecimTSeconds < 0 {
		return fmt.Errorf("mobile_decim_t must be non-negative, got %d", *c.MobileDecimTSeconds)
	}
	if c.MaxSpeedMS != nil && *c.MaxSpeedMS <= 0 {
		return fmt.Errorf("max_speed_ms must be positive, got %f", *c.MaxSpeedMS)
	}
	return nil
}

// GetTMaxGap returns the configured silence gap, or the driving default.
func (c *TuningConfig) GetTMaxGap() time.Duration {
	if c.TMaxGapSeconds == nil {
		return 120 * time.Second
	}
	return time.Duration(*c.TMaxGapSeconds) * time.Second
}

// GetMinWindowLen returns the configured minimum window length, or 1.
func (c *TuningConfig) GetMinWindowLen() int {
	if c.MinWindowLen == nil {
		return 1
	}
	return *c.MinWindowLen
}

// GetRStationary returns the configured stationary-diameter ceiling in metres.
func (c *TuningConfig) GetRStationary() float64 {
	if c.RStationaryMeters == nil {
		return 350.0
	}
	return *c.RStationaryMeters
}

// GetMobileDecimD returns the configured distance keep-threshold in metres.
func (c *TuningConfig) GetMobileDecimD() float64 {
	if c.MobileDecimDMeters == nil {
		return 100.0
	}
	return *c.MobileDecimDMeters
}

// GetMobileDecimT returns the configured time keep-threshold.
func (c *TuningConfig) GetMobileDecimT() time.Duration {
	if c.MobileDecimTSeconds == nil {
		return 30 * time.Second
	}
	return time.Duration(*c.MobileDecimTSeconds) * time.Second
}

// GetMaxSpeedMS returns the configured speed gate in metres/second.
func (c *TuningConfig) GetMaxSpeedMS() float64 {
	if c.MaxSpeedMS == nil {
		return 55.56
	}
	return *c.MaxSpeedMS
}

// Resolved is the plain-value form of a TuningConfig, consumed directly by
// internal/classify's pipeline stages. Resolving once up front keeps the
// hot loops free of pointer dereferences and nil checks.
type Resolved struct {
	TMaxGap      time.Duration
	MinWindowLen int
	RStationary  float64
	MobileDecimD float64
	MobileDecimT time.Duration
	MaxSpeedMS   float64
}

// Resolve flattens a TuningConfig (with its optional overrides) into a
// Resolved value, applying driving-preset fallbacks for any unset field.
func (c *TuningConfig) Resolve() Resolved {
	return Resolved{
		TMaxGap:      c.GetTMaxGap(),
		MinWindowLen: c.GetMinWindowLen(),
		RStationary:  c.GetRStationary(),
		MobileDecimD: c.GetMobileDecimD(),
		MobileDecimT: c.GetMobileDecimT(),
		MaxSpeedMS:   c.GetMaxSpeedMS(),
	}
}
