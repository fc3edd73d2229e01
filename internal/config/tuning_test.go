package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDrivingPresetResolve(t *testing.T) {
	r := DrivingPreset().Resolve()
	if r.TMaxGap != 120*time.Second {
		t.Errorf("TMaxGap = %v, want 120s", r.TMaxGap)
	}
	if r.RStationary != 350.0 {
		t.Errorf("RStationary = %v, want 350.0", r.RStationary)
	}
	if r.MaxSpeedMS != 55.56 {
		t.Errorf("MaxSpeedMS = %v, want 55.56", r.MaxSpeedMS)
	}
}

func TestWalkingPresetResolve(t *testing.T) {
	r := WalkingPreset().Resolve()
	if r.TMaxGap != 60*time.Second {
		t.Errorf("TMaxGap = %v, want 60s", r.TMaxGap)
	}
	if r.RStationary != 50.0 {
		t.Errorf("RStationary = %v, want 50.0", r.RStationary)
	}
}

func TestEmptyTuningConfigFallsBackToDrivingDefaults(t *testing.T) {
	r := EmptyTuningConfig().Resolve()
	d := DrivingPreset().Resolve()
	if r != d {
		t.Errorf("empty config resolved to %+v, want driving defaults %+v", r, d)
	}
}

func TestLoadTuningConfigOverridesOneField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.json")
	body, _ := json.Marshal(map[string]float64{"r_stationary": 75.0})
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}
	if cfg.GetRStationary() != 75.0 {
		t.Errorf("RStationary = %v, want 75.0", cfg.GetRStationary())
	}
	// Untouched fields keep the driving preset.
	if cfg.GetTMaxGap() != 120*time.Second {
		t.Errorf("TMaxGap = %v, want 120s (driving default)", cfg.GetTMaxGap())
	}
}

func TestLoadTuningConfigRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuningConfig(path); err == nil {
		t.Fatal("expected error for non-.json config file")
	}
}

func TestValidateRejectsNegativeRStationary(t *testing.T) {
	cfg := EmptyTuningConfig()
	bad := -1.0
	cfg.RStationaryMeters = &bad
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative r_stationary")
	}
}
