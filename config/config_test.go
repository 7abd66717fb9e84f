package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Sim.DT <= 0 || cfg.Sim.MaxDT < cfg.Sim.DT {
		t.Errorf("bad tick timing: dt=%f max_dt=%f", cfg.Sim.DT, cfg.Sim.MaxDT)
	}
	if cfg.Propulsion.ActivationTime <= 0 {
		t.Error("activation time must be positive")
	}
	if cfg.Propulsion.MassReduction < 0 || cfg.Propulsion.MassReduction >= 1 {
		t.Errorf("mass reduction %f outside [0, 1)", cfg.Propulsion.MassReduction)
	}
	if cfg.Workload.BaselineCap < 1 {
		t.Errorf("baseline cap %f below the starting baseline", cfg.Workload.BaselineCap)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.DT32 != float32(cfg.Sim.DT) {
		t.Errorf("DT32 = %f, want %f", cfg.Derived.DT32, float32(cfg.Sim.DT))
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("ScreenW32 = %f, want %d", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("propulsion:\n  activation_time: 7.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Propulsion.ActivationTime != 7.5 {
		t.Errorf("activation_time = %f, want override 7.5", cfg.Propulsion.ActivationTime)
	}
	// Untouched sections keep their defaults.
	if cfg.Craft.BaseMass == 0 {
		t.Error("override wiped defaults in other sections")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if back.Propulsion != cfg.Propulsion || back.Input != cfg.Input {
		t.Error("config changed across write/read")
	}
}
