// Package config provides configuration loading and access for the control core.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation and controller parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Sim        SimConfig        `yaml:"sim"`
	Input      InputConfig      `yaml:"input"`
	Fusion     FusionConfig     `yaml:"fusion"`
	Workload   WorkloadConfig   `yaml:"workload"`
	Propulsion PropulsionConfig `yaml:"propulsion"`
	Craft      CraftConfig      `yaml:"craft"`
	Debris     DebrisConfig     `yaml:"debris"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds tick timing parameters.
// MaxDT bounds a single tick's integration error; the frame loop clamps dt
// before it reaches any subsystem.
type SimConfig struct {
	DT    float64 `yaml:"dt"`
	MaxDT float64 `yaml:"max_dt"`
}

// InputConfig holds input aggregation parameters.
type InputConfig struct {
	LookSensitivity float64 `yaml:"look_sensitivity"` // Base pointer-delta scale
	KeyWeight       float64 `yaml:"key_weight"`       // Per-held-key intensity contribution
	IntensityMax    float64 `yaml:"intensity_max"`    // Intensity clamp ceiling
	TouchDeadzone   float64 `yaml:"touch_deadzone"`   // Stick magnitude below this = 0
}

// FusionConfig holds sensor fusion filter noise parameters.
type FusionConfig struct {
	ProcessNoise     float64 `yaml:"process_noise"`     // Q
	MeasurementNoise float64 `yaml:"measurement_noise"` // R
}

// WorkloadConfig holds pilot workload model parameters.
type WorkloadConfig struct {
	StressGain      float64 `yaml:"stress_gain"`      // Intensity-to-target-stress scale
	StressRate      float64 `yaml:"stress_rate"`      // Low-pass rate toward target (per second)
	SensitivityDrop float64 `yaml:"sensitivity_drop"` // Gain reduction at full stress
	LearningRate    float64 `yaml:"learning_rate"`    // Baseline growth per second under low stress
	BaselineCap     float64 `yaml:"baseline_cap"`     // Maximum baseline performance
}

// PropulsionConfig holds plasma drive parameters.
type PropulsionConfig struct {
	ActivationTime        float64 `yaml:"activation_time"`        // Ramp time constant (seconds)
	MassReduction         float64 `yaml:"mass_reduction"`         // Fraction of base mass removed at full power
	MaxHeat               float64 `yaml:"max_heat"`               // Thermal ceiling
	HeatRate              float64 `yaml:"heat_rate"`              // Heat gain scale (x power^2 per second)
	CoolRate              float64 `yaml:"cool_rate"`              // Exponential cooling rate (per second)
	StabilizationStrength float64 `yaml:"stabilization_strength"` // Counter-torque gain
	MaxTorque             float64 `yaml:"max_torque"`             // Stabilization torque magnitude cap
	Damping               float64 `yaml:"damping"`                // Angular velocity retained per second
	RatedDraw             float64 `yaml:"rated_draw"`             // Power consumption at full power (kW)
}

// CraftConfig holds the controlled body's parameters.
type CraftConfig struct {
	BaseMass       float64 `yaml:"base_mass"`       // Mass with propulsion off (kg)
	Thrust         float64 `yaml:"thrust"`          // Force per unit move command (N)
	VerticalThrust float64 `yaml:"vertical_thrust"` // Force per unit ascend/descend command (N)
	LookTorque     float64 `yaml:"look_torque"`     // Torque per unit look delta (N*m)
	InertiaScale   float64 `yaml:"inertia_scale"`   // Moment of inertia = mass * this
}

// DebrisConfig holds scene debris field parameters (shell only).
type DebrisConfig struct {
	Count    int     `yaml:"count"`
	Extent   float64 `yaml:"extent"`    // Half-width of the drift volume
	MaxSpeed float64 `yaml:"max_speed"` // Drift speed ceiling
}

// TelemetryConfig holds flight-log parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Window length in simulation seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Sim.DT as float32
	MaxDT32   float32 // Sim.MaxDT as float32
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Sim.DT)
	c.Derived.MaxDT32 = float32(c.Sim.MaxDT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
