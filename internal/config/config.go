// internal/config/config.go
package config

type Config struct {
	Profiler ProfilerConfig `yaml:"profiler"`
}

type ProfilerConfig struct {
	// Extra *.yaml profiles added to the built-in catalog (optional).
	ProfilesDir  string             `yaml:"profiles_dir"`
	StatusMemory StatusMemoryConfig `yaml:"status_memory"`
	Axes         []AxisConfig       `yaml:"axes"`
}

// ---- STATUS MEMORY ----

type StatusMemoryConfig struct {
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- AXIS ----

type AxisConfig struct {
	ID        string `yaml:"id"`
	URI       string `yaml:"uri"`
	Profile   string `yaml:"profile"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Baud      int    `yaml:"baud"`
	Verify    bool   `yaml:"verify"`

	// Axis status block (optional, opt-in)
	StatusSlot   *uint16 `yaml:"status_slot"`
	StatusUnitID *uint8  `yaml:"status_unit_id"`
	DeviceName   string  `yaml:"device_name"`
}

// ---- DEFAULTS ----

const (
	DefaultTimeoutMs       = 1000
	DefaultStatusTimeoutMs = 1000
)
