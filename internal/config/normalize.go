// internal/config/normalize.go
package config

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Profiler.StatusMemory.TimeoutMs == 0 {
		cfg.Profiler.StatusMemory.TimeoutMs = DefaultStatusTimeoutMs
	}

	for ai := range cfg.Profiler.Axes {
		a := &cfg.Profiler.Axes[ai]

		if a.TimeoutMs == 0 {
			a.TimeoutMs = DefaultTimeoutMs
		}

		// ------------------------------------------------------------
		// AXIS STATUS BLOCK NORMALIZATION (OPT-IN)
		// ------------------------------------------------------------

		// Skip axes that did not opt in
		if a.StatusSlot == nil {
			continue
		}

		if a.DeviceName == "" {
			a.DeviceName = a.ID
		}

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to max 16 characters
		if len(a.DeviceName) > 16 {
			a.DeviceName = a.DeviceName[:16]
		}
	}
}
