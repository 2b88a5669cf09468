// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"

	"github.com/tamzrod/stage-profiler/internal/status"
)

// maxStatusSlot keeps the last register of a block inside the 16-bit address space.
const maxStatusSlot = (65535 - status.SlotsPerDevice + 1) / status.SlotsPerDevice

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
//
// knownProfile reports whether a profile name resolves; nil skips that check.
func Validate(cfg *Config, knownProfile func(name string) bool) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	if len(cfg.Profiler.Axes) == 0 {
		return fmt.Errorf("config: no axes defined")
	}

	if cfg.Profiler.StatusMemory.TimeoutMs < 0 {
		return fmt.Errorf("config: status_memory.timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// AXIS IDENTITY / TRANSPORT / PROFILE
	// ------------------------------------------------------------

	seen := make(map[string]bool)
	uriOwner := make(map[string]string) // one axis per controller

	for i, a := range cfg.Profiler.Axes {
		if a.ID == "" {
			return fmt.Errorf("config: axes[%d]: id is required", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("config: duplicate axis id %q", a.ID)
		}
		seen[a.ID] = true

		if a.URI == "" {
			return fmt.Errorf("axis %q: uri is required", a.ID)
		}
		u, err := url.Parse(a.URI)
		if err != nil {
			return fmt.Errorf("axis %q: bad uri: %v", a.ID, err)
		}
		if u.Scheme == "" {
			return fmt.Errorf("axis %q: uri %q has no scheme", a.ID, a.URI)
		}
		if prev, exists := uriOwner[u.String()]; exists {
			return fmt.Errorf("config: uri %q used by axes %q and %q", a.URI, prev, a.ID)
		}
		uriOwner[u.String()] = a.ID

		if a.Profile == "" {
			return fmt.Errorf("axis %q: profile is required", a.ID)
		}
		if knownProfile != nil && !knownProfile(a.Profile) {
			return fmt.Errorf("axis %q: unknown profile %q", a.ID, a.Profile)
		}

		if a.TimeoutMs < 0 {
			return fmt.Errorf("axis %q: timeout_ms must be >= 0", a.ID)
		}
		if a.Baud < 0 {
			return fmt.Errorf("axis %q: baud must be >= 0", a.ID)
		}
	}

	// ------------------------------------------------------------
	// AXIS STATUS BLOCK VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	// key = status_unit_id | status_slot
	statusOwner := make(map[string]string)

	for _, a := range cfg.Profiler.Axes {
		// device_name sanity (ASCII only)
		for i := 0; i < len(a.DeviceName); i++ {
			if a.DeviceName[i] > 0x7F {
				return fmt.Errorf(
					"axis %q: device_name must contain ASCII characters only",
					a.ID,
				)
			}
		}

		// status is opt-in
		if a.StatusSlot == nil {
			continue
		}

		if cfg.Profiler.StatusMemory.Endpoint == "" {
			return fmt.Errorf(
				"axis %q: status_slot is set but status_memory.endpoint is empty",
				a.ID,
			)
		}
		if a.StatusUnitID == nil {
			return fmt.Errorf(
				"axis %q: status_slot is set but status_unit_id is missing",
				a.ID,
			)
		}

		slot := *a.StatusSlot
		if slot > maxStatusSlot {
			return fmt.Errorf("axis %q: status_slot %d exceeds %d", a.ID, slot, maxStatusSlot)
		}

		key := fmt.Sprintf("%d|%d", *a.StatusUnitID, slot)

		if prev, exists := statusOwner[key]; exists {
			return fmt.Errorf(
				"status_slot collision: endpoint=%s status_unit_id=%d slot=%d used by axes %q and %q",
				cfg.Profiler.StatusMemory.Endpoint,
				*a.StatusUnitID,
				slot,
				prev,
				a.ID,
			)
		}

		statusOwner[key] = a.ID
	}

	return nil
}
