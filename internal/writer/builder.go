// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/stage-profiler/internal/config"
	wmodbus "github.com/tamzrod/stage-profiler/internal/writer/modbus"
)

// BuildStatusPlan converts one axis config into a status plan.
// Returns nil when the axis did not opt in.
// Assumes config has already passed validation and normalization.
func BuildStatusPlan(a cfg.AxisConfig, sm cfg.StatusMemoryConfig) *StatusPlan {
	if a.StatusSlot == nil || a.StatusUnitID == nil {
		return nil
	}

	return &StatusPlan{
		AxisID:     a.ID,
		Endpoint:   sm.Endpoint,
		UnitID:     *a.StatusUnitID,
		BaseSlot:   *a.StatusSlot,
		DeviceName: a.DeviceName,
	}
}

// BuildEndpointClient creates the shared status memory client.
func BuildEndpointClient(sm cfg.StatusMemoryConfig) (*wmodbus.EndpointClient, error) {
	if sm.Endpoint == "" {
		return nil, errors.New("writer: status_memory.endpoint required")
	}

	return wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: sm.Endpoint,
		Timeout:  time.Duration(sm.TimeoutMs) * time.Millisecond,
	})
}
