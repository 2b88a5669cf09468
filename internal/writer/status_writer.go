// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/stage-profiler/internal/status"
)

// StatusWriter is the delivery-only contract for axis status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// axisStatusWriter is the concrete implementation used by the runner.
type axisStatusWriter struct {
	plan *StatusPlan
	cli  registerWriter

	needFull bool
	last     status.Snapshot
}

// NewStatusWriter builds a status writer if status is enabled for the axis.
// If plan is nil, status is disabled.
func NewStatusWriter(plan *StatusPlan, cli registerWriter) (StatusWriter, bool) {
	if plan == nil {
		return nil, false
	}

	return &axisStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last: status.Snapshot{
			Health: status.HealthUnknown,
		},
	}, true
}

// WriteStatus delivers an axis status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *axisStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Encode(s, sw.plan.DeviceName)

		if err := sw.cli.WriteRegisters(unitID, baseAddr, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	slots := []struct {
		name string
		slot uint16
		prev *uint16
		next uint16
	}{
		{"slot0 health", status.SlotHealthCode, &sw.last.Health, s.Health},
		{"slot1 last_result", status.SlotLastResult, &sw.last.LastResult, s.LastResult},
		{"slot2 attempted", status.SlotGroupsAttempted, &sw.last.Attempted, s.Attempted},
		{"slot3 mismatches", status.SlotMismatches, &sw.last.Mismatches, s.Mismatches},
	}

	for _, sl := range slots {
		if *sl.prev == sl.next {
			continue
		}
		if err := sw.cli.WriteRegisters(unitID, baseAddr+sl.slot, []uint16{sl.next}); err != nil {
			errs = append(errs, fmt.Sprintf("%s write failed: %v", sl.name, err))
			continue
		}
		*sl.prev = sl.next
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *axisStatusWriter) baseAddr() uint16 {
	// Each axis owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}
