// internal/status/snapshot.go
package status

import (
	"errors"

	"github.com/tamzrod/stage-profiler/internal/result"
)

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health     uint16
	LastResult uint16
	Attempted  uint16
	Mismatches uint16
}

// HealthFor maps an aggregate apply result to a health code.
func HealthFor(c result.Code) uint16 {
	switch c {
	case result.OK:
		return HealthOK
	case result.ValueError:
		return HealthPartial
	default:
		return HealthError
	}
}

// ResultCode is the unsigned slot form of a result code.
func ResultCode(c result.Code) uint16 {
	var coder interface{ Code() uint16 }
	if errors.As(c.Err(), &coder) {
		return coder.Code()
	}
	return 0
}

// FromOutcome builds a snapshot for one finished run.
// Counts above 65535 saturate.
func FromOutcome(c result.Code, attempted, mismatches int) Snapshot {
	return Snapshot{
		Health:     HealthFor(c),
		LastResult: ResultCode(c),
		Attempted:  saturate(attempted),
		Mismatches: saturate(mismatches),
	}
}

func saturate(n int) uint16 {
	switch {
	case n < 0:
		return 0
	case n > 65535:
		return 65535
	}
	return uint16(n)
}
