// internal/applicator/applicator.go
package applicator

import (
	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

const noKind group.Kind = -1

// Setter writes one settings group to a controller and reports its result.
type Setter interface {
	Set(p group.Payload) result.Code
}

// Step describes one completed set call.
type Step struct {
	Index int
	Kind  group.Kind
	Code  result.Code
}

// Apply writes every group in order and returns the worst result.
//
// Every setter is called exactly once regardless of earlier failures.
// There is no retry and no rollback. An empty batch is OK.
// The caller must hold dev exclusively for the duration of the call.
func Apply(dev Setter, groups []group.Payload) result.Code {
	return ApplyObserved(dev, groups, nil)
}

// ApplyObserved is Apply with a per-step callback. fn may be nil.
// The callback is diagnostic only and does not affect the outcome.
//
// A nil entry is never sent; it counts as ValueError and its step
// carries an invalid Kind.
func ApplyObserved(dev Setter, groups []group.Payload, fn func(Step)) result.Code {
	worst := result.OK

	for i, p := range groups {
		kind, code := noKind, result.ValueError
		if p != nil {
			kind, code = p.Kind(), dev.Set(p)
		}
		worst = result.Combine(worst, code)

		if fn != nil {
			fn(Step{Index: i, Kind: kind, Code: code})
		}
	}

	return worst
}
