// internal/verify/verify.go
package verify

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

// Getter reads one group back from a controller.
type Getter interface {
	Get(k group.Kind) (group.Payload, result.Code)
}

// Report is the outcome of a readback pass.
type Report struct {
	Checked    int
	Mismatched []group.Kind
	Failed     map[group.Kind]result.Code
}

// Check re-reads every group and compares it with what was written.
// It never stops early.
func Check(dev Getter, groups []group.Payload) Report {
	r := Report{Failed: map[group.Kind]result.Code{}}

	for _, want := range groups {
		k := want.Kind()
		r.Checked++

		got, code := dev.Get(k)
		if code != result.OK {
			r.Failed[k] = code
			continue
		}
		if !reflect.DeepEqual(got, want) {
			r.Mismatched = append(r.Mismatched, k)
		}
	}

	return r
}

// OK reports whether every group read back unchanged.
func (r Report) OK() bool {
	return len(r.Mismatched) == 0 && len(r.Failed) == 0
}

// Differ returns the number of groups that failed or mismatched.
func (r Report) Differ() int {
	return len(r.Mismatched) + len(r.Failed)
}

// Summary renders e.g. "2 of 33 groups differ: engine, pid".
func (r Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("%d of %d groups match", r.Checked, r.Checked)
	}

	kinds := make([]group.Kind, 0, r.Differ())
	kinds = append(kinds, r.Mismatched...)
	for k := range r.Failed {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if code, failed := r.Failed[k]; failed {
			names = append(names, fmt.Sprintf("%s (%s)", k, code))
			continue
		}
		names = append(names, k.String())
	}

	return fmt.Sprintf("%d of %d groups differ: %s", r.Differ(), r.Checked, strings.Join(names, ", "))
}
