// internal/runner/runner.go
package runner

import (
	"log"
	"sync"
	"time"

	"github.com/tamzrod/stage-profiler/internal/applicator"
	"github.com/tamzrod/stage-profiler/internal/config"
	"github.com/tamzrod/stage-profiler/internal/device"
	"github.com/tamzrod/stage-profiler/internal/profile"
	"github.com/tamzrod/stage-profiler/internal/result"
	"github.com/tamzrod/stage-profiler/internal/status"
	"github.com/tamzrod/stage-profiler/internal/verify"
	"github.com/tamzrod/stage-profiler/internal/writer"
)

// OpenFunc opens a controller handle. device.Open is the default.
type OpenFunc func(uri string, opts device.Options) (device.Device, error)

// Session is one axis to provision.
type Session struct {
	Axis    config.AxisConfig
	Profile profile.Profile
	Open    OpenFunc

	// Status is optional.
	Status writer.StatusWriter
}

// Outcome is the result of one session.
type Outcome struct {
	AxisID  string
	Profile string
	Code    result.Code
	Steps   int
	Verify  *verify.Report
	Err     error // open failure only
}

// Run provisions one axis: open, apply, optionally verify, publish, close.
// Only an open failure sets Err; controller results live in Code.
func Run(s Session) Outcome {
	out := Outcome{
		AxisID:  s.Axis.ID,
		Profile: s.Profile.Name,
		Code:    result.OK,
	}

	open := s.Open
	if open == nil {
		open = device.Open
	}

	dev, err := open(s.Axis.URI, device.Options{
		Timeout: time.Duration(s.Axis.TimeoutMs) * time.Millisecond,
		Baud:    s.Axis.Baud,
	})
	if err != nil {
		log.Printf("open failed (axis=%s): %v", s.Axis.ID, err)
		out.Code = result.NoDevice
		out.Err = err
		publish(s, out)
		return out
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Printf("close failed (axis=%s): %v", s.Axis.ID, err)
		}
	}()

	// The handle is exclusive to this goroutine for the whole batch.
	out.Code = applicator.ApplyObserved(dev, s.Profile.Groups, func(st applicator.Step) {
		out.Steps++
		if st.Code != result.OK {
			log.Printf("set %s -> %s (axis=%s step=%d)", st.Kind, st.Code, s.Axis.ID, st.Index)
		}
	})

	if s.Axis.Verify {
		r := verify.Check(dev, s.Profile.Groups)
		out.Verify = &r
		if !r.OK() {
			log.Printf("readback: %s (axis=%s)", r.Summary(), s.Axis.ID)
		}
	}

	log.Printf("applied %s: %s (axis=%s)", s.Profile.Name, out.Code, s.Axis.ID)

	publish(s, out)
	return out
}

// RunAll runs every session on its own goroutine.
// Outcomes are returned in input order.
func RunAll(sessions []Session) []Outcome {
	out := make([]Outcome, len(sessions))

	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = Run(sessions[i])
		}(i)
	}
	wg.Wait()

	return out
}

// Worst folds the outcome codes of a run.
func Worst(outcomes []Outcome) result.Code {
	worst := result.OK
	for _, o := range outcomes {
		worst = result.Combine(worst, o.Code)
	}
	return worst
}

// publish writes the status block; failures are logged only.
func publish(s Session, out Outcome) {
	if s.Status == nil {
		return
	}

	mismatches := 0
	if out.Verify != nil {
		mismatches = out.Verify.Differ()
	}

	snap := status.FromOutcome(out.Code, out.Steps, mismatches)
	if err := s.Status.WriteStatus(snap); err != nil {
		log.Printf("status write failed (axis=%s): %v", s.Axis.ID, err)
	}
}
