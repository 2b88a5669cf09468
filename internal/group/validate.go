// internal/group/validate.go
package group

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid marks a payload rejected by host-side range checks.
var ErrInvalid = errors.New("group: invalid settings")

// Validate runs the range checks a controller would apply before
// accepting a payload. It never mutates p.
func Validate(p Payload) error {
	if p == nil {
		return fmt.Errorf("%w: nil payload", ErrInvalid)
	}

	var errs []string

	switch v := p.(type) {
	case *FeedbackSettings:
		switch v.FeedbackType {
		case FeedbackEncoder, FeedbackEMF, FeedbackNone, FeedbackEncoderMediated:
		default:
			errs = append(errs, fmt.Sprintf("feedback_type %d out of range", v.FeedbackType))
		}

	case *EngineSettings:
		if v.MicrostepMode < MicrostepModeFull || v.MicrostepMode > MicrostepModeFrac256 {
			errs = append(errs, fmt.Sprintf("microstep_mode %d out of range 1..9", v.MicrostepMode))
		}

	case *EntypeSettings:
		if v.EngineType > EngineTypeBrushless {
			errs = append(errs, fmt.Sprintf("engine_type %d out of range 0..5", v.EngineType))
		}
		// 0 leaves the driver type unchanged.
		if v.DriverType > DriverTypeExternal {
			errs = append(errs, fmt.Sprintf("driver_type %d out of range 1..3", v.DriverType))
		}

	case *EdgesSettings:
		if !edgeBefore(v.LeftBorder, v.ULeftBorder, v.RightBorder, v.URightBorder) {
			errs = append(errs, fmt.Sprintf("left_border %d must be below right_border %d", v.LeftBorder, v.RightBorder))
		}

	case *JoystickSettings:
		if v.JoyLowEnd > v.JoyCenter || v.JoyCenter > v.JoyHighEnd {
			errs = append(errs, fmt.Sprintf("joystick %d/%d/%d not ordered low<=center<=high",
				v.JoyLowEnd, v.JoyCenter, v.JoyHighEnd))
		}

	case *UARTSettings:
		if v.Speed == 0 {
			errs = append(errs, "uart speed must be > 0")
		}

	case *MotorSettings:
		if v.MotorType > MotorTypeBLDC {
			errs = append(errs, fmt.Sprintf("motor_type %d out of range 0..3", v.MotorType))
		}

	case *GearSettings:
		if v.ReductionIn != 0 && v.ReductionOut == 0 {
			errs = append(errs, "reduction_out must be non-zero when reduction_in is set")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalid, p.Kind(), strings.Join(errs, " | "))
	}
	return nil
}

// edgeBefore reports whether (a, ua) is strictly before (b, ub).
// An all-zero pair means borders are not configured.
func edgeBefore(a, ua, b, ub int32) bool {
	if a == 0 && ua == 0 && b == 0 && ub == 0 {
		return true
	}
	if a != b {
		return a < b
	}
	return ua < ub
}

// ---- MICROSTEP FRACTIONS ----

// MicrostepsPerStep returns the number of microsteps in one full step
// for a microstep mode (FULL=1 .. FRAC_256=256).
// Unknown modes return 0.
func MicrostepsPerStep(mode Bits) int64 {
	if mode < MicrostepModeFull || mode > MicrostepModeFrac256 {
		return 0
	}
	return int64(1) << (mode - 1)
}

// Fractions returns the microstep-dependent fields of p ("u" fields).
// Payloads without such fields return nil.
func Fractions(p Payload) []int64 {
	switch v := p.(type) {
	case *HomeSettings:
		return []int64{int64(v.UFastHome), int64(v.USlowHome), int64(v.UHomeDelta)}
	case *MoveSettings:
		return []int64{int64(v.USpeed), int64(v.UAntiplaySpeed)}
	case *EngineSettings:
		return []int64{int64(v.UNomSpeed)}
	case *EdgesSettings:
		return []int64{int64(v.ULeftBorder), int64(v.URightBorder)}
	case *SyncInSettings:
		return []int64{int64(v.UPosition), int64(v.USpeed)}
	case *SyncOutSettings:
		return []int64{int64(v.UAccuracy)}
	case *ControlSettings:
		out := make([]int64, 0, len(v.UMaxSpeed)+1)
		for _, u := range v.UMaxSpeed {
			out = append(out, int64(u))
		}
		return append(out, int64(v.UDeltaPosition))
	}
	return nil
}

// CheckFractions verifies |u| < steps for every fraction of p, where
// steps is MicrostepsPerStep of the active mode.
func CheckFractions(p Payload, mode Bits) error {
	steps := MicrostepsPerStep(mode)
	if steps == 0 {
		return fmt.Errorf("%w: microstep mode %d unknown", ErrInvalid, mode)
	}
	for _, u := range Fractions(p) {
		if u < 0 {
			u = -u
		}
		if u >= steps {
			return fmt.Errorf("%w: %s: microstep fraction %d exceeds %d per step", ErrInvalid, p.Kind(), u, steps)
		}
	}
	return nil
}
