// internal/result/result.go
package result

import "fmt"

// Code is the status returned by a single controller configuration call.
// Values match the controller library's result_t.
type Code int

const (
	OK             Code = 0
	Error          Code = -1
	NotImplemented Code = -2
	ValueError     Code = -3
	NoDevice       Code = -4
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case Error:
		return "error"
	case NotImplemented:
		return "not_implemented"
	case ValueError:
		return "value_error"
	case NoDevice:
		return "no_device"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Combine folds one more result into the running worst result.
//
// The first non-OK result is always recorded. After that, only a recorded
// ValueError may still be replaced; Error, NotImplemented and NoDevice
// stick once set. This is the exact guard used by the vendor profiles:
//
//	if worst == OK || worst == ValueError { worst = next }
func Combine(worst, next Code) Code {
	if next == OK {
		return worst
	}
	if worst == OK || worst == ValueError {
		return next
	}
	return worst
}

// Reduce folds codes left to right with Combine, starting at OK.
func Reduce(codes ...Code) Code {
	worst := OK
	for _, c := range codes {
		worst = Combine(worst, c)
	}
	return worst
}

// Err returns nil for OK and a *ResultError otherwise.
func (c Code) Err() error {
	if c == OK {
		return nil
	}
	return &ResultError{Result: c}
}

// ResultError adapts a non-OK Code to the error interface.
type ResultError struct {
	Result Code
}

func (e *ResultError) Error() string {
	return "controller result: " + e.Result.String()
}

// Code returns the positive wire form of the result (NoDevice => 4).
func (e *ResultError) Code() uint16 {
	if e.Result >= 0 {
		return uint16(e.Result)
	}
	return uint16(-e.Result)
}
