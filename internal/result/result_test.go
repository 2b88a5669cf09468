// internal/result/result_test.go
package result

import (
	"errors"
	"testing"
)

func TestReduce_Scenarios(t *testing.T) {
	cases := []struct {
		name  string
		codes []Code
		want  Code
	}{
		{"empty", nil, OK},
		{"all ok", []Code{OK, OK, OK}, OK},
		{"single value error", []Code{OK, ValueError, OK}, ValueError},
		{"error overwrites value error", []Code{ValueError, Error, OK}, Error},
		{"value error does not overwrite error", []Code{Error, ValueError, OK}, Error},
		{"no device first", []Code{NoDevice, OK, OK, OK}, NoDevice},
		{"not implemented sticks", []Code{NotImplemented, NoDevice, Error}, NotImplemented},
		{"value error replaced by later value error", []Code{ValueError, ValueError}, ValueError},
		{"value error then no device", []Code{OK, ValueError, NoDevice, Error}, NoDevice},
	}

	for _, tc := range cases {
		if got := Reduce(tc.codes...); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestReduce_Deterministic(t *testing.T) {
	seq := []Code{OK, ValueError, OK, NotImplemented, Error, ValueError, NoDevice}

	first := Reduce(seq...)
	second := Reduce(seq...)
	if first != second {
		t.Fatalf("reduction not deterministic: %v vs %v", first, second)
	}
	if first != NotImplemented {
		t.Fatalf("got=%v want=%v", first, NotImplemented)
	}
}

func TestReduce_SingleValueErrorAnyPosition(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for pos := 0; pos < n; pos++ {
			seq := make([]Code, n)
			seq[pos] = ValueError
			if got := Reduce(seq...); got != ValueError {
				t.Fatalf("n=%d pos=%d: got=%v want=%v", n, pos, got, ValueError)
			}
		}
	}
}

func TestCombine_OKNeverOverwrites(t *testing.T) {
	for _, worst := range []Code{OK, Error, NotImplemented, ValueError, NoDevice} {
		if got := Combine(worst, OK); got != worst {
			t.Fatalf("Combine(%v, OK): got=%v want=%v", worst, got, worst)
		}
	}
}

func TestErr(t *testing.T) {
	if err := OK.Err(); err != nil {
		t.Fatalf("OK.Err() = %v, want nil", err)
	}

	err := NoDevice.Err()
	var coder interface{ Code() uint16 }
	if !errors.As(err, &coder) {
		t.Fatalf("NoDevice.Err() does not expose Code()")
	}
	if coder.Code() != 4 {
		t.Fatalf("code: got=%d want=4", coder.Code())
	}
	if err.Error() != "controller result: no_device" {
		t.Fatalf("message: got=%q", err.Error())
	}
}

func TestString_Unknown(t *testing.T) {
	if s := Code(-9).String(); s != "code(-9)" {
		t.Fatalf("got=%q", s)
	}
}
