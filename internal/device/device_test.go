// internal/device/device_test.go
package device

import (
	"net/url"
	"testing"

	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

type nopDevice struct{ path string }

func (nopDevice) Set(group.Payload) result.Code { return result.OK }
func (nopDevice) Get(k group.Kind) (group.Payload, result.Code) {
	return group.New(k), result.OK
}
func (nopDevice) Close() error { return nil }

func TestOpen_DispatchesOnScheme(t *testing.T) {
	var gotOpts Options
	Register("test-nop", func(u *url.URL, opts Options) (Device, error) {
		gotOpts = opts
		return nopDevice{path: u.Path}, nil
	})

	d, err := Open("test-nop:///dev/x", Options{Baud: 9600})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if d.(nopDevice).path != "/dev/x" {
		t.Fatalf("path: got=%q want=/dev/x", d.(nopDevice).path)
	}
	if gotOpts.Baud != 9600 {
		t.Fatalf("baud: got=%d want=9600", gotOpts.Baud)
	}

	found := false
	for _, s := range Schemes() {
		if s == "test-nop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("scheme not listed: %v", Schemes())
	}
}

func TestOpen_Errors(t *testing.T) {
	for _, uri := range []string{"no-such-scheme:///x", "/dev/ttyACM0", "%zz"} {
		if _, err := Open(uri, Options{}); err == nil {
			t.Fatalf("%q: expected error", uri)
		}
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	fn := func(*url.URL, Options) (Device, error) { return nopDevice{}, nil }
	Register("test-dup", fn)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Register("test-dup", fn)
}
