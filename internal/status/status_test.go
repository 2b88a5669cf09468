// internal/status/status_test.go
package status

import (
	"testing"

	"github.com/tamzrod/stage-profiler/internal/result"
)

func TestHealthFor(t *testing.T) {
	cases := []struct {
		code result.Code
		want uint16
	}{
		{result.OK, HealthOK},
		{result.ValueError, HealthPartial},
		{result.Error, HealthError},
		{result.NotImplemented, HealthError},
		{result.NoDevice, HealthError},
	}
	for _, c := range cases {
		if got := HealthFor(c.code); got != c.want {
			t.Fatalf("%s: got=%d want=%d", c.code, got, c.want)
		}
	}
}

func TestFromOutcome(t *testing.T) {
	s := FromOutcome(result.NoDevice, 33, 70000)
	if s.Health != HealthError || s.LastResult != 4 || s.Attempted != 33 || s.Mismatches != 65535 {
		t.Fatalf("got=%+v", s)
	}
	if ok := FromOutcome(result.OK, 11, 0); ok.LastResult != 0 || ok.Health != HealthOK {
		t.Fatalf("ok: got=%+v", ok)
	}
}

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{Health: HealthPartial, LastResult: 3, Attempted: 33, Mismatches: 2}, "AB")
	if len(regs) != SlotsPerDevice {
		t.Fatalf("len: got=%d want=%d", len(regs), SlotsPerDevice)
	}
	if regs[0] != HealthPartial || regs[1] != 3 || regs[2] != 33 || regs[3] != 2 {
		t.Fatalf("live slots: got=%v", regs[:4])
	}
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d: got=%d", i, regs[i])
		}
	}
	if regs[SlotDeviceNameStart] != 0x4142 {
		t.Fatalf("name: got=%#04x want=0x4142", regs[SlotDeviceNameStart])
	}
}

func TestEncodeDeviceName_TruncateAndSanitize(t *testing.T) {
	regs := EncodeDeviceName("0123456789abcdefXYZ")
	if regs[7] != uint16('e')<<8|uint16('f') {
		t.Fatalf("last reg: got=%#04x", regs[7])
	}

	regs = EncodeDeviceName("é")
	if regs[0] != uint16('?')<<8|uint16('?') {
		t.Fatalf("non-ascii: got=%#04x", regs[0])
	}
}
