// internal/group/group_test.go
package group

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

// ---- kinds ----

func TestKinds_CanonicalOrder(t *testing.T) {
	ks := Kinds()
	if len(ks) != 33 {
		t.Fatalf("kinds: got=%d want=33", len(ks))
	}
	if ks[0] != KindFeedback || ks[len(ks)-1] != KindAccessories {
		t.Fatalf("order: first=%s last=%s", ks[0], ks[len(ks)-1])
	}
	for i, k := range ks {
		if int(k) != i {
			t.Fatalf("kind %s at %d", k, i)
		}
	}
}

func TestKinds_TableConsistent(t *testing.T) {
	cmds := map[string]Kind{}
	for _, k := range Kinds() {
		p := New(k)
		if p == nil {
			t.Fatalf("New(%s) returned nil", k)
		}
		if p.Kind() != k {
			t.Fatalf("New(%s).Kind(): got=%s", k, p.Kind())
		}
		if len(k.SetCommand()) != 4 || len(k.GetCommand()) != 4 {
			t.Fatalf("%s: commands %q %q not 4 bytes", k, k.SetCommand(), k.GetCommand())
		}
		if prev, dup := cmds[k.SetCommand()]; dup {
			t.Fatalf("%s and %s share command %s", prev, k, k.SetCommand())
		}
		cmds[k.SetCommand()] = k

		back, err := ParseKind(k.String())
		if err != nil || back != k {
			t.Fatalf("ParseKind(%q): got=%s err=%v", k.String(), back, err)
		}
		if Size(k) <= 0 {
			t.Fatalf("Size(%s): got=%d", k, Size(k))
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	if _, err := ParseKind("warp_drive"); err == nil {
		t.Fatalf("expected error")
	}
	if New(Kind(99)) != nil {
		t.Fatalf("New of invalid kind should be nil")
	}
}

func TestSize_KnownLayouts(t *testing.T) {
	cases := []struct {
		k    Kind
		want int
	}{
		{KindFeedback, 16},
		{KindEntype, 8},
		{KindControl, 4*10 + 4*10 + 4*9 + 4 + 4 + 4 + 4},
		{KindControllerName, 20},
		{KindStageInformation, 40},
		{KindAccessories, 24 + 4*3 + 4 + 24 + 4*3 + 4 + 4},
	}
	for _, c := range cases {
		if got := Size(c.k); got != c.want {
			t.Fatalf("Size(%s): got=%d want=%d", c.k, got, c.want)
		}
	}
}

// ---- codec ----

func TestMarshal_LittleEndianFieldOrder(t *testing.T) {
	p := &FeedbackSettings{IPS: 0x0102, FeedbackType: FeedbackEncoder, FeedbackFlags: 0x80, CountsPerTurn: 20000}
	b, err := Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{
		0x02, 0x01, 0, 0,
		0x01, 0, 0, 0,
		0x80, 0, 0, 0,
		0x20, 0x4E, 0, 0,
	}
	if string(b) != string(want) {
		t.Fatalf("bytes: got=% x want=% x", b, want)
	}

	back, err := Unmarshal(KindFeedback, b)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if *back.(*FeedbackSettings) != *p {
		t.Fatalf("decoded: got=%+v want=%+v", back, p)
	}
}

func TestUnmarshal_WrongLength(t *testing.T) {
	if _, err := Unmarshal(KindFeedback, make([]byte, 15)); err == nil {
		t.Fatalf("expected length error")
	}
}

// ---- text ----

func TestText_TruncateAndPad(t *testing.T) {
	u := NewText8("millimeters")
	if u.String() != "millimet" {
		t.Fatalf("truncate: got=%q", u.String())
	}

	n := NewText16("mm")
	if n[2] != 0 || n[15] != 0 {
		t.Fatalf("padding not zero: %v", n)
	}
	if n.String() != "mm" {
		t.Fatalf("string: got=%q", n.String())
	}
}

func TestText_Windows1251(t *testing.T) {
	u := NewText8("Привет мир")
	if u[0] != 0xCF {
		t.Fatalf("first byte: got=%#x want=0xcf", u[0])
	}
	if u.String() != "Привет м" {
		t.Fatalf("decode: got=%q", u.String())
	}
}

func TestText_YAMLByteList(t *testing.T) {
	var v struct {
		Name Text16 `yaml:"name"`
	}
	src := "name: [0, 113, -4, 118]\n"
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.Name[1] != 113 || v.Name[2] != 252 || v.Name[3] != 118 {
		t.Fatalf("bytes: got=%v", v.Name[:4])
	}
	if v.Name.String() != "" {
		t.Fatalf("leading NUL should read empty: got=%q", v.Name.String())
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again struct {
		Name Text16 `yaml:"name"`
	}
	if err := yaml.Unmarshal(out, &again); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if again.Name != v.Name {
		t.Fatalf("raw bytes lost: got=%v want=%v", again.Name, v.Name)
	}
}

func TestText_YAMLTooLong(t *testing.T) {
	var v struct {
		Units Text8 `yaml:"units"`
	}
	if err := yaml.Unmarshal([]byte("units: [1,2,3,4,5,6,7,8,9]\n"), &v); err == nil {
		t.Fatalf("expected overflow error")
	}
}

// ---- bits ----

func TestBits_YAMLForms(t *testing.T) {
	cases := []struct {
		src  string
		want Bits
	}{
		{"f: 192\n", 192},
		{"f: 0x80\n", 0x80},
		{"f: HOME_USE_FAST\n", 0x100},
		{"f: HOME_USE_FAST | HOME_DIR_SECOND\n", 0x102},
		{"f: [ENDER_SW2_ACTIVE_LOW, ENDER_SW1_ACTIVE_LOW, ENDER_SWAP]\n", 0x07},
	}
	for _, c := range cases {
		var v struct {
			F Bits `yaml:"f"`
		}
		if err := yaml.Unmarshal([]byte(c.src), &v); err != nil {
			t.Fatalf("%q: %v", c.src, err)
		}
		if v.F != c.want {
			t.Fatalf("%q: got=%#x want=%#x", c.src, v.F, c.want)
		}
	}
}

func TestBits_UnknownName(t *testing.T) {
	var v struct {
		F Bits `yaml:"f"`
	}
	if err := yaml.Unmarshal([]byte("f: HOME_USE_SLOW\n"), &v); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

// ---- validation ----

func TestValidate_Ranges(t *testing.T) {
	bad := []Payload{
		&FeedbackSettings{FeedbackType: 2},
		&EngineSettings{MicrostepMode: 0},
		&EngineSettings{MicrostepMode: 10},
		&EntypeSettings{EngineType: 6},
		&EntypeSettings{EngineType: 3, DriverType: 4},
		&EdgesSettings{LeftBorder: 100, RightBorder: 100},
		&EdgesSettings{LeftBorder: 200, RightBorder: -200},
		&JoystickSettings{JoyLowEnd: 10, JoyCenter: 5, JoyHighEnd: 20},
		&UARTSettings{},
		&GearSettings{ReductionIn: 1},
		nil,
	}
	for _, p := range bad {
		err := Validate(p)
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("%T %+v: got=%v want ErrInvalid", p, p, err)
		}
	}

	good := []Payload{
		&FeedbackSettings{FeedbackType: FeedbackEMF},
		&EngineSettings{MicrostepMode: MicrostepModeFrac256},
		&EntypeSettings{EngineType: EngineTypeBrushless},
		&EdgesSettings{},
		&EdgesSettings{LeftBorder: -950000, RightBorder: 950000},
		&JoystickSettings{JoyHighEnd: 10000, JoyCenter: 5000},
		&UARTSettings{Speed: 115200},
		&GearSettings{ReductionIn: 1, ReductionOut: 1},
		&StageName{},
	}
	for _, p := range good {
		if err := Validate(p); err != nil {
			t.Fatalf("%T: unexpected %v", p, err)
		}
	}
}

func TestCheckFractions(t *testing.T) {
	if got := MicrostepsPerStep(MicrostepModeFrac256); got != 256 {
		t.Fatalf("FRAC_256: got=%d want=256", got)
	}
	if got := MicrostepsPerStep(MicrostepModeFull); got != 1 {
		t.Fatalf("FULL: got=%d want=1", got)
	}

	p := &MoveSettings{Speed: 100, USpeed: 200}
	if err := CheckFractions(p, MicrostepModeFrac256); err != nil {
		t.Fatalf("200/256: %v", err)
	}
	if err := CheckFractions(p, MicrostepModeFull); !errors.Is(err, ErrInvalid) {
		t.Fatalf("200/1: got=%v want ErrInvalid", err)
	}

	h := &HomeSettings{UHomeDelta: -255}
	if err := CheckFractions(h, MicrostepModeFrac256); err != nil {
		t.Fatalf("-255/256: %v", err)
	}
	h.UHomeDelta = -256
	if err := CheckFractions(h, MicrostepModeFrac256); err == nil {
		t.Fatalf("-256/256: expected error")
	}

	if err := CheckFractions(&PIDSettings{}, MicrostepModeFull); err != nil {
		t.Fatalf("no fractions: %v", err)
	}
}
