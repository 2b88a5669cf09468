// internal/profile/profile_test.go
package profile_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/stage-profiler/internal/applicator"
	"github.com/tamzrod/stage-profiler/internal/device/virtual"
	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/profile"
	"github.com/tamzrod/stage-profiler/internal/result"
	"github.com/tamzrod/stage-profiler/internal/verify"
)

func builtin(t *testing.T) *profile.Catalog {
	t.Helper()
	cat, err := profile.Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	return cat
}

// ---- catalog ----

func TestBuiltin_Names(t *testing.T) {
	want := []string{
		"8MR190-2-28-E3",
		"8MR191E-1-28",
		"8MTF200XY-B43-LEn1-100",
		"8MTL1301-170",
		"8MTL1301-170-LEN-100",
	}
	got := builtin(t).Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("names: got=%v want=%v", got, want)
	}
}

func TestBuiltin_CheckAndApplyToEmulator(t *testing.T) {
	cat := builtin(t)

	for _, name := range cat.Names() {
		p, _ := cat.Get(name)
		if err := profile.Check(p); err != nil {
			t.Fatalf("%s: check: %v", name, err)
		}

		dev := virtual.New()
		if code := applicator.Apply(dev, p.Groups); code != result.OK {
			t.Fatalf("%s: apply: got=%s want=ok", name, code)
		}
		if r := verify.Check(dev, p.Groups); !r.OK() {
			t.Fatalf("%s: readback: %s", name, r.Summary())
		}
		if len(dev.Calls()) != len(p.Groups) {
			t.Fatalf("%s: calls: got=%d want=%d", name, len(dev.Calls()), len(p.Groups))
		}
	}
}

func TestBuiltin_Contents(t *testing.T) {
	cat := builtin(t)

	full, _ := cat.Get("8MTF200XY-B43-LEn1-100")
	if len(full.Groups) != 33 {
		t.Fatalf("8MTF200XY groups: got=%d want=33", len(full.Groups))
	}
	eng := full.Groups[group.KindEngine].(*group.EngineSettings)
	if eng.MicrostepMode != group.MicrostepModeFull || eng.Antiplay != -30474 {
		t.Fatalf("engine: got=%+v", eng)
	}
	info := full.Groups[group.KindStageInformation].(*group.StageInformation)
	if info.Manufacturer.String() != "Standa" || info.PartNumber.String() != "8MTF200XY-B43-LEn1-100" {
		t.Fatalf("stage info: %q %q", info.Manufacturer, info.PartNumber)
	}
	st := full.Groups[group.KindStageSettings].(*group.StageSettings)
	if st.Units.String() != "mm" || st.Units[3] != 'r' {
		t.Fatalf("units: got=%v", st.Units)
	}

	short, _ := cat.Get("8MTL1301-170")
	if len(short.Groups) != 11 {
		t.Fatalf("8MTL1301-170 groups: got=%d want=11", len(short.Groups))
	}
	name := short.Groups[10].(*group.ControllerName)
	if name.ControllerName[2] != 252 || name.ControllerName[6] != 227 {
		t.Fatalf("signed bytes: got=%v", name.ControllerName)
	}
}

func TestCatalog_AddRejectsDuplicate(t *testing.T) {
	cat := builtin(t)
	p, _ := cat.Get("8MTL1301-170")
	if err := cat.Add(p); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

// ---- parse / check ----

func TestParse_MinimalAndUnknownFields(t *testing.T) {
	src := `
name: test
groups:
  - kind: feedback
    settings: {feedback_type: FEEDBACK_EMF, ips: 10}
  - kind: stage_name
`
	p, err := profile.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(p.Groups) != 2 {
		t.Fatalf("groups: got=%d want=2", len(p.Groups))
	}
	fb := p.Groups[0].(*group.FeedbackSettings)
	if fb.IPS != 10 || fb.FeedbackType != group.FeedbackEMF || fb.CountsPerTurn != 0 {
		t.Fatalf("feedback: got=%+v", fb)
	}

	bad := []string{
		"name: t\ngroups:\n  - kind: feedback\n    settings: {ipss: 1}\n",
		"name: t\ngroups:\n  - kind: teleport\n",
		"groups: []\n",
		"name: t\ngroups:\n  - kind: home\n    settings: {home_flags: HOME_FLY}\n",
	}
	for _, src := range bad {
		if _, err := profile.Parse([]byte(src)); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}

func TestCheck_OrderAndDuplicates(t *testing.T) {
	ok := profile.Profile{Name: "ok", Groups: []group.Payload{&group.FeedbackSettings{}, &group.PIDSettings{}}}
	if err := profile.Check(ok); err != nil {
		t.Fatalf("ok: %v", err)
	}

	dup := profile.Profile{Name: "dup", Groups: []group.Payload{&group.MoveSettings{}, &group.MoveSettings{}}}
	if err := profile.Check(dup); err == nil {
		t.Fatalf("expected duplicate error")
	}

	order := profile.Profile{Name: "order", Groups: []group.Payload{&group.PIDSettings{}, &group.FeedbackSettings{}}}
	if err := profile.Check(order); err == nil {
		t.Fatalf("expected order error")
	}
}

func TestMarshalYAML_ParsesBack(t *testing.T) {
	p, _ := builtin(t).Get("8MR191E-1-28")

	out, err := yaml.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := profile.Parse(out)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, out)
	}

	dev := virtual.New()
	applicator.Apply(dev, back.Groups)
	if r := verify.Check(dev, p.Groups); !r.OK() {
		t.Fatalf("shown profile differs: %s", r.Summary())
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	good := "name: custom\nvendor: LAB\ngroups:\n  - kind: uart\n    settings: {speed: 9600}\n"
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(good), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cat := builtin(t)
	if err := cat.LoadDir(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := cat.Get("custom"); !ok {
		t.Fatalf("custom profile missing")
	}

	broken := "name: broken\ngroups:\n  - kind: pid\n  - kind: feedback\n"
	if err := os.WriteFile(filepath.Join(dir, "z.yaml"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := profile.NewCatalog().LoadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "z.yaml") {
		t.Fatalf("expected error naming z.yaml, got %v", err)
	}
}

func TestLoadDir_MissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "typo")
	err := profile.NewCatalog().LoadDir(missing)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got=%v want=not exist", err)
	}

	file := filepath.Join(t.TempDir(), "one.yaml")
	if err := os.WriteFile(file, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := profile.NewCatalog().LoadDir(file); err == nil {
		t.Fatalf("expected error for a file path")
	}
}
