// cmd/profiler/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/stage-profiler/internal/config"
	_ "github.com/tamzrod/stage-profiler/internal/device/virtual"
	"github.com/tamzrod/stage-profiler/internal/device/ximc"
	"github.com/tamzrod/stage-profiler/internal/profile"
	"github.com/tamzrod/stage-profiler/internal/result"
	"github.com/tamzrod/stage-profiler/internal/runner"
	"github.com/tamzrod/stage-profiler/internal/writer"
	wmodbus "github.com/tamzrod/stage-profiler/internal/writer/modbus"
)

const usage = `usage:
  profiler apply <config.yaml>
  profiler profiles [dir]
  profiler show <name> [dir]
  profiler ports`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	switch os.Args[1] {
	case "apply":
		if len(os.Args) != 3 {
			log.Fatal(usage)
		}
		os.Exit(apply(os.Args[2]))

	case "profiles":
		cat := catalog(optionalArg(2))
		for _, name := range cat.Names() {
			p, _ := cat.Get(name)
			fmt.Printf("%-28s %-8s %2d groups  %s\n", p.Name, p.Vendor, len(p.Groups), p.Description)
		}

	case "show":
		if len(os.Args) < 3 {
			log.Fatal(usage)
		}
		cat := catalog(optionalArg(3))
		p, ok := cat.Get(os.Args[2])
		if !ok {
			log.Fatalf("unknown profile %q", os.Args[2])
		}
		if err := writeProfile(os.Stdout, p); err != nil {
			log.Fatalf("show failed: %v", err)
		}

	case "ports":
		ports, err := ximc.Ports()
		if err != nil {
			log.Fatalf("ports failed: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}

	default:
		log.Fatal(usage)
	}
}

// apply provisions every configured axis and returns the process exit code.
func apply(cfgPath string) int {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	cat := catalog(cfg.Profiler.ProfilesDir)

	if err := config.Validate(cfg, func(name string) bool {
		_, ok := cat.Get(name)
		return ok
	}); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Status memory (optional)
	// --------------------

	var statusCli *wmodbus.EndpointClient
	if needsStatus(cfg) {
		statusCli, err = writer.BuildEndpointClient(cfg.Profiler.StatusMemory)
		if err != nil {
			// Provisioning still runs; status is best-effort.
			log.Printf("status memory unavailable (endpoint=%s): %v", cfg.Profiler.StatusMemory.Endpoint, err)
			statusCli = nil
		} else {
			defer statusCli.Close()
		}
	}

	// --------------------
	// Build + run per-axis sessions
	// --------------------

	sessions, err := runner.Build(cfg, cat, statusCli)
	if err != nil {
		log.Fatalf("session build failed: %v", err)
	}

	outcomes := runner.RunAll(sessions)

	for _, o := range outcomes {
		line := fmt.Sprintf("%-12s %-28s %-16s code=%d", o.AxisID, o.Profile, o.Code, errorCode(o.Code.Err()))
		if o.Verify != nil {
			line += "  " + o.Verify.Summary()
		}
		if o.Err != nil {
			line += "  " + o.Err.Error()
		}
		fmt.Println(line)
	}

	return exitCode(runner.Worst(outcomes))
}

// writeProfile prints p in the same YAML shape profile.Parse reads.
func writeProfile(w io.Writer, p profile.Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func exitCode(worst result.Code) int {
	switch worst {
	case result.OK:
		return 0
	case result.ValueError:
		return 2
	default:
		return 1
	}
}

func needsStatus(cfg *config.Config) bool {
	for _, a := range cfg.Profiler.Axes {
		if a.StatusSlot != nil {
			return true
		}
	}
	return false
}

func catalog(dir string) *profile.Catalog {
	cat, err := profile.Builtin()
	if err != nil {
		log.Fatalf("built-in profiles broken: %v", err)
	}
	if dir != "" {
		if err := cat.LoadDir(dir); err != nil {
			log.Fatalf("profiles_dir load failed (dir=%s): %v", dir, err)
		}
	}
	return cat
}

func optionalArg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return 1
}
