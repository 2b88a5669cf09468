// internal/runner/builder.go
package runner

import (
	"fmt"

	"github.com/tamzrod/stage-profiler/internal/config"
	"github.com/tamzrod/stage-profiler/internal/profile"
	"github.com/tamzrod/stage-profiler/internal/writer"
	wmodbus "github.com/tamzrod/stage-profiler/internal/writer/modbus"
)

// Build turns a validated, normalized config into sessions.
// statusCli may be nil, in which case no axis publishes status.
func Build(cfg *config.Config, cat *profile.Catalog, statusCli *wmodbus.EndpointClient) ([]Session, error) {
	sessions := make([]Session, 0, len(cfg.Profiler.Axes))

	for _, a := range cfg.Profiler.Axes {
		p, ok := cat.Get(a.Profile)
		if !ok {
			return nil, fmt.Errorf("runner: axis %q: unknown profile %q", a.ID, a.Profile)
		}

		s := Session{Axis: a, Profile: p}

		if statusCli != nil {
			plan := writer.BuildStatusPlan(a, cfg.Profiler.StatusMemory)
			if sw, enabled := writer.NewStatusWriter(plan, statusCli); enabled {
				s.Status = sw
			}
		}

		sessions = append(sessions, s)
	}

	return sessions, nil
}
