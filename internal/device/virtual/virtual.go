// internal/device/virtual/virtual.go
package virtual

import (
	"net/url"
	"strings"
	"sync"

	"github.com/tamzrod/stage-profiler/internal/device"
	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

// Scheme is the URI scheme of emulated controllers: xi-emu:///name.
const Scheme = "xi-emu"

func init() {
	device.Register(Scheme, open)
}

// Controller emulates controller firmware in memory.
// Accepted payloads are stored in wire form, as the firmware would.
type Controller struct {
	mu        sync.Mutex
	stored    map[group.Kind][]byte
	forced    map[group.Kind]result.Code
	mode      group.Bits
	unplugged bool
	calls     []group.Kind
}

// New returns an unregistered controller in its power-on state.
func New() *Controller {
	return &Controller{
		stored: make(map[group.Kind][]byte),
		forced: make(map[group.Kind]result.Code),
		mode:   group.MicrostepModeFrac256,
	}
}

// Set applies firmware checks and stores p on success.
func (c *Controller) Set(p group.Payload) result.Code {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p == nil {
		return result.ValueError
	}
	k := p.Kind()
	c.calls = append(c.calls, k)

	if c.unplugged {
		return result.NoDevice
	}
	if code, ok := c.forced[k]; ok {
		return code
	}
	if err := group.Validate(p); err != nil {
		return result.ValueError
	}

	// Fractions are checked against the mode in effect after this set.
	mode := c.mode
	if e, ok := p.(*group.EngineSettings); ok {
		mode = e.MicrostepMode
	}
	if err := group.CheckFractions(p, mode); err != nil {
		return result.ValueError
	}

	b, err := group.Marshal(p)
	if err != nil {
		return result.Error
	}
	c.stored[k] = b
	c.mode = mode
	return result.OK
}

// Get returns the stored payload, or a zero payload if k was never set.
func (c *Controller) Get(k group.Kind) (group.Payload, result.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.unplugged {
		return nil, result.NoDevice
	}
	if !k.Valid() {
		return nil, result.NotImplemented
	}
	if code, ok := c.forced[k]; ok && code != result.OK {
		return nil, code
	}

	b, ok := c.stored[k]
	if !ok {
		return group.New(k), result.OK
	}
	p, err := group.Unmarshal(k, b)
	if err != nil {
		return nil, result.Error
	}
	return p, result.OK
}

// Close keeps state; named controllers outlive their handles.
func (c *Controller) Close() error { return nil }

// ---- fault injection ----

// Fail forces every later call for k to return code.
func (c *Controller) Fail(k group.Kind, code result.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forced[k] = code
}

// Unsupport makes k behave like a command the firmware does not know.
func (c *Controller) Unsupport(k group.Kind) {
	c.Fail(k, result.NotImplemented)
}

// Unplug makes every later call return NoDevice.
func (c *Controller) Unplug() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unplugged = true
}

// Calls returns the kinds passed to Set, in call order.
func (c *Controller) Calls() []group.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]group.Kind, len(c.calls))
	copy(out, c.calls)
	return out
}

// MicrostepMode returns the mode used to check microstep fractions.
func (c *Controller) MicrostepMode() group.Bits {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ---- named instances ----

var (
	regMu    sync.Mutex
	registry = map[string]*Controller{}
)

// Lookup returns the named controller created by an earlier open.
func Lookup(name string) (*Controller, bool) {
	regMu.Lock()
	defer regMu.Unlock()
	c, ok := registry[name]
	return c, ok
}

// Reset forgets every named controller.
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	registry = map[string]*Controller{}
}

func open(u *url.URL, _ device.Options) (device.Device, error) {
	name := instanceName(u)

	regMu.Lock()
	defer regMu.Unlock()

	c, ok := registry[name]
	if !ok {
		c = New()
		registry[name] = c
	}
	return c, nil
}

// instanceName accepts xi-emu:///x, xi-emu://x and xi-emu:x.
func instanceName(u *url.URL) string {
	switch {
	case u.Opaque != "":
		return u.Opaque
	case u.Host != "":
		return u.Host + u.Path
	default:
		return strings.TrimPrefix(u.Path, "/")
	}
}
