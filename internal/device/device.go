// internal/device/device.go
package device

import (
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

// Device is an open controller handle.
// Set and Get report controller results, never Go errors.
type Device interface {
	Set(p group.Payload) result.Code
	Get(k group.Kind) (group.Payload, result.Code)
	Close() error
}

// Options tune how a transport opens a controller.
// Zero values mean transport defaults.
type Options struct {
	Timeout time.Duration
	Baud    int
}

// Opener opens a device for a parsed URI.
type Opener func(u *url.URL, opts Options) (Device, error)

var (
	mu      sync.RWMutex
	openers = map[string]Opener{}
)

// Register binds a URI scheme to an opener. Registering a scheme twice panics.
func Register(scheme string, fn Opener) {
	mu.Lock()
	defer mu.Unlock()

	if fn == nil {
		panic("device: Register opener is nil")
	}
	if _, dup := openers[scheme]; dup {
		panic("device: Register called twice for scheme " + scheme)
	}
	openers[scheme] = fn
}

// Schemes returns the registered schemes, sorted.
func Schemes() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(openers))
	for s := range openers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Open parses uri and dispatches on its scheme.
func Open(uri string, opts Options) (Device, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("device: bad uri %q: %w", uri, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("device: uri %q has no scheme", uri)
	}

	mu.RLock()
	fn, ok := openers[u.Scheme]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("device: unknown scheme %q", u.Scheme)
	}

	return fn(u, opts)
}
