// internal/device/ximc/open.go
package ximc

import (
	"fmt"
	"net"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/tamzrod/stage-profiler/internal/device"
)

const (
	SchemeSerial = "xi-com"
	SchemeTCP    = "xi-tcp"

	DefaultBaud    = 115200
	DefaultTimeout = time.Second
	DefaultTCPPort = "1820"
)

func init() {
	device.Register(SchemeSerial, openSerial)
	device.Register(SchemeTCP, openTCP)
}

// openSerial accepts xi-com:///dev/ttyACM0, xi-com:COM3 and xi-com:///COM3.
func openSerial(u *url.URL, opts device.Options) (device.Device, error) {
	name := serialName(u)
	if name == "" {
		return nil, fmt.Errorf("ximc: %s uri has no port", SchemeSerial)
	}

	baud := opts.Baud
	if baud <= 0 {
		baud = DefaultBaud
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.TwoStopBits,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("ximc: open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("ximc: set timeout %s: %w", name, err)
	}

	return NewClient(name, port, timeout), nil
}

func serialName(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	p := u.Path
	// Windows port names carry no leading slash.
	if strings.HasPrefix(strings.ToUpper(p), "/COM") {
		p = p[1:]
	}
	return p
}

// openTCP accepts xi-tcp://host[:port].
func openTCP(u *url.URL, opts device.Options) (device.Device, error) {
	if u.Hostname() == "" {
		return nil, fmt.Errorf("ximc: %s uri has no host", SchemeTCP)
	}
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), DefaultTCPPort)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("ximc: dial %s: %w", addr, err)
	}
	return NewClient(addr, conn, timeout), nil
}

// Ports lists serial ports that may host a controller, sorted.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("ximc: list ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}
