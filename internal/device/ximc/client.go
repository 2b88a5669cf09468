// internal/device/ximc/client.go
package ximc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/tamzrod/stage-profiler/internal/group"
	"github.com/tamzrod/stage-profiler/internal/result"
)

// Error replies. Each replaces the 4-byte command echo.
const (
	replyUnknownCommand = "errc"
	replyBadData        = "errd"
	replyBadValue       = "errv"
)

var errTimeout = errors.New("ximc: read timeout")

// deadliner is implemented by network links; serial ports use a
// read timeout set at open instead.
type deadliner interface {
	SetDeadline(t time.Time) error
}

// Client speaks the framed settings protocol over one link.
// Requests are serialized; one request is in flight at a time.
type Client struct {
	name    string
	timeout time.Duration

	mu     sync.Mutex
	rw     io.ReadWriteCloser
	closed bool
}

// NewClient wraps an open link. name is used in logs only.
func NewClient(name string, rw io.ReadWriteCloser, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{name: name, rw: rw, timeout: timeout}
}

// ---- device.Device ----

// Set validates p on the host, then writes it.
// A host-side validation failure is reported as ValueError and nothing is sent.
func (c *Client) Set(p group.Payload) result.Code {
	if err := group.Validate(p); err != nil {
		return result.ValueError
	}
	payload, err := group.Marshal(p)
	if err != nil {
		return result.ValueError
	}

	k := p.Kind()
	cmd := k.SetCommand()

	frame := make([]byte, 0, len(cmd)+len(payload)+2)
	frame = append(frame, cmd...)
	frame = append(frame, payload...)
	frame = binary.LittleEndian.AppendUint16(frame, crc16(payload))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return result.NoDevice
	}
	if err := c.beginLocked(); err != nil {
		return c.linkFailed(cmd, err)
	}
	if _, err := c.rw.Write(frame); err != nil {
		return c.linkFailed(cmd, err)
	}

	echo := make([]byte, 4)
	if err := readFull(c.rw, echo); err != nil {
		return c.linkFailed(cmd, err)
	}
	return echoResult(cmd, echo)
}

// Get reads one group back from the controller.
func (c *Client) Get(k group.Kind) (group.Payload, result.Code) {
	if !k.Valid() {
		return nil, result.NotImplemented
	}
	cmd := k.GetCommand()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, result.NoDevice
	}
	if err := c.beginLocked(); err != nil {
		return nil, c.linkFailed(cmd, err)
	}
	if _, err := c.rw.Write([]byte(cmd)); err != nil {
		return nil, c.linkFailed(cmd, err)
	}

	echo := make([]byte, 4)
	if err := readFull(c.rw, echo); err != nil {
		return nil, c.linkFailed(cmd, err)
	}
	if code := echoResult(cmd, echo); code != result.OK {
		return nil, code
	}

	body := make([]byte, group.Size(k)+2)
	if err := readFull(c.rw, body); err != nil {
		return nil, c.linkFailed(cmd, err)
	}
	payload, sum := body[:len(body)-2], binary.LittleEndian.Uint16(body[len(body)-2:])
	if crc16(payload) != sum {
		log.Printf("ximc: %s crc mismatch (dev=%s)", cmd, c.name)
		return nil, result.Error
	}

	p, err := group.Unmarshal(k, payload)
	if err != nil {
		return nil, result.Error
	}
	return p, result.OK
}

// Close releases the link. Later calls return NoDevice.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.rw.Close()
}

// ---- helpers ----

func (c *Client) beginLocked() error {
	if d, ok := c.rw.(deadliner); ok {
		return d.SetDeadline(time.Now().Add(c.timeout))
	}
	return nil
}

// linkFailed drops the link. A late reply may still be in flight, so the
// stream is out of step and later requests report NoDevice.
func (c *Client) linkFailed(cmd string, err error) result.Code {
	log.Printf("ximc: %s failed: %v (dev=%s)", cmd, err, c.name)
	c.closed = true
	if cerr := c.rw.Close(); cerr != nil {
		log.Printf("ximc: close after failure: %v (dev=%s)", cerr, c.name)
	}
	return result.NoDevice
}

func echoResult(cmd string, echo []byte) result.Code {
	switch {
	case bytes.Equal(echo, []byte(cmd)):
		return result.OK
	case string(echo) == replyUnknownCommand:
		return result.NotImplemented
	case string(echo) == replyBadValue:
		return result.ValueError
	default:
		// replyBadData or a stray echo
		return result.Error
	}
}

// readFull is io.ReadFull for links that report a read timeout as (0, nil).
func readFull(r io.Reader, buf []byte) error {
	for off := 0; off < len(buf); {
		n, err := r.Read(buf[off:])
		off += n
		if err != nil {
			if err == io.EOF && off < len(buf) {
				return io.ErrUnexpectedEOF
			}
			if off < len(buf) {
				return err
			}
			return nil
		}
		if n == 0 {
			return fmt.Errorf("%w after %d of %d bytes", errTimeout, off, len(buf))
		}
	}
	return nil
}
