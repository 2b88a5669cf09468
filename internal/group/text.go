// internal/group/text.go
package group

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

// Bounded text fields.
// The controller stores names as fixed single-byte buffers in Windows-1251.
// Text longer than the buffer is truncated; unused bytes are always zero.

// Text8 holds a short unit label ("mm", "deg").
type Text8 [8]byte

// Text16 holds a name or manufacturer.
type Text16 [16]byte

// Text24 holds a part number or accessory description.
type Text24 [24]byte

func NewText8(s string) Text8 {
	var t Text8
	fillText(t[:], s)
	return t
}

func NewText16(s string) Text16 {
	var t Text16
	fillText(t[:], s)
	return t
}

func NewText24(s string) Text24 {
	var t Text24
	fillText(t[:], s)
	return t
}

func (t Text8) String() string  { return textString(t[:]) }
func (t Text16) String() string { return textString(t[:]) }
func (t Text24) String() string { return textString(t[:]) }

func (t *Text8) UnmarshalYAML(n *yaml.Node) error  { return unmarshalText(n, t[:]) }
func (t *Text16) UnmarshalYAML(n *yaml.Node) error { return unmarshalText(n, t[:]) }
func (t *Text24) UnmarshalYAML(n *yaml.Node) error { return unmarshalText(n, t[:]) }

func (t Text8) MarshalYAML() (interface{}, error)  { return marshalText(t[:]), nil }
func (t Text16) MarshalYAML() (interface{}, error) { return marshalText(t[:]), nil }
func (t Text24) MarshalYAML() (interface{}, error) { return marshalText(t[:]), nil }

// ---- helpers ----

// fillText zeroes dst and copies the Windows-1251 form of s into it.
// Runes with no Windows-1251 mapping become '?'.
func fillText(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}

	enc := encoding.ReplaceUnsupported(charmap.Windows1251.NewEncoder())
	b, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		b = []byte(s)
	}

	for i := range b {
		if b[i] == 0x1A { // charmap replacement byte
			b[i] = '?'
		}
	}

	copy(dst, b)
}

// textString decodes up to the first NUL.
func textString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	out, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), src)
	if err != nil {
		return string(src)
	}
	return string(out)
}

// isCleanText reports whether src is plain text followed only by zero padding,
// i.e. whether String() loses nothing.
func isCleanText(src []byte) bool {
	end := bytes.IndexByte(src, 0)
	if end < 0 {
		end = len(src)
	}
	for _, b := range src[:end] {
		if b < 0x20 || b == 0x7F {
			return false
		}
	}
	for _, b := range src[end:] {
		if b != 0 {
			return false
		}
	}
	return true
}

// unmarshalText accepts either a string or a sequence of byte values.
// Byte values may be given signed (-128..-1) as in int8 C tables.
func unmarshalText(n *yaml.Node, dst []byte) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		fillText(dst, s)
		return nil

	case yaml.SequenceNode:
		if len(n.Content) > len(dst) {
			return fmt.Errorf("group: line %d: %d bytes exceed %d-byte field", n.Line, len(n.Content), len(dst))
		}
		raw := make([]byte, len(dst))
		for i, item := range n.Content {
			var v int
			if err := item.Decode(&v); err != nil {
				return err
			}
			if v < -128 || v > 255 {
				return fmt.Errorf("group: line %d: byte value %d out of range", item.Line, v)
			}
			raw[i] = byte(v)
		}
		copy(dst, raw)
		return nil

	default:
		return fmt.Errorf("group: line %d: text field must be a string or byte list", n.Line)
	}
}

func marshalText(src []byte) interface{} {
	if isCleanText(src) {
		return textString(src)
	}
	out := make([]int, len(src))
	for i, b := range src {
		out[i] = int(b)
	}
	return out
}
