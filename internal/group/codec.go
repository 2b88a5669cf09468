// internal/group/codec.go
package group

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Wire layout: little-endian, fields in declaration order, no padding.

// Size returns the encoded payload size for k.
func Size(k Kind) int {
	p := New(k)
	if p == nil {
		return -1
	}
	return binary.Size(p)
}

// Marshal encodes p in controller byte order.
func Marshal(p Payload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("group: marshal nil payload")
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, p); err != nil {
		return nil, fmt.Errorf("group: marshal %s: %w", p.Kind(), err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a payload of kind k. len(b) must equal Size(k).
func Unmarshal(k Kind, b []byte) (Payload, error) {
	p := New(k)
	if p == nil {
		return nil, fmt.Errorf("group: unmarshal unknown %s", k)
	}
	if want := binary.Size(p); len(b) != want {
		return nil, fmt.Errorf("group: unmarshal %s: got %d bytes want %d", k, len(b), want)
	}
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, p); err != nil {
		return nil, fmt.Errorf("group: unmarshal %s: %w", k, err)
	}
	return p, nil
}
