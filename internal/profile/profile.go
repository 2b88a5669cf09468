// internal/profile/profile.go
package profile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/stage-profiler/internal/group"
)

// Profile is an ordered batch of settings groups for one stage model.
type Profile struct {
	Name        string
	Vendor      string
	Description string
	Groups      []group.Payload
}

// ---- file format ----

type fileProfile struct {
	Name        string      `yaml:"name"`
	Vendor      string      `yaml:"vendor,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Groups      []fileGroup `yaml:"groups"`
}

type fileGroup struct {
	Kind     string    `yaml:"kind"`
	Settings yaml.Node `yaml:"settings"`
}

type outGroup struct {
	Kind     string        `yaml:"kind"`
	Settings group.Payload `yaml:"settings"`
}

type outProfile struct {
	Name        string     `yaml:"name"`
	Vendor      string     `yaml:"vendor,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Groups      []outGroup `yaml:"groups"`
}

// Parse decodes a profile document. Fields a group omits stay zero.
// Unknown setting names are rejected.
func Parse(b []byte) (Profile, error) {
	var f fileProfile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}
	if f.Name == "" {
		return Profile{}, fmt.Errorf("profile: name is required")
	}

	p := Profile{
		Name:        f.Name,
		Vendor:      f.Vendor,
		Description: f.Description,
		Groups:      make([]group.Payload, 0, len(f.Groups)),
	}

	for i, g := range f.Groups {
		k, err := group.ParseKind(g.Kind)
		if err != nil {
			return Profile{}, fmt.Errorf("profile %s: groups[%d]: %w", f.Name, i, err)
		}
		payload := group.New(k)
		if err := decodeSettings(&g.Settings, payload); err != nil {
			return Profile{}, fmt.Errorf("profile %s: groups[%d] (%s): %w", f.Name, i, k, err)
		}
		p.Groups = append(p.Groups, payload)
	}

	return p, nil
}

// decodeSettings decodes n into dst with unknown-field checking.
// A missing settings node leaves dst zero.
func decodeSettings(n *yaml.Node, dst group.Payload) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: settings must be a mapping", n.Line)
	}

	raw, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(dst)
}

// MarshalYAML writes the profile in the same shape Parse reads.
func (p Profile) MarshalYAML() (interface{}, error) {
	out := outProfile{
		Name:        p.Name,
		Vendor:      p.Vendor,
		Description: p.Description,
		Groups:      make([]outGroup, 0, len(p.Groups)),
	}
	for _, g := range p.Groups {
		out.Groups = append(out.Groups, outGroup{Kind: g.Kind().String(), Settings: g})
	}
	return out, nil
}

// Check rejects duplicate groups and groups out of canonical order.
// A profile may omit any group.
func Check(p Profile) error {
	prev := group.Kind(-1)
	for i, g := range p.Groups {
		if g == nil {
			return fmt.Errorf("profile %s: groups[%d] is nil", p.Name, i)
		}
		k := g.Kind()
		switch {
		case k == prev:
			return fmt.Errorf("profile %s: groups[%d]: duplicate %s", p.Name, i, k)
		case k < prev:
			return fmt.Errorf("profile %s: groups[%d]: %s must come before %s", p.Name, i, k, prev)
		}
		prev = k
	}
	return nil
}
