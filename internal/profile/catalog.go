// internal/profile/catalog.go
package profile

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

//go:embed stages/*.yaml
var builtin embed.FS

// Catalog is a named set of checked profiles.
type Catalog struct {
	byName map[string]Profile
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]Profile)}
}

// Builtin returns a catalog of the embedded stage profiles.
func Builtin() (*Catalog, error) {
	c := NewCatalog()
	if err := c.loadFS(builtin, "stages/*.yaml"); err != nil {
		return nil, err
	}
	return c, nil
}

// Add registers p after checking it. Names are unique.
func (c *Catalog) Add(p Profile) error {
	if err := Check(p); err != nil {
		return err
	}
	if _, exists := c.byName[p.Name]; exists {
		return fmt.Errorf("profile: duplicate name %q", p.Name)
	}
	c.byName[p.Name] = p
	return nil
}

func (c *Catalog) Get(name string) (Profile, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Names returns every profile name, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.byName))
	for name := range c.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadDir adds every *.yaml profile found in dir.
// All files are tried; failures are reported together.
func (c *Catalog) LoadDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("profile: %s is not a directory", dir)
	}
	return c.loadFS(os.DirFS(dir), "*.yaml")
}

func (c *Catalog) loadFS(fsys fs.FS, pattern string) error {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	sort.Strings(files)

	var errs []string
	for _, name := range files {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		p, err := Parse(b)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if err := c.Add(p); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile: load failed: %s", strings.Join(errs, " | "))
	}
	return nil
}
