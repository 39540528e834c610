package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrNotFound is returned by lookups for ids the catalog does not contain.
var ErrNotFound = errors.New("not found in catalog")

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return &c, nil
}

// Default returns the catalog shipped with the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		// The embedded file is covered by tests.
		panic(err)
	}
	return c
}

// LoadFS reads a catalog from a YAML file on fs.
func LoadFS(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Load reads a catalog from the OS filesystem. An empty path yields the
// embedded default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFS(afero.NewOsFs(), path)
}

// Region returns the region with the given id, or nil if not found.
func (c *Catalog) Region(id string) *Region {
	for i := range c.Regions {
		if c.Regions[i].ID == id {
			return &c.Regions[i]
		}
	}
	return nil
}

// FoodSystem returns the food system with the given id, or nil if not found.
func (c *Catalog) FoodSystem(id string) *FoodSystem {
	for i := range c.FoodSystems {
		if c.FoodSystems[i].ID == id {
			return &c.FoodSystems[i]
		}
	}
	return nil
}

// Mode returns the self-sufficiency mode with the given id, or nil if not found.
func (c *Catalog) Mode(id string) *Mode {
	for i := range c.Modes {
		if c.Modes[i].ID == id {
			return &c.Modes[i]
		}
	}
	return nil
}

// Resource returns the resource with the given id, or nil if not found.
func (c *Catalog) Resource(id string) *Resource {
	for i := range c.Resources {
		if c.Resources[i].ID == id {
			return &c.Resources[i]
		}
	}
	return nil
}

// Template returns the creative template with the given id, or nil if not found.
func (c *Catalog) Template(id string) *CreativeTemplate {
	for i := range c.CreativeTemplates {
		if c.CreativeTemplates[i].ID == id {
			return &c.CreativeTemplates[i]
		}
	}
	return nil
}

// ResourcesIn returns the resources of one category in catalog order.
func (c *Catalog) ResourcesIn(category ResourceCategory) []Resource {
	var out []Resource
	for _, r := range c.Resources {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// PreferenceTag returns the tag with id, or nil.
func (c *Catalog) PreferenceTag(id string) *PreferenceTag {
	for i := range c.PreferenceTags {
		if c.PreferenceTags[i].ID == id {
			return &c.PreferenceTags[i]
		}
	}
	return nil
}

// TagsConflict reports whether a and b exclude each other, whichever of
// the two declares the conflict.
func (c *Catalog) TagsConflict(a, b string) bool {
	if t := c.PreferenceTag(a); t != nil && slices.Contains(t.Conflicts, b) {
		return true
	}
	if t := c.PreferenceTag(b); t != nil && slices.Contains(t.Conflicts, a) {
		return true
	}
	return false
}

// HasFamilySize reports whether size is one of the family presets.
func (c *Catalog) HasFamilySize(size int) bool {
	for _, p := range c.FamilyPresets {
		if p.Size == size {
			return true
		}
	}
	return false
}

// LookupRegion is Region with an error for unknown ids.
func (c *Catalog) LookupRegion(id string) (*Region, error) {
	r := c.Region(id)
	if r == nil {
		return nil, fmt.Errorf("region %q: %w", id, ErrNotFound)
	}
	return r, nil
}
