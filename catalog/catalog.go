// Package catalog stores named snapshots of shape colors and
// restores them onto a document.
package catalog

import (
	"iter"
	"slices"
)

// Entry is the color captured for one shape.
type Entry struct {
	Index int    `json:"index"`
	Color string `json:"color"`
}

// Preset is a named snapshot of every shape color.
type Preset struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Target is a document whose shapes may be recolored.
type Target interface {
	ShapeCount() int
	SetShapeColor(index int, color string)
}

// Catalog maps preset names to presets, in insertion order.
// Names are unique and a Save never overwrites an existing preset.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	order   []string
	presets map[string][]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{presets: make(map[string][]Entry)}
}

// Save captures currentColors, the colors of all the shapes of the
// current document in index order, under name.
func (c *Catalog) Save(name string, currentColors []string) error {
	if name == "" {
		return &InvalidNameError{Name: name}
	}
	if _, ok := c.presets[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	entries := make([]Entry, len(currentColors))
	for i, col := range currentColors {
		entries[i] = Entry{Index: i, Color: col}
	}
	c.presets[name] = entries
	c.order = append(c.order, name)
	return nil
}

// Apply recolors target with the preset registered under name.
// Entries whose index is out of range for target are skipped.
// It returns the number of entries applied.
func (c *Catalog) Apply(name string, target Target) (int, error) {
	entries, ok := c.presets[name]
	if !ok {
		return 0, &NotFoundError{Name: name}
	}
	n := target.ShapeCount()
	applied := 0
	for _, e := range entries {
		if e.Index < 0 || e.Index >= n {
			continue
		}
		target.SetShapeColor(e.Index, e.Color)
		applied++
	}
	return applied, nil
}

// List returns the registered names, in insertion order.
// The sequence may be ranged over several times.
func (c *Catalog) List() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range c.order {
			if !yield(name) {
				return
			}
		}
	}
}

// Names returns a copy of the registered names, in insertion order.
func (c *Catalog) Names() []string { return slices.Clone(c.order) }

// Len returns the number of presets.
func (c *Catalog) Len() int { return len(c.order) }

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.presets[name]
	return ok
}

// Get returns a copy of the preset registered under name.
func (c *Catalog) Get(name string) (Preset, bool) {
	entries, ok := c.presets[name]
	if !ok {
		return Preset{}, false
	}
	return Preset{Name: name, Entries: slices.Clone(entries)}, true
}
