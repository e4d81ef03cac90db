// Package catalog holds the fixed, ordered list of searchable PC component
// categories. Each category maps to one provider index.
package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when a catalog fails validation
var ErrInvalid = errors.New("invalid catalog")

// Category describes one searchable partition of the parts universe
type Category struct {
	Name        string `toml:"name" json:"name"`   // provider index name, unique
	Label       string `toml:"label" json:"label"` // display label
	Icon        string `toml:"icon" json:"icon"`   // display glyph
	HitsPerPage int    `toml:"hits_per_page,omitempty" json:"hits_per_page,omitempty"`
}

// Default returns the PC component indices in display order
func Default() []Category {
	return []Category{
		{Name: "cpu", Label: "CPUs", Icon: "🧠"},
		{Name: "motherboard", Label: "Motherboards", Icon: "🔌"},
		{Name: "video-card", Label: "Graphics Cards", Icon: "🎮"},
		{Name: "memory", Label: "RAM", Icon: "💾"},
		{Name: "internal-hard-drive", Label: "Storage", Icon: "💿"},
		{Name: "power-supply", Label: "Power Supplies", Icon: "⚡"},
		{Name: "case", Label: "Cases", Icon: "🖥️"},
		{Name: "cpu-cooler", Label: "CPU Coolers", Icon: "❄️"},
		{Name: "case-fan", Label: "Case Fans", Icon: "🌀"},
		{Name: "wireless-network-card", Label: "WiFi Cards", Icon: "📶"},
		{Name: "optical-drive", Label: "Optical Drives", Icon: "📀"},
		{Name: "monitor", Label: "Monitors", Icon: "🖥️"},
		{Name: "external-hard-drive", Label: "External Storage", Icon: "🗄️"},
		{Name: "headphones", Label: "Headphones", Icon: "🎧"},
		{Name: "keyboard", Label: "Keyboards", Icon: "⌨️"},
		{Name: "mouse", Label: "Mice", Icon: "🖱️"},
		{Name: "webcam", Label: "Webcams", Icon: "📷"},
		{Name: "case-accessory", Label: "Case Accessories", Icon: "🔧"},
		{Name: "fan-controller", Label: "Fan Controllers", Icon: "🎛️"},
		{Name: "os", Label: "Operating Systems", Icon: "💻"},
	}
}

// Catalog is an immutable ordered set of categories with keyed lookup
type Catalog struct {
	categories []Category
	positions  map[string]int
}

// New validates the categories and builds a catalog.
// The slice is copied; later changes to it do not affect the catalog.
func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalid)
	}

	c := &Catalog{
		categories: make([]Category, len(categories)),
		positions:  make(map[string]int, len(categories)),
	}
	copy(c.categories, categories)

	for i, cat := range c.categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrInvalid, i)
		}
		if cat.HitsPerPage < 0 {
			return nil, fmt.Errorf("%w: category %q has negative hits_per_page", ErrInvalid, cat.Name)
		}
		if _, dup := c.positions[cat.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalid, cat.Name)
		}
		if c.categories[i].Label == "" {
			c.categories[i].Label = cat.Name
		}
		c.positions[cat.Name] = i
	}

	return c, nil
}

// MustDefault returns the default catalog; it panics only if the
// built-in list is broken
func MustDefault() *Catalog {
	c, err := New(Default())
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns a copy of the categories in catalog order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of categories
func (c *Catalog) Len() int {
	return len(c.categories)
}

// At returns the category at position i
func (c *Catalog) At(i int) Category {
	return c.categories[i]
}

// Names returns the category names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Lookup finds a category by name
func (c *Catalog) Lookup(name string) (Category, bool) {
	i, ok := c.positions[name]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Position returns the catalog position of a category
func (c *Catalog) Position(name string) (int, bool) {
	i, ok := c.positions[name]
	return i, ok
}

// Limit returns the hit cap for a category, using fallback when the
// category has no cap of its own
func (c *Catalog) Limit(name string, fallback int) int {
	if cat, ok := c.Lookup(name); ok && cat.HitsPerPage > 0 {
		return cat.HitsPerPage
	}
	return fallback
}

// Subset builds a catalog with only the named categories, in the order given
func (c *Catalog) Subset(names []string) (*Catalog, error) {
	cats := make([]Category, 0, len(names))
	for _, name := range names {
		cat, ok := c.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, name)
		}
		cats = append(cats, cat)
	}
	return New(cats)
}
