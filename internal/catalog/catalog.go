// Package catalog holds the immutable furniture registry used by the planners.
package catalog

import (
	"fmt"
	"math"

	"github.com/piwi3910/furnish/internal/model"
)

// Catalog maps furniture ids to their placement specs.
// It is read-only after New returns and safe to share between goroutines.
type Catalog struct {
	order []string
	specs map[string]model.FurnitureSpec
}

// New validates every entry and builds a catalog that preserves insertion order.
// A single malformed entry fails the whole catalog with an error wrapping
// model.ErrInvalidCatalog.
func New(specs ...model.FurnitureSpec) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]model.FurnitureSpec, len(specs)),
	}
	for i, s := range specs {
		if s.Orientation == "" {
			s.Orientation = model.OrientationFixed
		}
		if err := validate(s); err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, s.ID, err)
		}
		if _, dup := c.specs[s.ID]; dup {
			return nil, fmt.Errorf("entry %d (%q): %w: duplicate id", i, s.ID, model.ErrInvalidCatalog)
		}
		c.order = append(c.order, s.ID)
		c.specs[s.ID] = s
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(specs ...model.FurnitureSpec) *Catalog {
	c, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(s model.FurnitureSpec) error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", model.ErrInvalidCatalog)
	}
	fp := s.Footprint
	if !positive(fp.Width) || !positive(fp.Depth) || !positive(fp.Height) {
		return fmt.Errorf("%w: footprint must be positive, got %gx%gx%g",
			model.ErrInvalidCatalog, fp.Width, fp.Depth, fp.Height)
	}
	if !positive(s.Scale) {
		return fmt.Errorf("%w: scale must be positive, got %g", model.ErrInvalidCatalog, s.Scale)
	}
	if s.WallDistance < 0 || !finite(s.WallDistance) {
		return fmt.Errorf("%w: wall distance must be finite and not negative, got %g", model.ErrInvalidCatalog, s.WallDistance)
	}
	if !finite(s.HeightOffset) {
		return fmt.Errorf("%w: height offset must be finite, got %g", model.ErrInvalidCatalog, s.HeightOffset)
	}
	r := s.BaseRotation
	if !finite(r.X) || !finite(r.Y) || !finite(r.Z) {
		return fmt.Errorf("%w: base rotation must be finite, got (%g, %g, %g)", model.ErrInvalidCatalog, r.X, r.Y, r.Z)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", model.ErrInvalidCatalog, s.Category)
	}
	if !s.Zone.Valid() {
		return fmt.Errorf("%w: unknown zone %q", model.ErrInvalidCatalog, s.Zone)
	}
	if !s.Orientation.Valid() {
		return fmt.Errorf("%w: unknown orientation %q", model.ErrInvalidCatalog, s.Orientation)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Lookup returns the spec for id.
func (c *Catalog) Lookup(id string) (model.FurnitureSpec, bool) {
	s, ok := c.specs[id]
	return s, ok
}

// ListAll returns every id in insertion order.
func (c *Catalog) ListAll() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Specs returns every spec in insertion order.
func (c *Catalog) Specs() []model.FurnitureSpec {
	out := make([]model.FurnitureSpec, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.specs[id])
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Essential returns the ids flagged essential, in insertion order.
func (c *Catalog) Essential() []string {
	var out []string
	for _, id := range c.order {
		if c.specs[id].Essential {
			out = append(out, id)
		}
	}
	return out
}
