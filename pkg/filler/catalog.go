// Package filler keeps the catalog of spacer cells used to close the gaps a
// pad ring leaves between its pads.
package filler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/library"
)

// Entry is one filler cell of the catalog.
type Entry struct {
	Name  string
	Width float64
}

// UncoverableError reports a gap the catalog cannot tile exactly.
type UncoverableError struct {
	Width     float64 // width of the whole gap
	Remaining float64 // width left when no entry fitted
	Smallest  float64 // smallest catalog width, 0 when the catalog is empty
}

func (e *UncoverableError) Error() string {
	if e.Smallest == 0 {
		return fmt.Sprintf("filler: cannot fill %g of %g: catalog is empty", e.Remaining, e.Width)
	}
	return fmt.Sprintf("filler: cannot fill %g of %g: smallest filler is %g", e.Remaining, e.Width, e.Smallest)
}

// Catalog is a set of filler cells, queried largest first.
type Catalog struct {
	entries []Entry
	sorted  bool
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add inserts a filler cell.
func (c *Catalog) Add(name string, width float64) {
	c.entries = append(c.entries, Entry{Name: name, Width: width})
	c.sorted = false
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the catalog sorted by descending width. Entries of equal
// width keep the order they were added in.
func (c *Catalog) Entries() []Entry {
	c.sort()
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) sort() {
	if c.sorted {
		return
	}
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].Width > c.entries[j].Width
	})
	c.sorted = true
}

// Fit returns the widest entry that is not wider than maxWidth.
func (c *Catalog) Fit(maxWidth float64) (Entry, bool) {
	c.sort()
	for _, e := range c.entries {
		if e.Width <= maxWidth || geom.NearlyEqual(e.Width, maxWidth) {
			return e, true
		}
	}
	return Entry{}, false
}

// SmallestWidth returns the width of the narrowest entry.
func (c *Catalog) SmallestWidth() (float64, bool) {
	if len(c.entries) == 0 {
		return 0, false
	}
	c.sort()
	return c.entries[len(c.entries)-1].Width, true
}

// Tile covers width with catalog entries, greedily taking the widest entry
// that still fits. Zero-width entries are never used.
func (c *Catalog) Tile(width float64) ([]Entry, error) {
	var tiles []Entry
	remaining := width
	for remaining > 0 && !geom.NearlyEqual(remaining, 0) {
		e, ok := c.Fit(remaining)
		if !ok || e.Width <= 0 {
			smallest, _ := c.SmallestWidth()
			return tiles, &UncoverableError{Width: width, Remaining: remaining, Smallest: smallest}
		}
		tiles = append(tiles, e)
		remaining -= e.Width
	}
	return tiles, nil
}

// CellLister is the part of a library FromLibrary needs.
type CellLister interface {
	Cells() []*library.Cell
}

// FromLibrary builds a catalog from a library. With an empty prefix every
// cell flagged as a filler is taken, otherwise every cell whose name starts
// with prefix.
func FromLibrary(lib CellLister, prefix string) *Catalog {
	c := NewCatalog()
	for _, cell := range lib.Cells() {
		match := cell.IsFiller
		if prefix != "" {
			match = strings.HasPrefix(cell.Name, prefix)
		}
		if match && cell.Size.Width > 0 {
			c.Add(cell.Name, cell.Size.Width)
		}
	}
	return c
}
