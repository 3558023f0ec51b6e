package layout

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/padring/pkg/geom"
)

// Axis is the running direction of an edge.
type Axis int

const (
	Horizontal Axis = iota // North and South edges run along x
	Vertical               // East and West edges run along y
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// CapacityError reports an edge whose fixed content is longer than the edge.
type CapacityError struct {
	Edge    Location
	Length  float64
	MinSize float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("layout: %s edge items need %g but the edge is only %g long", e.Edge, e.MinSize, e.Length)
}

// Edge is the ordered content of one die edge.
type Edge struct {
	location Location
	axis     Axis
	items    []Item
	first    *Item
	last     *Item
	length   float64
	fixed    float64

	// set after a cell is added so the next cell gets a flex space in front
	// of it; starts set so the first cell is preceded by one as well
	pendingCell bool
}

// NewEdge creates an empty edge for one of N, S, E or W.
func NewEdge(loc Location) *Edge {
	axis := Horizontal
	if loc == East || loc == West {
		axis = Vertical
	}
	return &Edge{location: loc, axis: axis, pendingCell: true}
}

// Location returns the die edge this layout belongs to.
func (e *Edge) Location() Location { return e.location }

// Axis returns the running direction of the edge.
func (e *Edge) Axis() Axis { return e.axis }

// Length returns the target length of the edge.
func (e *Edge) Length() float64 { return e.length }

// Fixed returns the perpendicular coordinate shared by all items.
func (e *Edge) Fixed() float64 { return e.fixed }

// SetLength sets the edge length and the fixed perpendicular coordinate.
func (e *Edge) SetLength(length, fixed float64) {
	e.length = length
	e.fixed = fixed
	if e.first != nil {
		e.setFixed(e.first)
	}
	if e.last != nil {
		e.setFixed(e.last)
	}
}

// AddItem appends an item. Two consecutive cells get a flex space inserted
// between them; an explicit space added by the caller suppresses that.
func (e *Edge) AddItem(item Item) {
	if e.pendingCell && item.Kind == KindCell {
		e.items = append(e.items, NewFlexSpace(e.location))
	}
	e.items = append(e.items, item)
	e.pendingCell = item.Kind == KindCell
}

// SetFirstCorner stores the corner projection at the start of the edge.
func (e *Edge) SetFirstCorner(item Item) {
	e.first = &item
	e.setFixed(e.first)
}

// SetLastCorner stores the corner projection at the end of the edge.
func (e *Edge) SetLastCorner(item Item) {
	e.last = &item
	e.setFixed(e.last)
}

// FirstCorner returns the corner at running position 0, or nil.
func (e *Edge) FirstCorner() *Item { return e.first }

// LastCorner returns the corner at the end of the edge, or nil.
func (e *Edge) LastCorner() *Item { return e.last }

// Items returns the edge items in running order. The slice is owned by the
// edge and must not be modified.
func (e *Edge) Items() []Item { return e.items }

// Gaps returns the resolved space items of the edge.
func (e *Edge) Gaps() []Item {
	var gaps []Item
	for _, it := range e.items {
		if it.IsSpace() {
			gaps = append(gaps, it)
		}
	}
	return gaps
}

// FlexTotal returns the summed size of all resolved flex spaces.
func (e *Edge) FlexTotal() float64 {
	total := 0.0
	for _, it := range e.items {
		if it.Kind == KindFlexSpace && it.Size > 0 {
			total += it.Size
		}
	}
	return total
}

// MinSize is the length taken by everything except flex spaces.
func (e *Edge) MinSize() float64 {
	total := 0.0
	for _, it := range e.items {
		if it.Kind != KindFlexSpace && it.Size >= 0 {
			total += it.Size
		}
	}
	if e.first != nil {
		total += e.first.Size
	}
	if e.last != nil {
		total += e.last.Size
	}
	return total
}

// Layout assigns final positions to every item and corner of the edge.
//
// Fixed items keep their size. The free length is spread evenly over the
// flex spaces; each flex boundary is snapped down to grid and the rounding
// error is carried into the next flex space, the last of which takes the
// exact remainder. The result is that the item sizes always add up to the
// edge length. Layout may be called again and gives the same result.
func (e *Edge) Layout(grid float64) error {
	if grid <= 0 {
		grid = 1
	}
	e.prepare()

	minSize := e.MinSize()
	if minSize > e.length && !geom.NearlyEqual(minSize, e.length) {
		return &CapacityError{Edge: e.location, Length: e.length, MinSize: minSize}
	}

	flexCount, lastFlex := 0, -1
	for i := range e.items {
		if e.items[i].Kind == KindFlexSpace {
			flexCount++
			lastFlex = i
		}
	}
	budget := max(e.length-minSize, 0)
	mean := budget / float64(flexCount)

	pos := 0.0
	if e.first != nil {
		e.setRunning(e.first, 0)
		pos += e.first.Size
	}

	carry, allocated := 0.0, 0.0
	for i := range e.items {
		it := &e.items[i]
		e.setRunning(it, pos)
		e.setFixed(it)
		if it.Kind != KindFlexSpace {
			pos += it.Size
			continue
		}
		var size float64
		if i == lastFlex {
			size = budget - allocated
		} else {
			// the epsilon keeps 3.9999999 from snapping down to 3
			next := math.Floor((pos+mean+carry)/grid+geom.Epsilon) * grid
			size = max(next-pos, 0)
			size = min(size, budget-allocated)
		}
		it.Size = size
		allocated += size
		carry += mean - size
		pos += size
	}

	if e.last != nil {
		e.setRunning(e.last, e.length-e.last.Size)
	}
	return nil
}

// prepare resets everything a previous pass computed and makes sure the
// edge has a flex space to absorb the free length.
func (e *Edge) prepare() {
	for i := range e.items {
		it := &e.items[i]
		if it.Kind == KindFlexSpace {
			it.Size = Unresolved
		}
		it.X, it.Y = Unresolved, Unresolved
	}

	hasFlex := false
	for _, it := range e.items {
		if it.Kind == KindFlexSpace {
			hasFlex = true
			break
		}
	}
	if len(e.items) == 0 || e.items[len(e.items)-1].Kind == KindCell || !hasFlex {
		e.items = append(e.items, NewFlexSpace(e.location))
		e.pendingCell = false
	}
}

func (e *Edge) setRunning(it *Item, pos float64) {
	if e.axis == Horizontal {
		it.X = pos
	} else {
		it.Y = pos
	}
}

func (e *Edge) setFixed(it *Item) {
	if e.axis == Horizontal {
		it.Y = e.fixed
	} else {
		it.X = e.fixed
	}
}
