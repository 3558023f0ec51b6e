// Package geom provides the small set of planar geometry types shared by the
// pad ring engine and its encoders. All coordinates are in microns with the
// origin at the lower-left corner of the die.
package geom

// Position represents a 2D coordinate in die space.
type Position struct {
	X float64
	Y float64
}

// Add returns p translated by o.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Size represents the footprint of a cell as declared in its library.
type Size struct {
	Width  float64 // extent along x in the cell's own frame
	Height float64 // extent along y in the cell's own frame
}

// IsSquare reports whether width and height match within tolerance.
func (s Size) IsSquare() bool {
	return NearlyEqual(s.Width, s.Height)
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position // lower-left corner
	Max Position // upper-right corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e18, Y: 1e18},
		Max: Position{X: -1e18, Y: -1e18},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	bb.Min.X = min(bb.Min.X, pos.X)
	bb.Min.Y = min(bb.Min.Y, pos.Y)
	bb.Max.X = max(bb.Max.X, pos.X)
	bb.Max.Y = max(bb.Max.Y, pos.Y)
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// Epsilon is the tolerance used when comparing lengths in microns.
const Epsilon = 1e-9

// NearlyEqual compares two lengths using Epsilon scaled to their magnitude.
func NearlyEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	scale := max(1.0, abs(a), abs(b))
	return d <= Epsilon*scale
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
