package geom

import "fmt"

// Orientation is a placement transform made of an optional mirror about the
// x axis followed by a counter-clockwise rotation in quarter turns. This is the
// order GDSII applies STRANS and ANGLE in.
type Orientation struct {
	Angle  int  // 0, 90, 180 or 270 degrees
	Mirror bool // reflect about the x axis before rotating
}

// The eight DEF orientations.
var (
	North        = Orientation{Angle: 0}
	West         = Orientation{Angle: 90}
	South        = Orientation{Angle: 180}
	East         = Orientation{Angle: 270}
	FlippedSouth = Orientation{Angle: 0, Mirror: true}
	FlippedWest  = Orientation{Angle: 90, Mirror: true}
	FlippedNorth = Orientation{Angle: 180, Mirror: true}
	FlippedEast  = Orientation{Angle: 270, Mirror: true}
)

var orientNames = map[Orientation]string{
	North:        "N",
	West:         "W",
	South:        "S",
	East:         "E",
	FlippedSouth: "FS",
	FlippedWest:  "FW",
	FlippedNorth: "FN",
	FlippedEast:  "FE",
}

// String returns the DEF name of the orientation.
func (o Orientation) String() string {
	if name, ok := orientNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Orientation(%d,%t)", o.Angle, o.Mirror)
}

// Apply transforms a point from the cell frame into the placed frame, without
// translation.
func (o Orientation) Apply(p Position) Position {
	x, y := p.X, p.Y
	if o.Mirror {
		y = -y
	}
	switch o.Angle {
	case 90:
		x, y = -y, x
	case 180:
		x, y = -x, -y
	case 270:
		x, y = y, -x
	}
	return Position{X: x, Y: y}
}

// Bounds returns the bounding box of a cell of the given size after the
// orientation is applied with the cell origin at (0, 0).
func (o Orientation) Bounds(s Size) BoundingBox {
	bb := NewBoundingBox()
	for _, p := range []Position{{0, 0}, {0, s.Height}, {s.Width, s.Height}, {s.Width, 0}} {
		bb.Expand(o.Apply(p))
	}
	return bb
}

// Extent returns the size of the oriented bounding box.
func (o Orientation) Extent(s Size) Size {
	if o.Angle == 90 || o.Angle == 270 {
		return Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// Origin returns where the cell origin has to be placed so that the oriented
// bounding box has its lower-left corner at ll.
func (o Orientation) Origin(ll Position, s Size) Position {
	bb := o.Bounds(s)
	return Position{X: ll.X - bb.Min.X, Y: ll.Y - bb.Min.Y}
}
