// Package encode turns laid out ring items into placed cell instances with a
// lower-left corner and a DEF style orientation. The format writers in the
// gds, def and svg subpackages all work from the resulting Design.
package encode

import (
	"fmt"

	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
	"github.com/OpenTraceLab/padring/pkg/library"
)

// Placement is one cell instance ready to be written out.
type Placement struct {
	Instance    string
	CellName    string
	Foreign     string // structure name for GDS
	Kind        layout.Kind
	Location    layout.Location
	Flipped     bool
	Orientation geom.Orientation
	LowerLeft   geom.Position // lower-left of the placed bounding box
	Extent      geom.Size     // size of the placed bounding box
	Origin      geom.Position // where the cell's own (0, 0) ends up
	Cell        *library.Cell
}

// Design is a complete ring ready for the writers.
type Design struct {
	Name       string
	Die        geom.Size
	Placements []Placement
}

// OrientationFor returns the orientation of a cell at loc. Pads face the
// die centre; flipped pads are additionally mirrored along the edge.
func OrientationFor(loc layout.Location, flipped bool) geom.Orientation {
	switch loc {
	case layout.North:
		if flipped {
			return geom.FlippedSouth
		}
		return geom.South
	case layout.South:
		if flipped {
			return geom.FlippedNorth
		}
		return geom.North
	case layout.East:
		if flipped {
			return geom.FlippedEast
		}
		return geom.West
	case layout.West:
		if flipped {
			return geom.FlippedWest
		}
		return geom.East
	case layout.NorthWest:
		return geom.East
	case layout.NorthEast:
		return geom.South
	case layout.SouthEast:
		return geom.West
	}
	return geom.North
}

// Resolve converts a positioned item into a placement. Item coordinates are
// the running position along the edge and the edge's die coordinate, so the
// top and right edges are shifted inwards by the placed cell extent.
func Resolve(it layout.Item) (Placement, error) {
	if it.Cell == nil {
		return Placement{}, fmt.Errorf("encode: %s %s has no cell", it.Kind, it.Instance)
	}
	if it.X == layout.Unresolved || it.Y == layout.Unresolved {
		return Placement{}, fmt.Errorf("encode: %s %s is not placed", it.Kind, it.Instance)
	}

	orient := OrientationFor(it.Location, it.Flipped)
	extent := orient.Extent(it.Cell.Size)
	ll := geom.Position{X: it.X, Y: it.Y}
	switch it.Location {
	case layout.North, layout.NorthWest, layout.NorthEast:
		ll.Y -= extent.Height
	case layout.East:
		ll.X -= extent.Width
	}

	foreign := it.Cell.Foreign
	if foreign == "" {
		foreign = it.Cell.Name
	}
	return Placement{
		Instance:    it.Instance,
		CellName:    it.CellName,
		Foreign:     foreign,
		Kind:        it.Kind,
		Location:    it.Location,
		Flipped:     it.Flipped,
		Orientation: orient,
		LowerLeft:   ll,
		Extent:      extent,
		Origin:      orient.Origin(ll, it.Cell.Size),
		Cell:        it.Cell,
	}, nil
}

// NewDesign resolves every item. Spaces must not be passed in.
func NewDesign(name string, die geom.Size, items []layout.Item) (*Design, error) {
	d := &Design{Name: name, Die: die, Placements: make([]Placement, 0, len(items))}
	for _, it := range items {
		p, err := Resolve(it)
		if err != nil {
			return nil, err
		}
		d.Placements = append(d.Placements, p)
	}
	return d, nil
}

// Bounds returns the box covering the die and every placement.
func (d *Design) Bounds() geom.BoundingBox {
	bb := geom.NewBoundingBox()
	bb.Expand(geom.Position{})
	bb.Expand(geom.Position{X: d.Die.Width, Y: d.Die.Height})
	for _, p := range d.Placements {
		bb.Expand(p.LowerLeft)
		bb.Expand(p.LowerLeft.Add(geom.Position{X: p.Extent.Width, Y: p.Extent.Height}))
	}
	return bb
}
