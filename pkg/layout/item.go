// Package layout places the items of one die edge. An Edge holds cells,
// explicit spaces and automatically inserted flexible spaces between an
// optional pair of corner cells, and distributes the free length of the edge
// over the flexible spaces, snapped to a placement grid.
package layout

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/padring/pkg/library"
)

// Unresolved marks a size or coordinate that the layout pass has not
// assigned yet.
const Unresolved = -1.0

// Kind identifies what a placement item stands for.
type Kind int

const (
	KindCell Kind = iota
	KindCorner
	KindFixedSpace
	KindFlexSpace
	KindFiller
)

var kindNames = map[Kind]string{
	KindCell:       "Cell",
	KindCorner:     "Corner",
	KindFixedSpace: "FixedSpace",
	KindFlexSpace:  "FlexSpace",
	KindFiller:     "Filler",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Location is a die edge or a die corner.
type Location int

const (
	North Location = iota
	South
	East
	West
	NorthWest
	NorthEast
	SouthWest
	SouthEast
)

var locationNames = map[Location]string{
	North:     "N",
	South:     "S",
	East:      "E",
	West:      "W",
	NorthWest: "NW",
	NorthEast: "NE",
	SouthWest: "SW",
	SouthEast: "SE",
}

func (l Location) String() string {
	if name, ok := locationNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Location(%d)", l)
}

// IsCorner reports whether l is one of the four die corners.
func (l Location) IsCorner() bool {
	return l >= NorthWest && l <= SouthEast
}

// ParseLocation converts N/S/E/W/NW/NE/SW/SE (any case) to a Location.
func ParseLocation(s string) (Location, error) {
	want := strings.ToUpper(s)
	for loc, name := range locationNames {
		if name == want {
			return loc, nil
		}
	}
	return 0, fmt.Errorf("layout: invalid location %q", s)
}

// Item is one physical object or gap along an edge.
//
// Spaces never reference a cell; cells, corners and fillers always do.
type Item struct {
	Kind     Kind
	Instance string
	CellName string
	Location Location
	Size     float64 // length along the edge's running axis
	X        float64
	Y        float64
	Flipped  bool
	Cell     *library.Cell
}

// NewCell returns a pad cell item sized by the cell width.
func NewCell(instance string, loc Location, cell *library.Cell, flipped bool) Item {
	return Item{
		Kind:     KindCell,
		Instance: instance,
		CellName: cell.Name,
		Location: loc,
		Size:     cell.Size.Width,
		X:        Unresolved,
		Y:        Unresolved,
		Flipped:  flipped,
		Cell:     cell,
	}
}

// NewCorner returns one edge projection of a corner cell. The caller picks
// which cell dimension lies along the edge.
func NewCorner(instance string, loc Location, cell *library.Cell, size float64) Item {
	return Item{
		Kind:     KindCorner,
		Instance: instance,
		CellName: cell.Name,
		Location: loc,
		Size:     size,
		X:        Unresolved,
		Y:        Unresolved,
		Cell:     cell,
	}
}

// NewFixedSpace returns an explicit gap of the given width.
func NewFixedSpace(loc Location, size float64) Item {
	return Item{Kind: KindFixedSpace, Location: loc, Size: size, X: Unresolved, Y: Unresolved}
}

// NewFlexSpace returns a gap whose size is computed by Layout.
func NewFlexSpace(loc Location) Item {
	return Item{Kind: KindFlexSpace, Location: loc, Size: Unresolved, X: Unresolved, Y: Unresolved}
}

// NewFiller returns a placed filler cell.
func NewFiller(instance string, loc Location, cell *library.Cell, x, y float64) Item {
	return Item{
		Kind:     KindFiller,
		Instance: instance,
		CellName: cell.Name,
		Location: loc,
		Size:     cell.Size.Width,
		X:        x,
		Y:        y,
		Cell:     cell,
	}
}

// IsSpace reports whether the item is a gap to be tiled with fillers.
func (it Item) IsSpace() bool {
	return it.Kind == KindFixedSpace || it.Kind == KindFlexSpace
}

// Resolved reports whether the layout pass has positioned the item.
func (it Item) Resolved() bool {
	return it.Size >= 0 && it.X != Unresolved && it.Y != Unresolved
}

func (it Item) String() string {
	if it.IsSpace() {
		return fmt.Sprintf("%s(%s %.4g @ %.4g,%.4g)", it.Kind, it.Location, it.Size, it.X, it.Y)
	}
	return fmt.Sprintf("%s(%s %s %s %.4g @ %.4g,%.4g)", it.Kind, it.Instance, it.CellName, it.Location, it.Size, it.X, it.Y)
}
