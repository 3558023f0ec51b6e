package config

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/padring/pkg/layout"
)

// Event is one decoded statement of a pad ring description. The concrete
// types are Area, Grid, Pad, Corner, Space, Offset, Filler and Design.
type Event interface {
	Position() lexer.Position
	isEvent()
}

// Area declares the die size.
type Area struct {
	Pos    lexer.Position
	Width  float64
	Height float64
}

// Grid declares the placement grid.
type Grid struct {
	Pos   lexer.Position
	Value float64
}

// Pad places a cell on a die edge.
type Pad struct {
	Pos      lexer.Position
	Instance string
	Location layout.Location
	Cell     string
	Flipped  bool
}

// Corner places a cell on a die corner.
type Corner struct {
	Pos      lexer.Position
	Instance string
	Location layout.Location
	Cell     string
}

// Space inserts a fixed gap after the last placed pad.
type Space struct {
	Pos   lexer.Position
	Width float64
}

// Offset is accepted for compatibility and has no effect.
type Offset struct {
	Pos   lexer.Position
	Width float64
}

// Filler sets the name prefix that selects filler cells.
type Filler struct {
	Pos    lexer.Position
	Prefix string
}

// Design sets the design name used by the encoders.
type Design struct {
	Pos  lexer.Position
	Name string
}

func (e *Area) Position() lexer.Position   { return e.Pos }
func (e *Grid) Position() lexer.Position   { return e.Pos }
func (e *Pad) Position() lexer.Position    { return e.Pos }
func (e *Corner) Position() lexer.Position { return e.Pos }
func (e *Space) Position() lexer.Position  { return e.Pos }
func (e *Offset) Position() lexer.Position { return e.Pos }
func (e *Filler) Position() lexer.Position { return e.Pos }
func (e *Design) Position() lexer.Position { return e.Pos }

func (*Area) isEvent()   {}
func (*Grid) isEvent()   {}
func (*Pad) isEvent()    {}
func (*Corner) isEvent() {}
func (*Space) isEvent()  {}
func (*Offset) isEvent() {}
func (*Filler) isEvent() {}
func (*Design) isEvent() {}

func (e *Area) String() string   { return fmt.Sprintf("AREA %g %g", e.Width, e.Height) }
func (e *Grid) String() string   { return fmt.Sprintf("GRID %g", e.Value) }
func (e *Corner) String() string { return fmt.Sprintf("CORNER %s %s %s", e.Instance, e.Location, e.Cell) }
func (e *Space) String() string  { return fmt.Sprintf("SPACE %g", e.Width) }
func (e *Offset) String() string { return fmt.Sprintf("OFFSET %g", e.Width) }
func (e *Filler) String() string { return fmt.Sprintf("FILLER %s", e.Prefix) }
func (e *Design) String() string { return fmt.Sprintf("DESIGN %s", e.Name) }

func (e *Pad) String() string {
	if e.Flipped {
		return fmt.Sprintf("PAD %s %s FLIP %s", e.Instance, e.Location, e.Cell)
	}
	return fmt.Sprintf("PAD %s %s %s", e.Instance, e.Location, e.Cell)
}

func (s *statement) event() (Event, error) {
	switch {
	case s.Area != nil:
		return &Area{Pos: s.Pos, Width: s.Area.Width, Height: s.Area.Height}, nil
	case s.Grid != nil:
		return &Grid{Pos: s.Pos, Value: s.Grid.Value}, nil
	case s.Pad != nil:
		loc, err := layout.ParseLocation(s.Pad.Location)
		if err != nil {
			return nil, err
		}
		return &Pad{Pos: s.Pos, Instance: s.Pad.Instance, Location: loc, Cell: s.Pad.Cell, Flipped: s.Pad.Flip}, nil
	case s.Corner != nil:
		loc, err := layout.ParseLocation(s.Corner.Location)
		if err != nil {
			return nil, err
		}
		return &Corner{Pos: s.Pos, Instance: s.Corner.Instance, Location: loc, Cell: s.Corner.Cell}, nil
	case s.Space != nil:
		return &Space{Pos: s.Pos, Width: s.Space.Width}, nil
	case s.Offset != nil:
		return &Offset{Pos: s.Pos, Width: s.Offset.Width}, nil
	case s.Filler != nil:
		return &Filler{Pos: s.Pos, Prefix: s.Filler.Prefix}, nil
	case s.Design != nil:
		return &Design{Pos: s.Pos, Name: s.Design.Name}, nil
	}
	return nil, fmt.Errorf("empty statement")
}
