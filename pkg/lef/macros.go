package lef

import (
	"fmt"
	"strconv"
	"strings"
)

// MacroInfo holds the physical data of a macro that matters for placement.
type MacroInfo struct {
	Name     string
	Foreign  string  // GDS structure name, defaults to Name
	Class    string  // e.g. PAD, CORE, ENDCAP
	SubClass string  // e.g. INOUT, SPACER, TOPLEFT
	Width    float64 // SIZE width in microns
	Height   float64 // SIZE height in microns
	OriginX  float64
	OriginY  float64
	Symmetry []string
	Site     string
	Pins     []string
	HasSize  bool
}

// IsSpacer reports whether the macro is declared as a spacer/filler cell.
func (mi *MacroInfo) IsSpacer() bool {
	return strings.EqualFold(mi.SubClass, "SPACER") || strings.EqualFold(mi.Class, "SPACER")
}

// Macros returns every MACRO of the file in declaration order.
func (f *File) Macros() []*Macro {
	var macros []*Macro
	for _, stmt := range f.Statements {
		if stmt.Macro != nil {
			macros = append(macros, stmt.Macro)
		}
	}
	return macros
}

// DatabaseUnits returns the DATABASE MICRONS value of the UNITS block.
func (f *File) DatabaseUnits() (int, bool) {
	for _, stmt := range f.Statements {
		if stmt.Units == nil {
			continue
		}
		for _, s := range stmt.Units.Statements {
			if !strings.EqualFold(s.Keyword, "DATABASE") || len(s.Args) < 2 {
				continue
			}
			if !strings.EqualFold(s.Args[0], "MICRONS") {
				continue
			}
			v, err := strconv.ParseFloat(s.Args[1], 64)
			if err != nil || v <= 0 {
				return 0, false
			}
			return int(v), true
		}
	}
	return 0, false
}

// Version returns the VERSION statement argument, if any.
func (f *File) Version() string {
	for _, stmt := range f.Statements {
		if stmt.Simple != nil && strings.EqualFold(stmt.Simple.Keyword, "VERSION") && len(stmt.Simple.Args) > 0 {
			return stmt.Simple.Args[0]
		}
	}
	return ""
}

// Validate checks that every named block is closed with its own name.
func (f *File) Validate() error {
	for _, stmt := range f.Statements {
		switch {
		case stmt.Macro != nil:
			m := stmt.Macro
			if m.End != m.Name {
				return fmt.Errorf("%s: macro %s closed by END %s", m.Pos, m.Name, m.End)
			}
			for _, item := range m.Items {
				if p := item.Pin; p != nil && p.End != p.Name {
					return fmt.Errorf("%s: pin %s of macro %s closed by END %s", p.Pos, p.Name, m.Name, p.End)
				}
			}
		case stmt.Block != nil:
			b := stmt.Block
			if b.End != b.Name {
				return fmt.Errorf("%s: %s %s closed by END %s", b.Pos, b.Kind, b.Name, b.End)
			}
		}
	}
	return nil
}

// Info collects the placement-relevant statements of the macro.
func (m *Macro) Info() *MacroInfo {
	info := &MacroInfo{Name: m.Name, Foreign: m.Name}
	for _, item := range m.Items {
		switch {
		case item.Class != nil:
			if len(item.Class.Kinds) > 0 {
				info.Class = strings.ToUpper(item.Class.Kinds[0])
			}
			if len(item.Class.Kinds) > 1 {
				info.SubClass = strings.ToUpper(item.Class.Kinds[1])
			}
		case item.Foreign != nil:
			info.Foreign = item.Foreign.Name
		case item.Origin != nil:
			info.OriginX = item.Origin.Point.X
			info.OriginY = item.Origin.Point.Y
		case item.Size != nil:
			info.Width = item.Size.Width
			info.Height = item.Size.Height
			info.HasSize = true
		case item.Symmetry != nil:
			info.Symmetry = append(info.Symmetry, item.Symmetry.Axes...)
		case item.Site != nil:
			info.Site = item.Site.Name
		case item.Pin != nil:
			info.Pins = append(info.Pins, item.Pin.Name)
		}
	}
	return info
}
