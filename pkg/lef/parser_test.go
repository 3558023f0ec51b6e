package lef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLEF = `
# pad library excerpt
VERSION 5.8 ;
BUSBITCHARS "[]" ;
DIVIDERCHAR "/" ;

UNITS
  DATABASE MICRONS 1000 ;
END UNITS

MANUFACTURINGGRID 0.005 ;

LAYER metal1
  TYPE ROUTING ;
  DIRECTION HORIZONTAL ;
  WIDTH 0.23 ;
END metal1

SITE pad_site
  CLASS PAD ;
  SIZE 1 BY 200 ;
END pad_site

MACRO CORNER_CELL
  CLASS ENDCAP TOPLEFT ;
  FOREIGN CORNER_CELL 0 0 ;
  ORIGIN 0 0 ;
  SIZE 200 BY 200 ;
  SYMMETRY X Y R90 ;
  SITE corner_site ;
END CORNER_CELL

MACRO PAD_IN
  CLASS PAD INPUT ;
  FOREIGN PAD_IN_GDS ;
  ORIGIN 0 0 ;
  SIZE 80 BY 200 ;
  SYMMETRY X Y R90 ;
  PIN PAD
    DIRECTION INPUT ;
    USE SIGNAL ;
    PORT
      LAYER metal1 ;
        RECT 10 10 70 70 ;
    END
  END PAD
  PIN Y[0]
    DIRECTION OUTPUT ;
    PORT
      LAYER metal1 ;
        RECT 0.0 199.0 1.0 200.0 ;
    END
  END Y[0]
  OBS
    LAYER metal1 ;
      RECT 0 0 80 200 ;
  END
END PAD_IN

MACRO FILL10
  CLASS PAD SPACER ;
  SIZE 10 BY 200 ;
END FILL10

END LIBRARY
`

func TestParseSampleLEF(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	lef, err := parser.ParseString(sampleLEF)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if !lef.EndLibrary {
		t.Error("Expected END LIBRARY to be recognised")
	}
	if got := lef.Version(); got != "5.8" {
		t.Errorf("Expected version '5.8', got '%s'", got)
	}
	dbu, ok := lef.DatabaseUnits()
	if !ok || dbu != 1000 {
		t.Errorf("Expected database units 1000, got %d (ok=%v)", dbu, ok)
	}

	macros := lef.Macros()
	if len(macros) != 3 {
		t.Fatalf("Expected 3 macros, got %d", len(macros))
	}
	names := []string{"CORNER_CELL", "PAD_IN", "FILL10"}
	for i, m := range macros {
		if m.Name != names[i] {
			t.Errorf("macro %d: expected name '%s', got '%s'", i, names[i], m.Name)
		}
	}
}

func TestMacroInfo(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	lef, err := parser.ParseString(sampleLEF)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	macros := lef.Macros()

	corner := macros[0].Info()
	if corner.Class != "ENDCAP" || corner.SubClass != "TOPLEFT" {
		t.Errorf("corner class = %s/%s", corner.Class, corner.SubClass)
	}
	if corner.Width != 200 || corner.Height != 200 || !corner.HasSize {
		t.Errorf("corner size = %vx%v", corner.Width, corner.Height)
	}
	if corner.Site != "corner_site" {
		t.Errorf("corner site = %q", corner.Site)
	}
	if strings.Join(corner.Symmetry, " ") != "X Y R90" {
		t.Errorf("corner symmetry = %v", corner.Symmetry)
	}

	pad := macros[1].Info()
	if pad.Foreign != "PAD_IN_GDS" {
		t.Errorf("Expected foreign 'PAD_IN_GDS', got '%s'", pad.Foreign)
	}
	if pad.Width != 80 || pad.Height != 200 {
		t.Errorf("pad size = %vx%v", pad.Width, pad.Height)
	}
	if len(pad.Pins) != 2 || pad.Pins[0] != "PAD" || pad.Pins[1] != "Y[0]" {
		t.Errorf("pad pins = %v", pad.Pins)
	}
	if pad.IsSpacer() {
		t.Error("PAD_IN must not be a spacer")
	}

	fill := macros[2].Info()
	if !fill.IsSpacer() {
		t.Error("FILL10 should be a spacer")
	}
	if fill.Foreign != "FILL10" {
		t.Errorf("foreign name should default to macro name, got '%s'", fill.Foreign)
	}
}

func TestParseCaseInsensitiveKeywords(t *testing.T) {
	input := `
macro small
  class pad spacer ;
  size 1.5 by 120 ;
end small
`
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	lef, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	macros := lef.Macros()
	if len(macros) != 1 {
		t.Fatalf("Expected 1 macro, got %d", len(macros))
	}
	info := macros[0].Info()
	if info.Width != 1.5 || info.Height != 120 || !info.IsSpacer() {
		t.Errorf("unexpected info %+v", info)
	}
	if _, ok := lef.DatabaseUnits(); ok {
		t.Error("Expected no database units")
	}
}

func TestParseMismatchedEnd(t *testing.T) {
	input := `
MACRO A
  SIZE 1 BY 1 ;
END B
`
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	if _, err := parser.ParseString(input); err == nil {
		t.Fatal("Expected error for mismatched END")
	}
}

func TestParseSyntaxError(t *testing.T) {
	input := `
MACRO A
  SIZE 1 BY ;
END A
`
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	if _, err := parser.ParseString(input); err == nil {
		t.Fatal("Expected parse error for SIZE without height")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pads.lef")
	if err := os.WriteFile(path, []byte(sampleLEF), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	lef, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(lef.Macros()) != 3 {
		t.Errorf("Expected 3 macros, got %d", len(lef.Macros()))
	}
	if _, err := parser.ParseFile(filepath.Join(t.TempDir(), "missing.lef")); err == nil {
		t.Error("Expected error for missing file")
	}
}
