package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/padring/pkg/layout"
)

const sampleConfig = `
# test ring
DESIGN chip_top ;
AREA 1000 800.5 ;
GRID 0.5 ;

CORNER c_nw NW CORNER_CELL ;
CORNER c_ne NE CORNER_CELL ;
CORNER c_sw SW CORNER_CELL ;
CORNER c_se SE CORNER_CELL ;

PAD clk N PAD_IN ;
PAD io[3] S FLIP PAD_IO ;   # bus bit
SPACE 20 ;
PAD u_pads/vdd! E "PAD VDD" ;
OFFSET 5 ;
FILLER FILL ;
`

func TestParseEvents(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	events, err := parser.ParseString(sampleConfig)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(events) != 13 {
		t.Fatalf("Expected 13 events, got %d", len(events))
	}

	if d, ok := events[0].(*Design); !ok || d.Name != "chip_top" {
		t.Errorf("event 0 = %v", events[0])
	}
	area, ok := events[1].(*Area)
	if !ok || area.Width != 1000 || area.Height != 800.5 {
		t.Fatalf("event 1 = %v", events[1])
	}
	if area.Position().Line != 4 {
		t.Errorf("AREA on line %d, want 4", area.Position().Line)
	}
	if g, ok := events[2].(*Grid); !ok || g.Value != 0.5 {
		t.Errorf("event 2 = %v", events[2])
	}

	wantCorners := []layout.Location{layout.NorthWest, layout.NorthEast, layout.SouthWest, layout.SouthEast}
	for i, loc := range wantCorners {
		c, ok := events[3+i].(*Corner)
		if !ok || c.Location != loc || c.Cell != "CORNER_CELL" {
			t.Errorf("event %d = %v, want corner at %s", 3+i, events[3+i], loc)
		}
	}

	pad, ok := events[7].(*Pad)
	if !ok || pad.Instance != "clk" || pad.Location != layout.North || pad.Flipped {
		t.Errorf("event 7 = %v", events[7])
	}
	flipped, ok := events[8].(*Pad)
	if !ok || flipped.Instance != "io[3]" || flipped.Location != layout.South || !flipped.Flipped || flipped.Cell != "PAD_IO" {
		t.Errorf("event 8 = %v", events[8])
	}
	if s, ok := events[9].(*Space); !ok || s.Width != 20 {
		t.Errorf("event 9 = %v", events[9])
	}
	quoted, ok := events[10].(*Pad)
	if !ok || quoted.Instance != "u_pads/vdd!" || quoted.Cell != "PAD VDD" || quoted.Location != layout.East {
		t.Errorf("event 10 = %v", events[10])
	}
	if o, ok := events[11].(*Offset); !ok || o.Width != 5 {
		t.Errorf("event 11 = %v", events[11])
	}
	if f, ok := events[12].(*Filler); !ok || f.Prefix != "FILL" {
		t.Errorf("event 12 = %v", events[12])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"bad pad location", "AREA 10 10 ;\nPAD p1 NW CELL ;\n", "2:"},
		{"bad corner location", "CORNER c1 N CELL ;\n", "1:"},
		{"unknown statement", "AREA 10 10 ;\n\nROTATE 90 ;\n", "3:"},
		{"missing semicolon", "GRID 1\nAREA 10 10 ;\n", "2:"},
		{"missing cell", "PAD p1 N ;\n", "1:"},
		{"area needs two numbers", "AREA 10 ;\n", "1:"},
	}

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseString(tt.input)
			if err == nil {
				t.Fatal("Expected parse error")
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not name line %s", err, tt.line)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	events, err := parser.ParseString("# nothing here\n")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ring.cfg")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	events, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(events) != 13 {
		t.Errorf("Expected 13 events, got %d", len(events))
	}
	if pos := events[0].Position(); pos.Filename != path {
		t.Errorf("position filename = %q, want %q", pos.Filename, path)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Error("Expected error for missing file")
	}
}
