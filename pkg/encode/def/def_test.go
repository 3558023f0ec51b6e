package def

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

func sampleDesign() *encode.Design {
	return &encode.Design{
		Name: "chip",
		Die:  geom.Size{Width: 1000, Height: 800.5},
		Placements: []encode.Placement{
			{
				Instance:    "c_nw",
				CellName:    "CORNER",
				Kind:        layout.KindCorner,
				Orientation: geom.East,
				LowerLeft:   geom.Position{X: 0, Y: 780.5},
			},
			{
				Instance:    "u_io",
				CellName:    "PAD_IN",
				Kind:        layout.KindCell,
				Orientation: geom.FlippedSouth,
				LowerLeft:   geom.Position{X: 472.25, Y: 720.5},
			},
			{
				CellName:    "FILL1",
				Kind:        layout.KindFiller,
				Orientation: geom.North,
				LowerLeft:   geom.Position{X: 20, Y: 0},
			},
		},
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleDesign(), WithDatabaseUnits(1000), WithLogger(log.New(&bytes.Buffer{}))); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := `VERSION 5.8 ;
DESIGN chip ;
UNITS DISTANCE MICRONS 1000 ;
DIEAREA ( 0 0 ) ( 1000000 800500 ) ;
COMPONENTS 3 ;
  - c_nw CORNER
    + PLACED ( 0 780500 ) E ;
  - u_io PAD_IN
    + PLACED ( 472250 720500 ) FS ;
  - FILLER_3 FILL1
    + PLACED ( 20000 0 ) N ;
END COMPONENTS
END DESIGN
`
	if got := buf.String(); got != want {
		t.Errorf("Encode output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDefaultUnitsWarns(t *testing.T) {
	var logs, buf bytes.Buffer
	if err := Encode(&buf, sampleDesign(), WithLogger(log.New(&logs))); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "UNITS DISTANCE MICRONS 100 ;") {
		t.Errorf("expected default units in output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "PLACED ( 47225 72050 ) FS ;") {
		t.Errorf("expected coordinates scaled by 100:\n%s", buf.String())
	}
	if !strings.Contains(logs.String(), "database units not set") {
		t.Errorf("expected a warning, got %q", logs.String())
	}
}

func TestEncodeOverflow(t *testing.T) {
	d := &encode.Design{Name: "x", Die: geom.Size{Width: 1e300, Height: 1}}
	if err := Encode(&bytes.Buffer{}, d, WithDatabaseUnits(1000)); err == nil {
		t.Fatal("expected an error for a die outside int64 range")
	}
}
