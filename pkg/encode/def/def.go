// Package def writes a pad ring as a DEF COMPONENTS section.
package def

import (
	"bufio"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/charmbracelet/log"

	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

// DefaultDatabaseUnits is used when the library did not declare
// DATABASE MICRONS.
const DefaultDatabaseUnits = 100

const version = "5.8"

type options struct {
	dbu    int
	logger *log.Logger
}

// Option configures the writer.
type Option func(*options)

// WithDatabaseUnits sets the number of database units per micron.
// Zero or negative values fall back to DefaultDatabaseUnits.
func WithDatabaseUnits(dbu int) Option {
	return func(o *options) { o.dbu = dbu }
}

// WithLogger sets the logger used for warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Encode writes the design as DEF. Placements are written in order; each
// PLACED coordinate is the lower-left corner of the placed cell.
func Encode(w io.Writer, d *encode.Design, opts ...Option) error {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.dbu <= 0 {
		o.logger.Warn("database units not set, does the LEF declare them?", "assuming", DefaultDatabaseUnits)
		o.dbu = DefaultDatabaseUnits
	}

	dieW, err := toDBU(d.Die.Width, o.dbu)
	if err != nil {
		return fmt.Errorf("def: die width: %w", err)
	}
	dieH, err := toDBU(d.Die.Height, o.dbu)
	if err != nil {
		return fmt.Errorf("def: die height: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "VERSION %s ;\n", version)
	fmt.Fprintf(bw, "DESIGN %s ;\n", d.Name)
	fmt.Fprintf(bw, "UNITS DISTANCE MICRONS %d ;\n", o.dbu)
	fmt.Fprintf(bw, "DIEAREA ( 0 0 ) ( %d %d ) ;\n", dieW, dieH)
	fmt.Fprintf(bw, "COMPONENTS %d ;\n", len(d.Placements))

	for i, p := range d.Placements {
		x, err := toDBU(p.LowerLeft.X, o.dbu)
		if err != nil {
			return fmt.Errorf("def: %s: %w", p.Instance, err)
		}
		y, err := toDBU(p.LowerLeft.Y, o.dbu)
		if err != nil {
			return fmt.Errorf("def: %s: %w", p.Instance, err)
		}
		name := p.Instance
		if p.Kind == layout.KindFiller && name == "" {
			name = fmt.Sprintf("FILLER_%d", i+1)
		}
		fmt.Fprintf(bw, "  - %s %s\n", name, p.CellName)
		fmt.Fprintf(bw, "    + PLACED ( %d %d ) %s ;\n", x, y, p.Orientation)
	}

	fmt.Fprintln(bw, "END COMPONENTS")
	fmt.Fprintln(bw, "END DESIGN")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("def: %w", err)
	}
	return nil
}

func toDBU(v float64, dbu int) (int64, error) {
	return safecast.Round[int64](v * float64(dbu))
}
