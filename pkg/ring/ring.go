// Package ring assembles a pad ring: it turns the events of a pad ring
// description into items on the four die edges, links the corners, lays the
// edges out and tiles the remaining gaps with filler cells.
package ring

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/padring/pkg/config"
	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
	"github.com/OpenTraceLab/padring/pkg/library"
)

// DefaultDesign is the design name used when the description has none.
const DefaultDesign = "padring"

var edgeOrder = []layout.Location{layout.North, layout.South, layout.West, layout.East}

// Ring is the pad ring under construction.
type Ring struct {
	lib    library.Library
	logger *log.Logger

	edges   map[layout.Location]*layout.Edge
	corners map[layout.Location]*library.Cell

	width, height float64
	hasArea       bool
	grid          float64
	design        string

	fillerPrefix string
	prefixForced bool
	lastEdge     layout.Location
	hasLastEdge  bool
	pads         int
	laidOut      bool
	fills        map[layout.Location][][]layout.Item
	fillerCount  int
}

// Option configures a Ring.
type Option func(*Ring)

// WithLogger sets the logger for warnings and progress.
func WithLogger(logger *log.Logger) Option {
	return func(r *Ring) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFillerPrefix selects filler cells by name prefix. It takes precedence
// over FILLER statements.
func WithFillerPrefix(prefix string) Option {
	return func(r *Ring) {
		if prefix != "" {
			r.fillerPrefix = prefix
			r.prefixForced = true
		}
	}
}

// WithGrid sets the grid used when the description has no GRID statement.
func WithGrid(grid float64) Option {
	return func(r *Ring) {
		if grid > 0 {
			r.grid = grid
		}
	}
}

// New creates an empty ring that resolves cells in lib.
func New(lib library.Library, opts ...Option) *Ring {
	r := &Ring{
		lib:     lib,
		logger:  log.New(io.Discard),
		edges:   make(map[layout.Location]*layout.Edge, 4),
		corners: make(map[layout.Location]*library.Cell, 4),
		grid:    1.0,
		design:  DefaultDesign,
	}
	for _, loc := range edgeOrder {
		r.edges[loc] = layout.NewEdge(loc)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Edge returns the layout of one of the four die edges.
func (r *Ring) Edge(loc layout.Location) *layout.Edge { return r.edges[loc] }

// Die returns the die size; ok is false until an AREA statement was applied.
func (r *Ring) Die() (geom.Size, bool) {
	return geom.Size{Width: r.width, Height: r.height}, r.hasArea
}

// Grid returns the placement grid.
func (r *Ring) Grid() float64 { return r.grid }

// Design returns the design name.
func (r *Ring) Design() string { return r.design }

// FillerPrefix returns the prefix that selects filler cells, if any.
func (r *Ring) FillerPrefix() string { return r.fillerPrefix }

// ApplyAll applies events in order and stops at the first error.
func (r *Ring) ApplyAll(events []config.Event) error {
	for _, ev := range events {
		if err := r.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies one description event.
func (r *Ring) Apply(ev config.Event) error {
	r.laidOut = false

	var err error
	switch ev := ev.(type) {
	case *config.Area:
		err = r.setArea(ev.Width, ev.Height)
	case *config.Grid:
		if ev.Value <= 0 {
			err = ErrInvalidGrid
			break
		}
		r.grid = ev.Value
	case *config.Corner:
		err = r.addCorner(ev)
	case *config.Pad:
		err = r.addPad(ev)
	case *config.Space:
		err = r.addSpace(ev)
	case *config.Offset:
		r.logger.Warn("OFFSET is not supported, ignoring", "pos", ev.Pos, "width", ev.Width)
	case *config.Filler:
		if r.prefixForced {
			r.logger.Info("filler prefix overridden", "file", ev.Prefix, "using", r.fillerPrefix)
			break
		}
		r.fillerPrefix = ev.Prefix
	case *config.Design:
		r.design = ev.Name
	default:
		err = fmt.Errorf("ring: unsupported event %T", ev)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ev.Position(), err)
	}
	return nil
}

func (r *Ring) setArea(w, h float64) error {
	if w <= 0 || h <= 0 {
		return ErrInvalidArea
	}
	r.width, r.height = w, h
	r.hasArea = true
	r.edges[layout.North].SetLength(w, h)
	r.edges[layout.South].SetLength(w, 0)
	r.edges[layout.East].SetLength(h, w)
	r.edges[layout.West].SetLength(h, 0)
	return nil
}

func (r *Ring) lookup(instance, name string) (*library.Cell, error) {
	cell, ok := r.lib.Cell(name)
	if !ok {
		return nil, &UnknownCellError{Instance: instance, Cell: name}
	}
	return cell, nil
}

// addCorner creates the two projections of a corner cell. Each adjacent edge
// gets the cell dimension that lies along its own axis.
func (r *Ring) addCorner(ev *config.Corner) error {
	cell, err := r.lookup(ev.Instance, ev.Cell)
	if err != nil {
		return err
	}
	if !cell.Size.IsSquare() {
		r.logger.Warn("corner cell is not square", "instance", ev.Instance, "cell", cell.Name,
			"width", cell.Size.Width, "height", cell.Size.Height)
	}
	if prev, dup := r.corners[ev.Location]; dup {
		r.logger.Warn("corner declared twice, replacing", "location", ev.Location, "previous", prev.Name, "cell", cell.Name)
	}
	r.corners[ev.Location] = cell

	w, h := cell.Size.Width, cell.Size.Height
	n, s := r.edges[layout.North], r.edges[layout.South]
	e, west := r.edges[layout.East], r.edges[layout.West]
	switch ev.Location {
	case layout.NorthWest:
		n.SetFirstCorner(layout.NewCorner(ev.Instance, ev.Location, cell, h))
		west.SetLastCorner(layout.NewCorner(ev.Instance, ev.Location, cell, w))
	case layout.NorthEast:
		n.SetLastCorner(layout.NewCorner(ev.Instance, ev.Location, cell, w))
		e.SetLastCorner(layout.NewCorner(ev.Instance, ev.Location, cell, h))
	case layout.SouthWest:
		s.SetFirstCorner(layout.NewCorner(ev.Instance, ev.Location, cell, w))
		west.SetFirstCorner(layout.NewCorner(ev.Instance, ev.Location, cell, h))
	case layout.SouthEast:
		s.SetLastCorner(layout.NewCorner(ev.Instance, ev.Location, cell, h))
		e.SetFirstCorner(layout.NewCorner(ev.Instance, ev.Location, cell, w))
	default:
		return fmt.Errorf("ring: %s is not a corner location", ev.Location)
	}
	return nil
}

func (r *Ring) addPad(ev *config.Pad) error {
	edge, ok := r.edges[ev.Location]
	if !ok {
		return fmt.Errorf("ring: %s is not an edge location", ev.Location)
	}
	cell, err := r.lookup(ev.Instance, ev.Cell)
	if err != nil {
		return err
	}
	edge.AddItem(layout.NewCell(ev.Instance, ev.Location, cell, ev.Flipped))
	r.lastEdge, r.hasLastEdge = ev.Location, true
	r.pads++
	return nil
}

func (r *Ring) addSpace(ev *config.Space) error {
	if ev.Width < 0 {
		return ErrInvalidSpace
	}
	if !r.hasLastEdge {
		r.logger.Warn("SPACE before any PAD has no edge, ignoring", "pos", ev.Pos, "width", ev.Width)
		return nil
	}
	r.edges[r.lastEdge].AddItem(layout.NewFixedSpace(r.lastEdge, ev.Width))
	return nil
}

// Layout positions the items of all four edges. The edges share no state
// and are laid out concurrently; the first failure is returned.
func (r *Ring) Layout(ctx context.Context) error {
	if !r.hasArea {
		return ErrNoArea
	}
	r.laidOut = false
	r.fills = nil

	g, ctx := errgroup.WithContext(ctx)
	for _, loc := range edgeOrder {
		edge := r.edges[loc]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return edge.Layout(r.grid)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("ring: layout: %w", err)
	}

	for _, loc := range edgeOrder {
		edge := r.edges[loc]
		r.logger.Debug("edge laid out", "edge", loc, "length", edge.Length(),
			"min", edge.MinSize(), "flex", edge.FlexTotal(), "items", len(edge.Items()))
	}
	r.laidOut = true
	return nil
}
