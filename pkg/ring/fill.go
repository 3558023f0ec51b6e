package ring

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/padring/pkg/filler"
	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

// Fill tiles every gap left by Layout with cells from the catalog, widest
// first. Any gap that cannot be covered exactly is a *FillError.
func (r *Ring) Fill(catalog *filler.Catalog) error {
	if !r.laidOut {
		return ErrNotLaidOut
	}
	if catalog.Len() == 0 {
		r.logger.Warn("filler catalog is empty")
	} else {
		smallest, _ := catalog.SmallestWidth()
		r.logger.Info("filler catalog", "cells", catalog.Len(), "smallest", smallest)
	}

	r.fills = make(map[layout.Location][][]layout.Item, len(edgeOrder))
	r.fillerCount = 0
	for _, loc := range edgeOrder {
		if err := r.fillEdge(loc, catalog); err != nil {
			r.fills = nil
			return err
		}
	}
	r.logger.Debug("fill done", "fillers", r.fillerCount)
	return nil
}

func (r *Ring) fillEdge(loc layout.Location, catalog *filler.Catalog) error {
	edge := r.edges[loc]
	items := edge.Items()
	fills := make([][]layout.Item, len(items))

	for i, gap := range items {
		if !gap.IsSpace() || geom.NearlyEqual(gap.Size, 0) {
			continue
		}
		start := gap.X
		if edge.Axis() == layout.Vertical {
			start = gap.Y
		}

		tiles, err := catalog.Tile(gap.Size)
		if err != nil {
			fillErr := &FillError{Edge: loc, Position: start, Width: gap.Size, Remaining: gap.Size, Err: err}
			var unc *filler.UncoverableError
			if errors.As(err, &unc) {
				fillErr.Remaining = unc.Remaining
			}
			return fillErr
		}

		cursor := start
		for _, tile := range tiles {
			cell, err := r.lookup("", tile.Name)
			if err != nil {
				return fmt.Errorf("%s edge filler: %w", loc, err)
			}
			r.fillerCount++
			name := fmt.Sprintf("FILLER_%d", r.fillerCount)
			x, y := cursor, edge.Fixed()
			if edge.Axis() == layout.Vertical {
				x, y = edge.Fixed(), cursor
			}
			fills[i] = append(fills[i], layout.NewFiller(name, loc, cell, x, y))
			cursor += tile.Width
		}
	}
	r.fills[loc] = fills
	return nil
}

// Placements returns every cell to be emitted, with final coordinates:
// the four corners first, then the pads and fillers of the N, S, W and E
// edges in running order. Spaces are never included. Fillers are present
// only after a successful Fill.
func (r *Ring) Placements() []layout.Item {
	var out []layout.Item

	// corners are taken from their N/S projection
	for _, loc := range []layout.Location{layout.North, layout.South} {
		edge := r.edges[loc]
		if c := edge.FirstCorner(); c != nil {
			out = append(out, *c)
		}
		if c := edge.LastCorner(); c != nil {
			out = append(out, *c)
		}
	}

	for _, loc := range edgeOrder {
		fills := r.fills[loc]
		for i, it := range r.edges[loc].Items() {
			switch {
			case it.Kind == layout.KindCell:
				out = append(out, it)
			case it.IsSpace() && i < len(fills):
				out = append(out, fills[i]...)
			}
		}
	}
	return out
}
