package ring

import (
	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

// EdgeReport summarises one laid out edge.
type EdgeReport struct {
	Location  layout.Location
	Length    float64
	MinSize   float64
	FlexTotal float64
	Pads      int
	Gaps      int
}

// Report summarises the ring.
type Report struct {
	Design  string
	Die     geom.Size
	Grid    float64
	Pads    int
	Corners int
	Fillers int
	Edges   []EdgeReport
}

// Report returns a summary of the ring in its current state.
func (r *Ring) Report() Report {
	rep := Report{
		Design:  r.design,
		Die:     geom.Size{Width: r.width, Height: r.height},
		Grid:    r.grid,
		Pads:    r.pads,
		Corners: len(r.corners),
		Fillers: r.fillerCount,
	}
	if r.fills == nil {
		rep.Fillers = 0
	}
	for _, loc := range edgeOrder {
		edge := r.edges[loc]
		er := EdgeReport{
			Location:  loc,
			Length:    edge.Length(),
			MinSize:   edge.MinSize(),
			FlexTotal: edge.FlexTotal(),
		}
		for _, it := range edge.Items() {
			switch {
			case it.Kind == layout.KindCell:
				er.Pads++
			case it.IsSpace():
				er.Gaps++
			}
		}
		rep.Edges = append(rep.Edges, er)
	}
	return rep
}
