package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/katalvlaran/ductnet/spatial"
	"github.com/katalvlaran/ductnet/sweep"
)

// Report is the JSON document written by the route command.
type Report struct {
	RunID     string          `json:"run_id"`
	Name      string          `json:"name,omitempty"`
	Source    int             `json:"source"`
	Terminals []int           `json:"terminals"`
	Weights   reportWeights   `json:"weights"`
	Cost      float64         `json:"cost"`
	Evaluated int             `json:"evaluated"`
	Total     int             `json:"total"`
	Stopped   bool            `json:"stopped"`
	Paths     []reportPath    `json:"paths"`
	Segments  []reportSegment `json:"segments"`
}

type reportWeights struct {
	Nearest float64 `json:"nearest"`
	Average float64 `json:"average"`
	Fermat  float64 `json:"fermat"`
}

type reportPath struct {
	Terminal int     `json:"terminal"`
	Cell     string  `json:"cell"`
	Nodes    []int   `json:"nodes"`
	Flow     float64 `json:"flow"`
	Radius   float64 `json:"radius"`
}

type reportSegment struct {
	From        int        `json:"from"`
	To          int        `json:"to"`
	FromPos     [3]float64 `json:"from_pos"`
	ToPos       [3]float64 `json:"to_pos"`
	Radius      float64    `json:"radius"`
	Length      float64    `json:"length"`
	SurfaceArea float64    `json:"surface_area"`
	RectWidth   float64    `json:"rect_width"`
	RectHeight  float64    `json:"rect_height"`
}

// newReport flattens a sweep result. aspect is the width:height ratio of the
// rectangular equivalents.
func newReport(runID, name string, g *spatial.Graph, source int, terminals []int, res *sweep.Result, aspect float64) Report {
	w := res.Best.Weights
	rep := Report{
		RunID:     runID,
		Name:      name,
		Source:    source,
		Terminals: terminals,
		Weights:   reportWeights{Nearest: w.Nearest, Average: w.Average, Fermat: w.Fermat},
		Cost:      res.Best.Cost,
		Evaluated: len(res.Evaluations),
		Total:     res.Total,
		Stopped:   res.Stopped,
	}
	for _, t := range res.Paths.Order {
		n, _ := g.Node(t)
		rep.Paths = append(rep.Paths, reportPath{
			Terminal: t,
			Cell:     n.Cell.String(),
			Nodes:    res.Paths.Paths[t],
			Flow:     res.Network.Flows[t],
			Radius:   res.Network.Radii[t],
		})
	}
	for _, s := range res.Network.Segments {
		rw, rh := s.RectEquivalent(aspect)
		rep.Segments = append(rep.Segments, reportSegment{
			From:        s.Key.Lo,
			To:          s.Key.Hi,
			FromPos:     [3]float64{s.From.X, s.From.Y, s.From.Z},
			ToPos:       [3]float64{s.To.X, s.To.Y, s.To.Z},
			Radius:      s.Radius(),
			Length:      s.Length(),
			SurfaceArea: s.SurfaceArea(),
			RectWidth:   rw,
			RectHeight:  rh,
		})
	}

	return rep
}

// writeReport encodes rep as indented JSON to path, or to w when path is empty.
func writeReport(w io.Writer, path string, rep Report) (err error) {
	if path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}
