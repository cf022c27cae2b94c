package request

import (
	"fmt"

	"github.com/katalvlaran/ductnet/network"
	"github.com/katalvlaran/ductnet/spatial"
	"github.com/katalvlaran/ductnet/sweep"
)

// GridOptions converts the grid, region and zone sections.
func (r *Request) GridOptions() spatial.GridOptions {
	opts := spatial.DefaultGridOptions()
	opts.CellWidth = r.Grid.CellWidth
	opts.CellDepth = r.Grid.CellDepth
	opts.Height = r.Grid.Height
	opts.Block = r.Grid.Block
	opts.Void = r.Grid.Void
	opts.ChangeRates = make(map[string]float64, len(r.Regions))
	opts.RegionZones = make(map[string]string, len(r.Regions))
	for _, reg := range r.Regions {
		opts.ChangeRates[reg.ID] = reg.ChangeRate
		if reg.Zone != "" {
			opts.RegionZones[reg.ID] = reg.Zone
		}
	}
	for _, z := range r.Zones {
		opts.Zones = append(opts.Zones, spatial.Zone{ID: z.ID, TargetVelocity: z.Velocity})
	}

	return opts
}

// Graph builds the spatial graph and applies region flow overrides. Every
// configured region and zone reference must name something in the grid.
func (r *Request) Graph() (*spatial.Graph, error) {
	opts := r.GridOptions()
	var (
		g   *spatial.Graph
		err error
	)
	if r.Mode == ModeVolume {
		levels := make([]spatial.Level, len(r.Grid.Levels))
		for i, lv := range r.Grid.Levels {
			levels[i] = spatial.Level{Bottom: lv.Bottom, Top: lv.Top, Rows: spatial.SplitRows(lv.Rows...)}
		}
		g, err = spatial.BuildVolume(levels, opts)
	} else {
		g, err = spatial.BuildPlan(spatial.SplitRows(r.Grid.Rows...), opts)
	}
	if err != nil {
		return nil, err
	}

	for _, reg := range r.Regions {
		if _, ok := g.Region(reg.ID); !ok {
			return nil, fmt.Errorf("%w: %q has no cells", ErrUnknownRegion, reg.ID)
		}
		if reg.Zone != "" {
			if _, ok := g.Zone(reg.Zone); !ok {
				return nil, fmt.Errorf("%w: region %q references zone %q", ErrInvalidRequest, reg.ID, reg.Zone)
			}
		}
		if reg.Flow > 0 {
			if err = g.AddRegion(spatial.Region{ID: reg.ID, ChangeRate: reg.ChangeRate, Zone: reg.Zone, FlowOverride: reg.Flow}); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// Resolve maps the source and terminal cells of g to node ids. Terminals
// keep file order; region terminals follow the explicit ones.
func (r *Request) Resolve(g *spatial.Graph) (source int, terminals []int, err error) {
	source, err = r.node(g, r.Route.Source)
	if err != nil {
		return 0, nil, fmt.Errorf("source: %w", err)
	}
	for i, c := range r.Route.Terminals {
		id, err := r.node(g, c)
		if err != nil {
			return 0, nil, fmt.Errorf("terminal %d: %w", i, err)
		}
		terminals = append(terminals, id)
	}
	for _, name := range r.Route.TerminalRegions {
		reg, ok := g.Region(name)
		if !ok || len(reg.Nodes) == 0 {
			return 0, nil, fmt.Errorf("%w: terminal region %q", ErrUnknownRegion, name)
		}
		terminals = append(terminals, reg.Nodes[0])
	}

	return source, terminals, nil
}

func (r *Request) node(g *spatial.Graph, c Cell) (int, error) {
	ref := spatial.CellRef{Level: c.Level, Row: c.Row, Col: c.Col}
	if r.Mode != ModeVolume {
		ref.Level = 0
	}
	id, ok := g.NodeAt(ref)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCell, ref)
	}

	return id, nil
}

// Bounds returns the sweep weight bounds.
func (r *Request) Bounds() sweep.Bounds { return r.Sweep }

// BuildOptions returns the network sizing options.
func (r *Request) BuildOptions() []network.Option {
	return []network.Option{
		network.WithVelocity(r.Velocity),
		network.WithElevation(r.Elevation),
	}
}

// SweepOptions returns workers, budget, expansion cap and sizing options.
// Callers append their own observer and logger.
func (r *Request) SweepOptions() ([]sweep.Option, error) {
	budget, err := r.Budget()
	if err != nil {
		return nil, err
	}
	opts := []sweep.Option{
		sweep.WithTimeBudget(budget),
		sweep.WithMaxExpansions(r.MaxExpansions),
		sweep.WithBuildOptions(r.BuildOptions()...),
	}
	if r.Workers > 0 {
		opts = append(opts, sweep.WithWorkers(r.Workers))
	}

	return opts, nil
}
