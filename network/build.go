package network

import (
	"fmt"

	"github.com/katalvlaran/ductnet/primastar"
	"github.com/katalvlaran/ductnet/spatial"
)

// Network is the sized duct network produced by Build.
type Network struct {
	// Segments in key order.
	Segments []*Segment
	// Cost is the total surface area in ft², maintained incrementally.
	Cost float64
	// Flows maps each terminal to the flow (ft³/min) it was sized for.
	Flows map[int]float64
	// Radii maps each terminal to the radius of its own branch.
	Radii map[int]float64

	index *SegmentIndex
}

// Segment returns the segment joining a and b.
func (n *Network) Segment(a, b int) (*Segment, bool) { return n.index.Get(a, b) }

// Recost recomputes Σ SurfaceArea from the segments, independent of the
// incremental Cost.
func (n *Network) Recost() float64 {
	var sum float64
	for _, s := range n.Segments {
		sum += s.SurfaceArea()
	}

	return sum
}

// Build sizes every path and merges them into one network.
//
// Paths are processed in the order given; each is walked from its terminal
// back to the source. Single-node paths contribute no segments but still
// count toward their region's terminal total.
//
// Complexity: O(P·L + S log S) for P paths of length ≤ L and S segments.
func Build(g *spatial.Graph, paths []primastar.Path, opts ...Option) (*Network, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if g == nil {
		return nil, ErrNilGraph
	}

	b := &builder{
		g:      g,
		cfg:    cfg,
		index:  NewSegmentIndex(),
		shares: make(map[string]int),
		net: &Network{
			Flows: make(map[int]float64, len(paths)),
			Radii: make(map[int]float64, len(paths)),
		},
	}
	if err := b.countShares(paths); err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := b.addPath(p); err != nil {
			return nil, err
		}
	}
	b.net.index = b.index
	b.net.Segments = b.index.Segments()

	return b.net, nil
}

// builder holds the state of one Build call.
type builder struct {
	g      *spatial.Graph
	cfg    Options
	index  *SegmentIndex
	shares map[string]int // region id → terminals served in it
	net    *Network
}

// countShares tallies terminals per region so co-located terminals split the
// region's flow equally.
func (b *builder) countShares(paths []primastar.Path) error {
	for _, p := range paths {
		t := p.Terminal()
		if !b.g.Has(t) {
			return fmt.Errorf("%w: terminal %d not in graph", ErrInvalidFlowParameter, t)
		}
		r, ok := b.g.RegionOf(t)
		if !ok && len(p) == 1 {
			continue
		}
		if !ok {
			return fmt.Errorf("%w: terminal %d has no region", ErrInvalidFlowParameter, t)
		}
		b.shares[r.ID]++
	}

	return nil
}

// terminalRadius derives the branch radius for terminal t.
func (b *builder) terminalRadius(t int) (float64, error) {
	r, _ := b.g.RegionOf(t)
	flow, ok := b.cfg.Flows[r.ID]
	if !ok {
		flow = b.g.Flow(r)
	}
	flow /= float64(b.shares[r.ID])
	velocity := b.cfg.Velocity
	if v := b.g.TargetVelocity(r); v > 0 {
		velocity = v
	}

	radius, err := RadiusFor(flow, velocity)
	if err != nil {
		return 0, fmt.Errorf("terminal %d (region %s): %w", t, r.ID, err)
	}
	b.net.Flows[t] = flow

	return radius, nil
}

// addPath merges the edges of p, terminal first.
func (b *builder) addPath(p primastar.Path) error {
	t := p.Terminal()
	if _, ok := b.g.RegionOf(t); !ok && len(p) == 1 {
		return nil
	}
	radius, err := b.terminalRadius(t)
	if err != nil {
		return err
	}
	b.net.Radii[t] = radius
	for i := len(p) - 1; i > 0; i-- {
		u, v := p[i], p[i-1]
		_, delta, err := b.index.Add(u, v, b.position(u), b.position(v), radius)
		if err != nil {
			return err
		}
		b.net.Cost += delta
	}

	return nil
}

// position places node id for segment geometry. Plan nodes sit at the
// configured elevation.
func (b *builder) position(id int) spatial.Point {
	n, _ := b.g.Node(id)
	p := n.Pos
	if n.Dim < 3 {
		p.Z = b.cfg.Elevation
	}

	return p
}
