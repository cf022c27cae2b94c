package spatial

import (
	"fmt"
	"math"
	"sort"
)

// Graph is an undirected, weighted adjacency list over integer node ids.
// It is built once per routing request and is read-only afterwards, so any
// number of searches may share it without locking.
type Graph struct {
	nodes   []Node
	adj     [][]Edge
	cells   map[CellRef]int
	regions map[string]*Region
	zones   map[string]*Zone
	edges   int
}

// NewGraph returns an empty graph for manual construction.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{
		cells:   make(map[CellRef]int),
		regions: make(map[string]*Region),
		zones:   make(map[string]*Zone),
	}
}

// AddNode appends a node and returns its id. The ID field of n is ignored.
// If n.Region is set, the node is also added to that region, creating it
// with a zero change rate if needed.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(n Node) int {
	n.ID = len(g.nodes)
	if n.Dim == 0 {
		n.Dim = 2
	}
	g.nodes = append(g.nodes, n)
	g.adj = append(g.adj, nil)
	if n.Region != "" {
		r := g.regions[n.Region]
		if r == nil {
			r = &Region{ID: n.Region}
			g.regions[n.Region] = r
		}
		r.Nodes = append(r.Nodes, n.ID)
	}

	return n.ID
}

// addCell adds a grid-built node and indexes it by its cell.
func (g *Graph) addCell(n Node) int {
	id := g.AddNode(n)
	g.cells[n.Cell] = id

	return id
}

// AddEdge connects a and b with weight w in both directions.
// Returns ErrNodeNotFound for unknown ids and ErrNegativeWeight for w < 0 or NaN.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(a, b int, w float64) error {
	if !g.Has(a) || !g.Has(b) {
		return fmt.Errorf("%w: edge %d-%d", ErrNodeNotFound, a, b)
	}
	if w < 0 || math.IsNaN(w) {
		return fmt.Errorf("%w: edge %d-%d weight=%g", ErrNegativeWeight, a, b, w)
	}
	g.adj[a] = append(g.adj[a], Edge{To: b, Weight: w})
	g.adj[b] = append(g.adj[b], Edge{To: a, Weight: w})
	g.edges++

	return nil
}

// AddRegion registers or updates a region's rate, zone and flow override.
// Member nodes are taken from nodes already tagged with the region id.
func (g *Graph) AddRegion(r Region) error {
	if r.ID == "" {
		return ErrEmptyRegionID
	}
	existing := g.regions[r.ID]
	if existing == nil {
		existing = &Region{ID: r.ID}
		g.regions[r.ID] = existing
	}
	existing.ChangeRate = r.ChangeRate
	existing.Zone = r.Zone
	existing.FlowOverride = r.FlowOverride

	return nil
}

// AddZone registers a zone.
func (g *Graph) AddZone(z Zone) error {
	if z.ID == "" {
		return ErrEmptyRegionID
	}
	zc := z
	g.zones[z.ID] = &zc

	return nil
}

// Has reports whether id names a node of g.
func (g *Graph) Has(id int) bool { return id >= 0 && id < len(g.nodes) }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.Has(id) {
		return Node{}, false
	}

	return g.nodes[id], true
}

// Nodes returns a copy of all nodes ordered by id.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Neighbors returns the adjacency entries of id in insertion order.
// The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(id int) []Edge {
	if !g.Has(id) {
		return nil
	}

	return g.adj[id]
}

// NodeAt returns the id of the node built from cell c.
func (g *Graph) NodeAt(c CellRef) (int, bool) {
	id, ok := g.cells[c]

	return id, ok
}

// Region returns the region with the given id.
func (g *Graph) Region(id string) (*Region, bool) {
	r, ok := g.regions[id]

	return r, ok
}

// RegionOf returns the region that node id belongs to.
func (g *Graph) RegionOf(id int) (*Region, bool) {
	if !g.Has(id) || g.nodes[id].Region == "" {
		return nil, false
	}

	return g.Region(g.nodes[id].Region)
}

// Regions returns all regions sorted by id.
func (g *Graph) Regions() []*Region {
	out := make([]*Region, 0, len(g.regions))
	for _, r := range g.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Zone returns the zone with the given id.
func (g *Graph) Zone(id string) (*Zone, bool) {
	z, ok := g.zones[id]

	return z, ok
}

// Flow returns the required volumetric flow of region r in cubic feet per
// minute: FlowOverride when positive, otherwise Σ(node volume) × ChangeRate / 60.
func (g *Graph) Flow(r *Region) float64 {
	if r == nil {
		return 0
	}
	if r.FlowOverride > 0 {
		return r.FlowOverride
	}
	var volume float64
	for _, id := range r.Nodes {
		volume += g.nodes[id].Volume
	}

	return volume * r.ChangeRate / 60
}

// TargetVelocity returns the zone velocity configured for region r, or 0.
func (g *Graph) TargetVelocity(r *Region) float64 {
	if r == nil || r.Zone == "" {
		return 0
	}
	z, ok := g.zones[r.Zone]
	if !ok {
		return 0
	}

	return z.TargetVelocity
}
