package spatial_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/ductnet/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

// TestBuildPlan_Errors verifies that malformed plans are reported, not tolerated.
func TestBuildPlan_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
		err  error
	}{
		{"EmptyRows", [][]string{}, spatial.ErrEmptyGrid},
		{"EmptyCols", [][]string{{}}, spatial.ErrEmptyGrid},
		{"NonRectangular", spatial.SplitRows("AA", "A"), spatial.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := spatial.BuildPlan(tc.rows, spatial.DefaultGridOptions())
			assert.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, spatial.ErrGridConstruction)
		})
	}
}

// TestBuildVolume_Errors covers level-shape and level-bound validation.
func TestBuildVolume_Errors(t *testing.T) {
	opts := spatial.DefaultGridOptions()
	good := spatial.Level{Bottom: 0, Top: 10, Rows: spatial.SplitRows("AB", "..")}

	cases := []struct {
		name   string
		levels []spatial.Level
		err    error
	}{
		{"NoLevels", nil, spatial.ErrEmptyGrid},
		{"ShapeMismatch", []spatial.Level{good, {Bottom: 10, Top: 20, Rows: spatial.SplitRows("AB")}}, spatial.ErrLevelMismatch},
		{"RaggedUpper", []spatial.Level{good, {Bottom: 10, Top: 20, Rows: spatial.SplitRows("AB", ".")}}, spatial.ErrNonRectangular},
		{"InvertedLevel", []spatial.Level{{Bottom: 5, Top: 5, Rows: spatial.SplitRows("A")}}, spatial.ErrBadLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := spatial.BuildVolume(tc.levels, opts)
			assert.True(t, errors.Is(err, tc.err), "got %v, want %v", err, tc.err)
		})
	}

	bad := opts
	bad.CellWidth = 0
	_, err := spatial.BuildVolume([]spatial.Level{good}, bad)
	assert.ErrorIs(t, err, spatial.ErrBadCellSize)
}

//----------------------------------------------------------------------------//
// Plan construction
//----------------------------------------------------------------------------//

// TestBuildPlan_BlocksAndAbsentCells checks node count and that blocks and
// absent cells cut adjacency.
func TestBuildPlan_BlocksAndAbsentCells(t *testing.T) {
	// A A #
	// . _ B      (_ = absent)
	rows := spatial.SplitRows("AA#", ". B")
	g, err := spatial.BuildPlan(rows, spatial.DefaultGridOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len(), "only traversable cells become nodes")

	a0, _ := g.NodeAt(spatial.CellRef{Row: 0, Col: 0})
	a1, _ := g.NodeAt(spatial.CellRef{Row: 0, Col: 1})
	v, _ := g.NodeAt(spatial.CellRef{Row: 1, Col: 0})
	b, ok := g.NodeAt(spatial.CellRef{Row: 1, Col: 2})
	require.True(t, ok)
	_, blocked := g.NodeAt(spatial.CellRef{Row: 0, Col: 2})
	assert.False(t, blocked)

	assert.ElementsMatch(t, []int{a1, v}, neighborIDs(g, a0))
	assert.ElementsMatch(t, []int{a0}, neighborIDs(g, a1))
	assert.Empty(t, neighborIDs(g, b), "B is isolated by the block above and the absent cell beside it")
	assert.Equal(t, 2, g.EdgeCount())

	for _, e := range g.Neighbors(a0) {
		assert.Equal(t, 1.0, e.Weight, "plan mode uses unit weights")
	}
}

// TestBuildPlan_Symmetric verifies every adjacency is stored from both endpoints.
func TestBuildPlan_Symmetric(t *testing.T) {
	g, err := spatial.BuildPlan(spatial.SplitRows("AAAA", "A#.A", "AAAA"), spatial.DefaultGridOptions())
	require.NoError(t, err)

	directed := 0
	for _, n := range g.Nodes() {
		for _, e := range g.Neighbors(n.ID) {
			directed++
			assert.Contains(t, neighborIDs(g, e.To), n.ID, "missing reverse of %d→%d", n.ID, e.To)
		}
	}
	assert.Equal(t, 2*g.EdgeCount(), directed)
}

// TestBuildPlan_RegionFlow checks the flow = Σ volume × rate / 60 derivation.
func TestBuildPlan_RegionFlow(t *testing.T) {
	opts := spatial.DefaultGridOptions()
	opts.CellWidth, opts.CellDepth, opts.Height = 4, 6, 10
	opts.ChangeRates = map[string]float64{"A": 6}
	g, err := spatial.BuildPlan(spatial.SplitRows("AA.B"), opts)
	require.NoError(t, err)

	a, ok := g.Region("A")
	require.True(t, ok)
	assert.Len(t, a.Nodes, 2)
	// 2 cells × 240 ft³ × 6 ACH / 60
	assert.InDelta(t, 48.0, g.Flow(a), 1e-9)

	b, _ := g.Region("B")
	assert.Zero(t, g.Flow(b), "no change rate configured for B")

	n, _ := g.Node(a.Nodes[1])
	assert.Equal(t, spatial.Point{X: 6, Y: 3, Z: 0}, n.Pos)
	assert.Equal(t, 2, n.Dim)
}

//----------------------------------------------------------------------------//
// Volume construction
//----------------------------------------------------------------------------//

// TestBuildVolume_VerticalEdges verifies 6-connectivity and Euclidean weights.
func TestBuildVolume_VerticalEdges(t *testing.T) {
	opts := spatial.DefaultGridOptions()
	opts.CellWidth, opts.CellDepth = 2, 2
	levels := []spatial.Level{
		{Bottom: 0, Top: 10, Rows: spatial.SplitRows("A.")},
		{Bottom: 10, Top: 14, Rows: spatial.SplitRows(".#")},
	}
	g, err := spatial.BuildVolume(levels, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	low, _ := g.NodeAt(spatial.CellRef{Level: 0, Row: 0, Col: 0})
	high, _ := g.NodeAt(spatial.CellRef{Level: 1, Row: 0, Col: 0})
	side, _ := g.NodeAt(spatial.CellRef{Level: 0, Row: 0, Col: 1})

	weights := map[int]float64{}
	for _, e := range g.Neighbors(low) {
		weights[e.To] = e.Weight
	}
	assert.InDelta(t, 7.0, weights[high], 1e-9, "mid-heights 5 and 12")
	assert.InDelta(t, 2.0, weights[side], 1e-9)
	assert.Equal(t, []int{low}, neighborIDs(g, side), "the cell above side is a block")

	n, _ := g.Node(high)
	assert.Equal(t, 3, n.Dim)
	assert.InDelta(t, 16.0, n.Volume, 1e-9)
}

// TestBuildVolume_Zones checks zone registration and per-region velocity lookup.
func TestBuildVolume_Zones(t *testing.T) {
	opts := spatial.DefaultGridOptions()
	opts.Zones = []spatial.Zone{{ID: "north", TargetVelocity: 700}}
	opts.RegionZones = map[string]string{"A": "north"}
	g, err := spatial.BuildVolume([]spatial.Level{{Bottom: 0, Top: 1, Rows: spatial.SplitRows("AB")}}, opts)
	require.NoError(t, err)

	a, _ := g.Region("A")
	b, _ := g.Region("B")
	assert.Equal(t, 700.0, g.TargetVelocity(a))
	assert.Zero(t, g.TargetVelocity(b))
}

//----------------------------------------------------------------------------//
// Manual construction
//----------------------------------------------------------------------------//

func TestGraph_AddEdgeErrors(t *testing.T) {
	g := spatial.NewGraph()
	a := g.AddNode(spatial.Node{})
	b := g.AddNode(spatial.Node{Pos: spatial.Point{X: 1}})

	assert.ErrorIs(t, g.AddEdge(a, 7, 1), spatial.ErrNodeNotFound)
	assert.ErrorIs(t, g.AddEdge(a, b, -1), spatial.ErrNegativeWeight)
	assert.ErrorIs(t, g.AddEdge(a, b, math.NaN()), spatial.ErrNegativeWeight)
	require.NoError(t, g.AddEdge(a, b, 1))
	assert.Equal(t, 1, g.EdgeCount())
	assert.ErrorIs(t, g.AddRegion(spatial.Region{}), spatial.ErrEmptyRegionID)
}

func TestGraph_RegionOf(t *testing.T) {
	g := spatial.NewGraph()
	id := g.AddNode(spatial.Node{Region: "R", Volume: 60})
	void := g.AddNode(spatial.Node{})
	require.NoError(t, g.AddRegion(spatial.Region{ID: "R", ChangeRate: 2}))

	r, ok := g.RegionOf(id)
	require.True(t, ok)
	assert.InDelta(t, 2.0, g.Flow(r), 1e-9)

	_, ok = g.RegionOf(void)
	assert.False(t, ok)

	require.NoError(t, g.AddRegion(spatial.Region{ID: "R", FlowOverride: 150}))
	assert.Equal(t, 150.0, g.Flow(r), "override wins over the derived flow")
}

// neighborIDs lists the neighbour ids of id.
func neighborIDs(g *spatial.Graph, id int) []int {
	var out []int
	for _, e := range g.Neighbors(id) {
		out = append(out, e.To)
	}

	return out
}
