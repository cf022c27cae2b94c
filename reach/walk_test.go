package reach_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ductnet/reach"
	"github.com/katalvlaran/ductnet/spatial"
)

// plan builds:
//
//	A A # B
//	. . # B
func plan(t *testing.T) *spatial.Graph {
	t.Helper()
	g, err := spatial.BuildPlan(spatial.SplitRows("AA#B", "..#B"), spatial.DefaultGridOptions())
	require.NoError(t, err)
	return g
}

func cell(t *testing.T, g *spatial.Graph, r, c int) int {
	t.Helper()
	id, ok := g.NodeAt(spatial.CellRef{Row: r, Col: c})
	require.True(t, ok)
	return id
}

func TestWalk_DepthAndPath(t *testing.T) {
	g := plan(t)
	start := cell(t, g, 0, 0)
	res, err := reach.Walk(g, start)
	require.NoError(t, err)

	assert.Len(t, res.Order, 4)
	assert.Equal(t, start, res.Order[0])
	assert.Equal(t, 2, res.Depth[cell(t, g, 1, 1)])
	assert.False(t, res.Reached(cell(t, g, 0, 3)))

	path := res.PathTo(cell(t, g, 1, 1))
	require.Len(t, path, 3)
	assert.Equal(t, start, path[0])
	assert.Nil(t, res.PathTo(cell(t, g, 1, 3)))
}

func TestWalk_Options(t *testing.T) {
	g := plan(t)
	start := cell(t, g, 0, 0)

	res, err := reach.Walk(g, start, reach.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Len(t, res.Order, 3, "start and its two neighbours")

	_, err = reach.Walk(g, start, reach.WithMaxDepth(-1))
	assert.ErrorIs(t, err, reach.ErrOptionViolation)

	stop := errors.New("stop")
	_, err = reach.Walk(g, start, reach.WithOnVisit(func(id, depth int) error {
		if depth == 1 {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reach.Walk(g, start, reach.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalk_Errors(t *testing.T) {
	_, err := reach.Walk(nil, 0)
	assert.ErrorIs(t, err, reach.ErrGraphNil)
	_, err = reach.Walk(plan(t), 42)
	assert.ErrorIs(t, err, reach.ErrStartNotFound)
}

func TestComponents(t *testing.T) {
	g := plan(t)
	labels, count := reach.Components(g)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, labels[cell(t, g, 0, 0)])
	assert.Equal(t, 0, labels[cell(t, g, 1, 1)])
	assert.Equal(t, 1, labels[cell(t, g, 0, 3)])
	assert.Equal(t, labels[cell(t, g, 0, 3)], labels[cell(t, g, 1, 3)])
}

func TestUnreachable(t *testing.T) {
	g := plan(t)
	b := cell(t, g, 1, 3)
	out, err := reach.Unreachable(g, cell(t, g, 0, 0), []int{cell(t, g, 1, 0), b})
	require.NoError(t, err)
	assert.Equal(t, []int{b}, out)
}
