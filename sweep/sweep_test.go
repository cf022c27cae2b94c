package sweep_test

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ductnet/network"
	"github.com/katalvlaran/ductnet/primastar"
	"github.com/katalvlaran/ductnet/spatial"
	"github.com/katalvlaran/ductnet/sweep"
)

// officePlan is a floor with a supply shaft S, three rooms and some walls.
var officePlan = []string{
	"S.....#....",
	".##.#.#.##.",
	"....#...#AA",
	".#.##.#....",
	"...BB.#.#CC",
}

// buildOffice returns the office graph, the source and one terminal per room.
func buildOffice(t testing.TB) (*spatial.Graph, int, []int) {
	t.Helper()
	opts := spatial.DefaultGridOptions()
	opts.CellWidth, opts.CellDepth, opts.Height = 5, 5, 9
	opts.ChangeRates = map[string]float64{"A": 6, "B": 4, "C": 8}
	g, err := spatial.BuildPlan(spatial.SplitRows(officePlan...), opts)
	require.NoError(t, err)

	at := func(r, c int) int {
		id, ok := g.NodeAt(spatial.CellRef{Row: r, Col: c})
		require.True(t, ok, "cell %d/%d", r, c)
		return id
	}

	return g, at(0, 0), []int{at(2, 9), at(4, 3), at(4, 10)}
}

var smallBounds = sweep.Bounds{
	Nearest: sweep.Range{Min: 0, Step: 1, Max: 2},
	Average: sweep.Range{Min: 0, Step: 0.5, Max: 1},
	Fermat:  sweep.Range{Min: 0, Step: 1, Max: 2},
}

//----------------------------------------------------------------------------//
// Ranges and combinations
//----------------------------------------------------------------------------//

func TestRange_Values(t *testing.T) {
	v, err := sweep.Range{Min: 0, Step: 0.5, Max: 2}.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, v)

	v, err = sweep.Range{Min: 0.1, Step: 0.1, Max: 0.3}.Values()
	require.NoError(t, err)
	assert.Len(t, v, 3, "the last step lands on Max despite float error")

	v, err = sweep.Fixed(3).Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, v)

	v, err = sweep.Range{Min: 1, Step: 5, Max: 3}.Values()
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, v, "a step beyond Max yields only Min")
}

func TestRange_Errors(t *testing.T) {
	cases := map[string]sweep.Range{
		"ZeroStep":     {Min: 0, Step: 0, Max: 1},
		"Inverted":     {Min: 2, Step: 1, Max: 1},
		"NegativeMin":  {Min: -1, Step: 1, Max: 1},
		"NegativeStep": {Min: 0, Step: -1, Max: 1},
		"NaN":          {Min: math.NaN(), Step: 1, Max: 1},
		"TinyStep":     {Min: 0, Step: 1e-300, Max: 1},
		"TooMany":      {Min: 0, Step: 1, Max: sweep.MaxCombinations},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := r.Values()
			assert.ErrorIs(t, err, sweep.ErrBadRange)
		})
	}
}

func TestRange_AtCap(t *testing.T) {
	v, err := sweep.Range{Min: 1, Step: 1, Max: sweep.MaxCombinations}.Values()
	require.NoError(t, err)
	assert.Len(t, v, sweep.MaxCombinations)
}

func TestBounds_TooLarge(t *testing.T) {
	r := sweep.Range{Min: 0, Step: 1, Max: 999}
	_, err := sweep.Bounds{Nearest: r, Average: r, Fermat: r}.Combinations()
	assert.ErrorIs(t, err, sweep.ErrBadRange)

	_, err = sweep.Bounds{Nearest: r, Average: r, Fermat: sweep.Fixed(1)}.Combinations()
	assert.NoError(t, err, "a 1000x1000 grid sits at the cap")
}

func TestBounds_Combinations(t *testing.T) {
	combos, err := smallBounds.Combinations()
	require.NoError(t, err)
	require.Len(t, combos, 3*3*3)

	for i, c := range combos {
		assert.Equal(t, i, c.Index)
	}
	assert.Equal(t, primastar.Composite{}, combos[0].Weights)
	assert.Equal(t, primastar.Composite{Nearest: 0, Average: 0, Fermat: 1}, combos[1].Weights, "fermat varies fastest")
	assert.Equal(t, primastar.Composite{Nearest: 1, Average: 0, Fermat: 0}, combos[9].Weights, "nearest varies slowest")

	_, err = sweep.Bounds{Nearest: sweep.Range{Min: 1, Max: 0}}.Combinations()
	assert.ErrorIs(t, err, sweep.ErrBadRange)
}

//----------------------------------------------------------------------------//
// Run
//----------------------------------------------------------------------------//

func TestNew_Validation(t *testing.T) {
	g, src, terms := buildOffice(t)

	_, err := sweep.New(nil, src, terms, smallBounds)
	assert.ErrorIs(t, err, primastar.ErrNilGraph)
	_, err = sweep.New(g, -1, terms, smallBounds)
	assert.ErrorIs(t, err, primastar.ErrSourceNotFound)
	_, err = sweep.New(g, src, nil, smallBounds)
	assert.ErrorIs(t, err, primastar.ErrNoTerminals)
	_, err = sweep.New(g, src, []int{999}, smallBounds)
	assert.ErrorIs(t, err, primastar.ErrTerminalNotFound)
	_, err = sweep.New(g, src, terms, sweep.Bounds{Average: sweep.Range{Min: 0, Max: 1}})
	assert.ErrorIs(t, err, sweep.ErrBadRange)
}

// TestRun_ExactMinimum compares the sweep winner with a serial brute force.
func TestRun_ExactMinimum(t *testing.T) {
	g, src, terms := buildOffice(t)
	build := []network.Option{network.WithVelocity(700)}

	opt, err := sweep.New(g, src, terms, smallBounds, sweep.WithWorkers(4), sweep.WithBuildOptions(build...))
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Evaluations, res.Total)
	assert.False(t, res.Stopped)

	wantCost, wantIndex := math.Inf(1), -1
	for _, c := range opt.Combinations() {
		paths, err := primastar.Find(g, src, terms, primastar.WithHeuristic(c.Weights))
		require.NoError(t, err)
		net, err := network.Build(g, paths.Ordered(), build...)
		require.NoError(t, err)
		assert.InDelta(t, net.Cost, res.Evaluations[c.Index].Cost, 1e-9, "combination %d", c.Index)
		if net.Cost < wantCost {
			wantCost, wantIndex = net.Cost, c.Index
		}
	}
	assert.Equal(t, wantIndex, res.Best.Index, "ties go to the lowest index")
	assert.InDelta(t, wantCost, res.Best.Cost, 1e-9)
	require.NotNil(t, res.Network)
	assert.InDelta(t, res.Best.Cost, res.Network.Cost, 1e-9)
	for _, term := range terms {
		assert.True(t, res.Paths.Reached(term))
	}
}

// TestRun_Deterministic checks the winner does not depend on worker count.
func TestRun_Deterministic(t *testing.T) {
	g, src, terms := buildOffice(t)
	var winners []sweep.Evaluation
	for _, workers := range []int{1, 3, 8} {
		opt, err := sweep.New(g, src, terms, smallBounds, sweep.WithWorkers(workers))
		require.NoError(t, err)
		res, err := opt.Run(context.Background())
		require.NoError(t, err)
		winners = append(winners, res.Best)
	}
	for _, w := range winners[1:] {
		assert.Equal(t, winners[0].Index, w.Index)
		assert.InDelta(t, winners[0].Cost, w.Cost, 1e-9)
	}
}

func TestRun_BestSoFarMonotone(t *testing.T) {
	g, src, terms := buildOffice(t)
	opt, err := sweep.New(g, src, terms, smallBounds, sweep.WithWorkers(2))
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err)

	seq := res.BestSoFar()
	require.Len(t, seq, len(res.Evaluations))
	for i := 1; i < len(seq); i++ {
		assert.LessOrEqual(t, seq[i], seq[i-1], "step %d", i)
	}
	assert.InDelta(t, res.Best.Cost, seq[len(seq)-1], 1e-9)
	assert.Len(t, res.Viable(), res.Total)
}

// TestRun_UnreachableExcluded: a walled-off room makes every combination
// non-viable.
func TestRun_UnreachableExcluded(t *testing.T) {
	opts := spatial.DefaultGridOptions()
	opts.ChangeRates = map[string]float64{"A": 6, "B": 6}
	g, err := spatial.BuildPlan(spatial.SplitRows("S.A#B"), opts)
	require.NoError(t, err)
	src, _ := g.NodeAt(spatial.CellRef{Col: 0})
	a, _ := g.NodeAt(spatial.CellRef{Col: 2})
	b, _ := g.NodeAt(spatial.CellRef{Col: 4})

	opt, err := sweep.New(g, src, []int{a, b}, smallBounds)
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.ErrorIs(t, err, sweep.ErrNoViableCombination)
	require.NotNil(t, res)
	assert.Len(t, res.Evaluations, res.Total)
	for _, ev := range res.Evaluations {
		assert.False(t, ev.Viable)
		assert.True(t, math.IsInf(ev.Cost, 1))
		assert.ErrorIs(t, ev.Err, primastar.ErrUnreachableTerminal)
	}
	assert.Empty(t, res.Viable())
	assert.Nil(t, res.Network)
}

// TestRun_NonViableSkipped: a tight expansion cap defeats the unguided search
// but not the guided one, which must win.
func TestRun_NonViableSkipped(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "RRRRRRRRRRRRRRRRRRRR"
	}
	opts := spatial.DefaultGridOptions()
	opts.ChangeRates = map[string]float64{"R": 6}
	g, err := spatial.BuildPlan(spatial.SplitRows(lines...), opts)
	require.NoError(t, err)
	src, _ := g.NodeAt(spatial.CellRef{Row: 0, Col: 0})
	dst, _ := g.NodeAt(spatial.CellRef{Row: 0, Col: 19})

	bounds := sweep.Bounds{Nearest: sweep.Range{Min: 0, Step: 1, Max: 1}, Average: sweep.Fixed(0), Fermat: sweep.Fixed(0)}
	opt, err := sweep.New(g, src, []int{dst}, bounds, sweep.WithMaxExpansions(50))
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Evaluations, 2)

	assert.False(t, res.Evaluations[0].Viable)
	assert.ErrorIs(t, res.Evaluations[0].Err, primastar.ErrExpansionLimit)
	assert.True(t, res.Evaluations[1].Viable)
	assert.Equal(t, 1, res.Best.Index)
	assert.Equal(t, []float64{math.Inf(1), res.Best.Cost}, res.BestSoFar())
}

// TestRun_InvalidFlowNonViable: a zero velocity is reported per combination.
func TestRun_InvalidFlowNonViable(t *testing.T) {
	g, src, terms := buildOffice(t)
	opt, err := sweep.New(g, src, terms, sweep.Bounds{Nearest: sweep.Fixed(1), Average: sweep.Fixed(0), Fermat: sweep.Fixed(0)},
		sweep.WithBuildOptions(network.WithVelocity(0)))
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.ErrorIs(t, err, sweep.ErrNoViableCombination)
	assert.ErrorIs(t, res.Evaluations[0].Err, network.ErrInvalidFlowParameter)
}

func TestRun_CanceledContext(t *testing.T) {
	g, src, terms := buildOffice(t)
	opt, err := sweep.New(g, src, terms, smallBounds)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := opt.Run(ctx)
	require.ErrorIs(t, err, sweep.ErrNoViableCombination)
	assert.True(t, res.Stopped)
	assert.Empty(t, res.Evaluations)
}

// TestRun_TimeBudget stops issuing combinations once the budget is spent.
func TestRun_TimeBudget(t *testing.T) {
	g, src, terms := buildOffice(t)
	slow := sweep.ObserverFunc(func(sweep.Evaluation, int, int) { time.Sleep(20 * time.Millisecond) })
	opt, err := sweep.New(g, src, terms, smallBounds,
		sweep.WithWorkers(1),
		sweep.WithTimeBudget(30*time.Millisecond),
		sweep.WithObserver(slow),
	)
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err, "the first evaluations finish before the budget")
	assert.True(t, res.Stopped)
	assert.Less(t, len(res.Evaluations), res.Total)
	assert.NotEmpty(t, res.Evaluations)
	assert.True(t, res.Best.Viable)
}

//----------------------------------------------------------------------------//
// Observers, metrics and logging
//----------------------------------------------------------------------------//

func TestRun_Observers(t *testing.T) {
	g, src, terms := buildOffice(t)
	reg := prometheus.NewRegistry()
	prom := sweep.NewPrometheusObserver(reg)

	var dones []int
	counter := sweep.ObserverFunc(func(_ sweep.Evaluation, done, total int) {
		dones = append(dones, done)
		assert.Equal(t, 27, total)
	})

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	opt, err := sweep.New(g, src, terms, smallBounds,
		sweep.WithWorkers(4),
		sweep.WithObserver(sweep.Observers{counter, prom, sweep.NopObserver{}}),
		sweep.WithLogger(logger),
	)
	require.NoError(t, err)
	res, err := opt.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, dones, 27)
	for i, d := range dones {
		assert.Equal(t, i+1, d, "calls are serialized")
	}

	viable := `
# HELP ductnet_sweep_evaluations_total Total weight combinations evaluated
# TYPE ductnet_sweep_evaluations_total counter
ductnet_sweep_evaluations_total{result="viable"} 27
`
	assert.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(viable), "ductnet_sweep_evaluations_total"))
	n, err := testutil.GatherAndCount(reg, "ductnet_sweep_evaluation_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	gauge, err := reg.Gather()
	require.NoError(t, err)
	var best float64
	for _, mf := range gauge {
		if mf.GetName() == "ductnet_sweep_best_cost" {
			best = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.InDelta(t, res.Best.Cost, best, 1e-9)

	out := buf.String()
	assert.Contains(t, out, "evaluated")
	assert.Contains(t, out, "sweep finished")
}
