package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ductnet/network"
	"github.com/katalvlaran/ductnet/primastar"
	"github.com/katalvlaran/ductnet/spatial"
)

// Optimizer sweeps a weight grid for one routing problem.
type Optimizer struct {
	g         *spatial.Graph
	source    int
	terminals []int
	combos    []Combination
	options   Options
}

// New validates the routing problem and the bounds. Source and terminal
// errors are the primastar sentinels; bounds errors wrap ErrBadRange.
func New(g *spatial.Graph, source int, terminals []int, bounds Bounds, opts ...Option) (*Optimizer, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultOptions().Workers
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	if g == nil {
		return nil, primastar.ErrNilGraph
	}
	if !g.Has(source) {
		return nil, fmt.Errorf("%w: %d", primastar.ErrSourceNotFound, source)
	}
	if len(terminals) == 0 {
		return nil, primastar.ErrNoTerminals
	}
	for _, t := range terminals {
		if !g.Has(t) {
			return nil, fmt.Errorf("%w: %d", primastar.ErrTerminalNotFound, t)
		}
	}
	combos, err := bounds.Combinations()
	if err != nil {
		return nil, err
	}

	return &Optimizer{
		g:         g,
		source:    source,
		terminals: append([]int(nil), terminals...),
		combos:    combos,
		options:   cfg,
	}, nil
}

// Combinations returns the weight grid in Index order.
func (o *Optimizer) Combinations() []Combination {
	return append([]Combination(nil), o.combos...)
}

// candidate is the network behind an evaluation, kept only while it is the best.
type candidate struct {
	ev    Evaluation
	paths *primastar.Result
	net   *network.Network
}

// run is the shared state of one Run call.
type run struct {
	mu    sync.Mutex
	slots []*Evaluation
	best  *candidate
	done  int
}

// better reports whether a beats b: lower cost, then lower index.
func better(a, b Evaluation) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}

	return a.Index < b.Index
}

// Run evaluates the grid and returns the minimum-cost network.
//
// It returns a Result with ErrNoViableCombination when nothing could be
// routed, and a nil Result with the error when an evaluation fails with a
// non-recoverable error.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	if o.options.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.options.TimeBudget)
		defer cancel()
	}
	logger := o.options.Logger
	total := len(o.combos)
	st := &run{slots: make([]*Evaluation, total)}
	start := time.Now()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.options.Workers)
	stopped := false
	for _, c := range o.combos {
		if gctx.Err() != nil {
			stopped = true
			break
		}
		c := c
		eg.Go(func() error {
			cand, err := o.evaluate(c)
			if err != nil {
				return fmt.Errorf("combination %d (%s): %w", c.Index, c.Weights, err)
			}
			o.record(st, cand, total)

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	res := &Result{Total: total, Stopped: stopped}
	for _, ev := range st.slots {
		if ev != nil {
			res.Evaluations = append(res.Evaluations, *ev)
		}
	}
	if st.best == nil {
		res.Best = Evaluation{Cost: math.Inf(1)}
		logger.Warn("no viable combination", "evaluated", len(res.Evaluations), "total", total)

		return res, fmt.Errorf("%w: %d of %d evaluated", ErrNoViableCombination, len(res.Evaluations), total)
	}
	res.Best, res.Paths, res.Network = st.best.ev, st.best.paths, st.best.net
	logger.Info("sweep finished",
		"weights", res.Best.Weights,
		"cost", fmt.Sprintf("%.2f", res.Best.Cost),
		"evaluated", len(res.Evaluations),
		"total", total,
		"stopped", stopped,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return res, nil
}

// evaluate routes and sizes one combination. Recoverable failures come back
// as a non-viable candidate; only fatal errors are returned.
func (o *Optimizer) evaluate(c Combination) (*candidate, error) {
	start := time.Now()
	ev := Evaluation{Combination: c, Cost: math.Inf(1)}
	finish := func() *candidate {
		ev.Duration = time.Since(start)
		return &candidate{ev: ev}
	}

	paths, err := primastar.Find(o.g, o.source, o.terminals,
		primastar.WithHeuristic(c.Weights),
		primastar.WithMaxExpansions(o.options.MaxExpansions),
	)
	if paths != nil {
		ev.Expanded = paths.Expanded
	}
	switch {
	case errors.Is(err, primastar.ErrUnreachableTerminal), errors.Is(err, primastar.ErrExpansionLimit):
		ev.Err = err
		return finish(), nil
	case err != nil:
		return nil, err
	}

	net, err := network.Build(o.g, paths.Ordered(), o.options.Build...)
	switch {
	case errors.Is(err, network.ErrInvalidFlowParameter):
		ev.Err = err
		return finish(), nil
	case err != nil:
		return nil, err
	}

	ev.Viable = true
	ev.Cost = net.Cost
	ev.Segments = len(net.Segments)
	cand := finish()
	cand.paths, cand.net = paths, net

	return cand, nil
}

// record stores an evaluation, updates the best candidate and notifies the
// observer, all under one lock.
func (o *Optimizer) record(st *run, cand *candidate, total int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	ev := cand.ev
	st.slots[ev.Index] = &ev
	st.done++
	if ev.Viable && (st.best == nil || better(ev, st.best.ev)) {
		st.best = cand
	}
	o.options.Logger.Debug("evaluated",
		"index", ev.Index,
		"weights", ev.Weights,
		"viable", ev.Viable,
		"cost", ev.Cost,
		"expanded", ev.Expanded,
		"err", ev.Err,
	)
	o.options.Observer.OnEvaluated(ev, st.done, total)
}
