package sweep

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/katalvlaran/ductnet/network"
	"github.com/katalvlaran/ductnet/primastar"
)

// Sentinel errors.
var (
	// ErrBadRange indicates a weight range that cannot be enumerated.
	ErrBadRange = errors.New("sweep: invalid weight range")

	// ErrNoViableCombination indicates every evaluated combination failed to
	// produce a network.
	ErrNoViableCombination = errors.New("sweep: no viable combination")
)

// rangeEpsilon absorbs float error when the last step lands on Max.
const rangeEpsilon = 1e-9

// MaxCombinations caps the values of one Range and the size of the grid.
const MaxCombinations = 1_000_000

// Range is an inclusive arithmetic sequence Min, Min+Step, …, ≤ Max.
type Range struct {
	Min  float64 `json:"min" toml:"min" yaml:"min"`
	Step float64 `json:"step" toml:"step" yaml:"step"`
	Max  float64 `json:"max" toml:"max" yaml:"max"`
}

// Fixed returns the single-value range {v}.
func Fixed(v float64) Range { return Range{Min: v, Max: v} }

// Validate checks the range bounds.
func (r Range) Validate() error {
	for _, v := range []float64{r.Min, r.Step, r.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrBadRange, r)
		}
	}
	switch {
	case r.Min < 0 || r.Step < 0:
		return fmt.Errorf("%w: negative bound in %+v", ErrBadRange, r)
	case r.Max < r.Min:
		return fmt.Errorf("%w: max %g < min %g", ErrBadRange, r.Max, r.Min)
	case r.Step == 0 && r.Max != r.Min:
		return fmt.Errorf("%w: zero step over [%g, %g]", ErrBadRange, r.Min, r.Max)
	}

	return nil
}

// Values enumerates the range. Each value is computed as Min + i·Step.
func (r Range) Values() ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Step == 0 {
		return []float64{r.Min}, nil
	}
	n := math.Floor((r.Max-r.Min)/r.Step+rangeEpsilon) + 1
	if math.IsNaN(n) || math.IsInf(n, 0) || n > MaxCombinations {
		return nil, fmt.Errorf("%w: %g values exceed %d", ErrBadRange, n, MaxCombinations)
	}
	out := make([]float64, int(n))
	for i := range out {
		out[i] = r.Min + float64(i)*r.Step
	}

	return out, nil
}

// Bounds holds one Range per heuristic term.
type Bounds struct {
	Nearest Range `json:"nearest" toml:"nearest" yaml:"nearest"`
	Average Range `json:"average" toml:"average" yaml:"average"`
	Fermat  Range `json:"fermat" toml:"fermat" yaml:"fermat"`
}

// Combination is one point of the weight grid.
type Combination struct {
	Index   int
	Weights primastar.Composite
}

// Combinations returns the Cartesian product of the three ranges, nearest
// varying slowest and fermat fastest. A grid larger than MaxCombinations
// is rejected with ErrBadRange.
func (b Bounds) Combinations() ([]Combination, error) {
	ns, err := b.Nearest.Values()
	if err != nil {
		return nil, fmt.Errorf("nearest: %w", err)
	}
	as, err := b.Average.Values()
	if err != nil {
		return nil, fmt.Errorf("average: %w", err)
	}
	fs, err := b.Fermat.Values()
	if err != nil {
		return nil, fmt.Errorf("fermat: %w", err)
	}
	if size := float64(len(ns)) * float64(len(as)) * float64(len(fs)); size > MaxCombinations {
		return nil, fmt.Errorf("%w: grid of %g combinations exceeds %d", ErrBadRange, size, MaxCombinations)
	}

	out := make([]Combination, 0, len(ns)*len(as)*len(fs))
	for _, n := range ns {
		for _, a := range as {
			for _, f := range fs {
				out = append(out, Combination{
					Index:   len(out),
					Weights: primastar.Composite{Nearest: n, Average: a, Fermat: f},
				})
			}
		}
	}

	return out, nil
}

// Evaluation is the outcome of one combination.
type Evaluation struct {
	Combination
	Cost     float64       // total surface area; +Inf when not viable
	Viable   bool          // a network was built
	Err      error         // why the combination is not viable
	Expanded int           // nodes finalized by the search
	Segments int           // segments in the network
	Duration time.Duration // wall time of the evaluation
}

// Result is the reduced outcome of a sweep.
type Result struct {
	// Best is the minimum-cost viable evaluation.
	Best Evaluation
	// Paths and Network belong to Best.
	Paths   *primastar.Result
	Network *network.Network
	// Evaluations holds every finished evaluation in Index order.
	Evaluations []Evaluation
	// Total is the number of combinations in the grid.
	Total int
	// Stopped reports that the context or time budget ended the sweep
	// before every combination was started.
	Stopped bool
}

// BestSoFar returns the running minimum cost over Evaluations. The sequence
// is non-increasing; entries before the first viable evaluation are +Inf.
func (r *Result) BestSoFar() []float64 {
	out := make([]float64, len(r.Evaluations))
	best := math.Inf(1)
	for i, ev := range r.Evaluations {
		if ev.Cost < best {
			best = ev.Cost
		}
		out[i] = best
	}

	return out
}

// Viable returns the viable evaluations in Index order.
func (r *Result) Viable() []Evaluation {
	var out []Evaluation
	for _, ev := range r.Evaluations {
		if ev.Viable {
			out = append(out, ev)
		}
	}

	return out
}

// Options configures an Optimizer.
//
// Workers       – concurrent evaluations; ≤ 0 means GOMAXPROCS.
// MaxExpansions – per-search expansion cap passed to primastar (0 = unlimited).
// TimeBudget    – stop starting new combinations after this long (0 = none).
// Build         – options forwarded to network.Build.
// Observer      – notified after every evaluation; nil means none.
// Logger        – debug per evaluation, info for the winner; nil discards.
type Options struct {
	Workers       int
	MaxExpansions int
	TimeBudget    time.Duration
	Build         []network.Option
	Observer      Observer
	Logger        *log.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// WithWorkers bounds the number of concurrent evaluations.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithMaxExpansions caps each search.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// WithTimeBudget limits how long new combinations keep being started.
func WithTimeBudget(d time.Duration) Option {
	return func(o *Options) {
		o.TimeBudget = d
	}
}

// WithBuildOptions forwards options to network.Build.
func WithBuildOptions(opts ...network.Option) Option {
	return func(o *Options) {
		o.Build = append(o.Build, opts...)
	}
}

// WithObserver registers a progress observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithLogger sets the sweep logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns one worker per CPU with no budget.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
	}
}
