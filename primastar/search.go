package primastar

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ductnet/frontier"
	"github.com/katalvlaran/ductnet/spatial"
)

// Find grows one tree from source until every terminal is connected and
// returns one Path per terminal.
//
// Duplicate terminals are collapsed. A terminal equal to source gets the
// single-node path [source].
//
// Validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source must be a node of g (ErrSourceNotFound).
//  3. terminals must be non-empty (ErrNoTerminals) and all nodes of g (ErrTerminalNotFound).
//  4. a heuristic with a Validate method must pass it (ErrInvalidHeuristic
//     for the built-in weighted heuristics).
//
// If the frontier empties first, Find returns the partial Result and an error
// wrapping ErrUnreachableTerminal that lists the missing terminals.
//
// Complexity: O((V + E) log V + V·T) time, O(V + E) memory.
func Find(g *spatial.Graph, source int, terminals []int, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Heuristic == nil {
		cfg.Heuristic = Zero{}
	}

	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Has(source) {
		return nil, fmt.Errorf("%w: %d", ErrSourceNotFound, source)
	}
	if len(terminals) == 0 {
		return nil, ErrNoTerminals
	}
	for _, t := range terminals {
		if !g.Has(t) {
			return nil, fmt.Errorf("%w: %d", ErrTerminalNotFound, t)
		}
	}
	if v, ok := cfg.Heuristic.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	s := NewSearch(g, source, terminals, cfg)
	if err := s.Run(); err != nil {
		return s.Result(), err
	}

	return s.Result(), nil
}

// Search holds the mutable state of a single Find call. It is allocated fresh
// for every call and never shared, which is what lets a sweep run many
// searches in parallel over one graph.
type Search struct {
	g       *spatial.Graph
	options Options
	source  int

	open   *frontier.Frontier
	gScore []float64 // best known accumulated edge cost from source
	fScore []float64 // score of the latest frontier entry per node
	pred   []int     // predecessor on the best known route, -1 if none
	closed []bool    // finalized nodes

	pending   map[int]bool    // unprocessed terminal → true
	remaining []int           // unprocessed terminals, in request order
	points    []spatial.Point // positions of remaining, index-aligned

	result *Result
}

// NewSearch initializes a Search. Inputs are assumed valid; Find validates them.
func NewSearch(g *spatial.Graph, source int, terminals []int, options Options) *Search {
	n := g.Len()
	s := &Search{
		g:       g,
		options: options,
		source:  source,
		open:    frontier.New(),
		gScore:  make([]float64, n),
		fScore:  make([]float64, n),
		pred:    make([]int, n),
		closed:  make([]bool, n),
		pending: make(map[int]bool, len(terminals)),
		result: &Result{
			Source: source,
			Paths:  make(map[int]Path, len(terminals)),
			Order:  make([]int, 0, len(terminals)),
		},
	}
	for i := range s.gScore {
		s.gScore[i] = math.Inf(1)
		s.fScore[i] = math.Inf(1)
		s.pred[i] = -1
	}
	for _, t := range terminals {
		if s.pending[t] {
			continue
		}
		s.pending[t] = true
		s.remaining = append(s.remaining, t)
		node, _ := g.Node(t)
		s.points = append(s.points, node.Pos)
	}

	s.gScore[source] = 0
	s.fScore[source] = s.estimate(source)
	s.open.Push(source, s.fScore[source])

	return s
}

// Result returns the paths found so far.
func (s *Search) Result() *Result { return s.result }

// Remaining returns the terminals not yet processed, in request order.
func (s *Search) Remaining() []int {
	out := make([]int, len(s.remaining))
	copy(out, s.remaining)

	return out
}

// Run executes the main loop until all terminals are processed, the frontier
// is exhausted, or the expansion budget runs out.
func (s *Search) Run() error {
	for len(s.remaining) > 0 {
		item, ok := s.open.Pop()
		if !ok {
			return fmt.Errorf("%w: %v", ErrUnreachableTerminal, s.Remaining())
		}
		u := item.ID
		// Skip finalized nodes and entries superseded by a later push.
		if s.closed[u] || item.Score != s.fScore[u] {
			continue
		}
		if limit := s.options.MaxExpansions; limit > 0 && s.result.Expanded >= limit {
			return fmt.Errorf("%w: %d expansions, %d terminals left", ErrExpansionLimit, limit, len(s.remaining))
		}
		s.closed[u] = true
		s.result.Expanded++

		if s.pending[u] {
			s.process(u)
			if len(s.remaining) == 0 {
				return nil
			}
		}
		s.relax(u)
	}

	return nil
}

// process records the path to terminal t and removes it from every
// subsequent heuristic evaluation.
func (s *Search) process(t int) {
	s.result.Paths[t] = s.reconstruct(t)
	s.result.Order = append(s.result.Order, t)
	delete(s.pending, t)
	for i, id := range s.remaining {
		if id == t {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			s.points = append(s.points[:i], s.points[i+1:]...)
			break
		}
	}
}

// reconstruct walks predecessors from t back to the source.
func (s *Search) reconstruct(t int) Path {
	var rev Path
	for at := t; at >= 0; at = s.pred[at] {
		rev = append(rev, at)
	}
	path := make(Path, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}

	return path
}

// relax improves the neighbors of the finalized node u.
func (s *Search) relax(u int) {
	for _, e := range s.g.Neighbors(u) {
		v := e.To
		if s.closed[v] {
			continue
		}
		tentative := s.gScore[u] + e.Weight
		if tentative >= s.gScore[v] {
			continue
		}
		s.pred[v] = u
		s.gScore[v] = tentative
		s.fScore[v] = tentative + s.estimate(v)
		s.open.Push(v, s.fScore[v])
	}
}

// estimate evaluates the heuristic at node id against the remaining terminals.
func (s *Search) estimate(id int) float64 {
	node, _ := s.g.Node(id)

	return s.options.Heuristic.Estimate(node.Pos, s.points)
}
