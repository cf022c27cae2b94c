package primastar

import (
	"errors"
)

// Sentinel errors returned by Find.
var (
	// ErrNilGraph indicates a nil *spatial.Graph.
	ErrNilGraph = errors.New("primastar: graph is nil")

	// ErrSourceNotFound indicates the source id is not a node of the graph.
	ErrSourceNotFound = errors.New("primastar: source node not found")

	// ErrTerminalNotFound indicates a terminal id is not a node of the graph.
	ErrTerminalNotFound = errors.New("primastar: terminal node not found")

	// ErrNoTerminals indicates an empty terminal set.
	ErrNoTerminals = errors.New("primastar: no terminals to connect")

	// ErrUnreachableTerminal indicates the frontier emptied before every
	// terminal was reached. Callers should treat the attempt as infinitely
	// expensive and carry on; Find returns the partial Result alongside it.
	ErrUnreachableTerminal = errors.New("primastar: terminal unreachable from source")

	// ErrExpansionLimit indicates the MaxExpansions budget ran out.
	ErrExpansionLimit = errors.New("primastar: expansion limit reached")

	// ErrInvalidHeuristic indicates a heuristic weight that is negative or
	// not finite.
	ErrInvalidHeuristic = errors.New("primastar: invalid heuristic weight")
)

// Path is an ordered sequence of node ids from the source to one terminal, inclusive.
type Path []int

// Source returns the first node of p, or -1 for an empty path.
func (p Path) Source() int {
	if len(p) == 0 {
		return -1
	}

	return p[0]
}

// Terminal returns the last node of p, or -1 for an empty path.
func (p Path) Terminal() int {
	if len(p) == 0 {
		return -1
	}

	return p[len(p)-1]
}

// Hops returns the number of edges along p.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}

	return len(p) - 1
}

// Result holds the paths found by one Find call.
type Result struct {
	Source   int          // source node id
	Paths    map[int]Path // terminal id → path from Source
	Order    []int        // terminals in the order they were reached
	Expanded int          // nodes finalized by the search
}

// Reached reports whether terminal t has a path.
func (r *Result) Reached(t int) bool {
	_, ok := r.Paths[t]

	return ok
}

// Ordered returns the paths in the order their terminals were reached.
func (r *Result) Ordered() []Path {
	out := make([]Path, 0, len(r.Order))
	for _, t := range r.Order {
		out = append(out, r.Paths[t])
	}

	return out
}

// Options configures Find.
//
// Heuristic     – scoring function; nil means Zero{}.
// MaxExpansions – stop after finalizing this many nodes (0 = unlimited).
type Options struct {
	Heuristic     Heuristic
	MaxExpansions int
}

// Option is a functional option for Find.
type Option func(*Options)

// WithHeuristic sets the heuristic used to order the frontier.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithMaxExpansions caps the number of finalized nodes. n ≤ 0 means unlimited.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// DefaultOptions returns Options for a pure Prim growth: Zero heuristic, no cap.
func DefaultOptions() Options {
	return Options{
		Heuristic:     Zero{},
		MaxExpansions: 0,
	}
}
