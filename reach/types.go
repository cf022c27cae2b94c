package reach

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("reach: graph is nil")

	// ErrStartNotFound is returned when the start id is not a node.
	ErrStartNotFound = errors.New("reach: start node not found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")
)

// Option configures Walk.
type Option func(*Options)

// Options holds the parameters of Walk.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// OnVisit is called for each visited node with its hop depth. A non-nil
	// error stops the walk.
	OnVisit func(id, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns a background context, no depth limit and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(int, int) error { return nil },
	}
}

// WithContext sets the context checked once per dequeued node.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers the visit hook.
func WithOnVisit(fn func(id, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to d hops. d == 0 means no limit; d < 0 is
// recorded and surfaced as ErrOptionViolation.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a Walk.
type Result struct {
	Start  int
	Order  []int       // nodes in visit order
	Depth  map[int]int // node → hops from Start
	Parent map[int]int // node → predecessor; Start has none
}

// Reached reports whether id was visited.
func (r *Result) Reached(id int) bool {
	_, ok := r.Depth[id]
	return ok
}

// PathTo returns the hop-shortest node sequence from Start to dest, or nil
// if dest was not reached.
func (r *Result) PathTo(dest int) []int {
	if !r.Reached(dest) {
		return nil
	}
	var path []int
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
