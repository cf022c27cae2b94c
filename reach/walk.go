package reach

import (
	"fmt"

	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/katalvlaran/ductnet/spatial"
)

// queueItem pairs a node with its depth.
type queueItem struct {
	id, depth int
}

// walker holds the mutable state of one Walk.
type walker struct {
	g     *spatial.Graph
	opts  Options
	queue *arrayqueue.Queue
	res   *Result
}

// Walk runs breadth-first search on g from start.
func Walk(g *spatial.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}

	w := &walker{
		g:     g,
		opts:  o,
		queue: arrayqueue.New(),
		res: &Result{
			Start:  start,
			Depth:  make(map[int]int),
			Parent: make(map[int]int),
		},
	}
	w.enqueue(start, 0, -1)

	return w.res, w.loop()
}

// enqueue marks id seen at depth d with the given parent (-1 for none).
func (w *walker) enqueue(id, d, parent int) {
	w.res.Depth[id] = d
	if parent >= 0 {
		w.res.Parent[id] = parent
	}
	w.queue.Enqueue(queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for !w.queue.Empty() {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		v, _ := w.queue.Dequeue()
		item := v.(queueItem)
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("reach: OnVisit error at %d: %w", item.id, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, e := range w.g.Neighbors(item.id) {
			if _, seen := w.res.Depth[e.To]; !seen {
				w.enqueue(e.To, next, item.id)
			}
		}
	}

	return nil
}

// Components labels every node with the index of its connected component.
// Components are numbered in order of their lowest node id.
func Components(g *spatial.Graph) (labels []int, count int) {
	if g == nil {
		return nil, 0
	}
	labels = make([]int, g.Len())
	for i := range labels {
		labels[i] = -1
	}
	for id := range labels {
		if labels[id] >= 0 {
			continue
		}
		res, _ := Walk(g, id)
		for _, v := range res.Order {
			labels[v] = count
		}
		count++
	}

	return labels, count
}

// Unreachable returns the terminals with no path from source, in input order.
func Unreachable(g *spatial.Graph, source int, terminals []int) ([]int, error) {
	res, err := Walk(g, source)
	if err != nil {
		return nil, err
	}
	var out []int
	for _, t := range terminals {
		if !res.Reached(t) {
			out = append(out, t)
		}
	}

	return out, nil
}
