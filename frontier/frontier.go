package frontier

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// Item is one frontier entry.
type Item struct {
	ID    int     // node id
	Score float64 // priority; lower leaves first
	seq   uint64  // insertion order, breaks score ties
}

// Frontier is a stable minimum-priority queue of node ids.
// The zero value is not usable; call New. A Frontier is not safe for
// concurrent use; each search owns its own.
type Frontier struct {
	q   *priorityqueue.Queue
	seq uint64
}

// New returns an empty Frontier.
func New() *Frontier {
	return &Frontier{q: priorityqueue.NewWith(byScoreThenSeq)}
}

// byScoreThenSeq orders items by ascending score, then by insertion order.
func byScoreThenSeq(a, b interface{}) int {
	x, y := a.(Item), b.(Item)
	switch {
	case x.Score < y.Score:
		return -1
	case x.Score > y.Score:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	default:
		return 0
	}
}

// Push inserts id with the given score.
// Complexity: O(log n).
func (f *Frontier) Push(id int, score float64) {
	f.q.Enqueue(Item{ID: id, Score: score, seq: f.seq})
	f.seq++
}

// Pop removes and returns the entry with the lowest score.
// ok is false when the frontier is empty.
// Complexity: O(log n).
func (f *Frontier) Pop() (Item, bool) {
	v, ok := f.q.Dequeue()
	if !ok {
		return Item{}, false
	}

	return v.(Item), true
}

// Peek returns the entry Pop would return without removing it.
func (f *Frontier) Peek() (Item, bool) {
	v, ok := f.q.Peek()
	if !ok {
		return Item{}, false
	}

	return v.(Item), true
}

// Len returns the number of entries, stale ones included.
func (f *Frontier) Len() int { return f.q.Size() }

// Empty reports whether the frontier holds no entries.
func (f *Frontier) Empty() bool { return f.q.Empty() }

// Clear drops every entry. The tie-break sequence keeps counting.
func (f *Frontier) Clear() { f.q.Clear() }
