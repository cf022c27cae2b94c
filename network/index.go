package network

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/ductnet/spatial"
)

// SegmentIndex maps unordered node pairs to their Segment. It is owned by one
// Build call and is not safe for concurrent use.
type SegmentIndex struct {
	segs map[Key]*Segment
}

// NewSegmentIndex returns an empty index.
func NewSegmentIndex() *SegmentIndex {
	return &SegmentIndex{segs: make(map[Key]*Segment)}
}

// Get returns the segment joining a and b in either direction.
func (x *SegmentIndex) Get(a, b int) (*Segment, bool) {
	s, ok := x.segs[MakeKey(a, b)]

	return s, ok
}

// Len returns the number of segments.
func (x *SegmentIndex) Len() int { return len(x.segs) }

// Add merges a duct of radius r into the segment joining a and b, creating it
// at positions pa and pb if absent. It returns the segment and the change in
// total surface area.
func (x *SegmentIndex) Add(a, b int, pa, pb spatial.Point, r float64) (*Segment, float64, error) {
	if a == b {
		return nil, 0, fmt.Errorf("%w: self pair %d", ErrSegmentMergeInconsistency, a)
	}
	key := MakeKey(a, b)
	if s, ok := x.segs[key]; ok {
		if s.Key != key {
			return nil, 0, fmt.Errorf("%w: pair %v stored as %v", ErrSegmentMergeInconsistency, key, s.Key)
		}

		return s, s.Merge(r), nil
	}
	s := newSegment(a, b, pa, pb, r)
	x.segs[key] = s

	return s, s.SurfaceArea(), nil
}

// Segments returns every segment sorted by key.
func (x *SegmentIndex) Segments() []*Segment {
	out := make([]*Segment, 0, len(x.segs))
	for _, s := range x.segs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Lo != out[j].Key.Lo {
			return out[i].Key.Lo < out[j].Key.Lo
		}

		return out[i].Key.Hi < out[j].Key.Hi
	})

	return out
}
