package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ductnet/spatial"
)

// Key identifies the unordered node pair a Segment joins. Lo < Hi always.
type Key struct {
	Lo, Hi int
}

// MakeKey returns the canonical Key of the pair (a, b).
func MakeKey(a, b int) Key {
	if a > b {
		a, b = b, a
	}

	return Key{Lo: a, Hi: b}
}

// String renders the key as "lo-hi".
func (k Key) String() string { return fmt.Sprintf("%d-%d", k.Lo, k.Hi) }

// Segment is one straight duct run between two adjacent nodes. Its size is
// kept as Σr² of every radius merged into it; all derived geometry follows
// from that sum.
type Segment struct {
	Key  Key
	From spatial.Point // endpoint at Key.Lo
	To   spatial.Point // endpoint at Key.Hi

	sumSq float64
}

// newSegment creates a segment of radius r between a and b.
func newSegment(a, b int, pa, pb spatial.Point, r float64) *Segment {
	if a > b {
		pa, pb = pb, pa
	}

	return &Segment{Key: MakeKey(a, b), From: pa, To: pb, sumSq: r * r}
}

// Merge grows s so that its section area also carries a duct of radius r and
// returns the change in surface area.
func (s *Segment) Merge(r float64) float64 {
	before := s.SurfaceArea()
	s.sumSq += r * r

	return s.SurfaceArea() - before
}

// Radius in ft.
func (s *Segment) Radius() float64 { return math.Sqrt(s.sumSq) }

// Area is the cross-section area πr² in ft².
func (s *Segment) Area() float64 { return math.Pi * s.sumSq }

// Perimeter is the cross-section circumference 2πr in ft.
func (s *Segment) Perimeter() float64 { return 2 * math.Pi * s.Radius() }

// Length is the Euclidean distance between the endpoints in ft.
func (s *Segment) Length() float64 { return s.From.Euclidean(s.To) }

// Volume is Area × Length in ft³.
func (s *Segment) Volume() float64 { return s.Area() * s.Length() }

// SurfaceArea is Perimeter × Length in ft². This is the cost unit.
func (s *Segment) SurfaceArea() float64 { return s.Perimeter() * s.Length() }

// RectEquivalent returns the width and height of a rectangular duct with the
// same section area and the given width:height aspect ratio. aspect ≤ 0 is
// treated as 1.
func (s *Segment) RectEquivalent(aspect float64) (w, h float64) {
	if aspect <= 0 {
		aspect = 1
	}
	h = math.Sqrt(s.Area() / aspect)

	return aspect * h, h
}

// MergeRadii returns the radius of one duct whose section area equals the sum
// of the section areas of ducts with radii rs. The result does not depend on
// argument order.
func MergeRadii(rs ...float64) float64 {
	var sum float64
	for _, r := range rs {
		sum += r * r
	}

	return math.Sqrt(sum)
}

// RadiusFor returns the circular duct radius that moves flow (ft³/min) at
// velocity (ft/min).
func RadiusFor(flow, velocity float64) (float64, error) {
	if !positive(flow) {
		return 0, fmt.Errorf("%w: flow %v", ErrInvalidFlowParameter, flow)
	}
	if !positive(velocity) {
		return 0, fmt.Errorf("%w: velocity %v", ErrInvalidFlowParameter, velocity)
	}

	return math.Sqrt(flow / velocity / math.Pi), nil
}

// positive reports whether x is finite and > 0.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
