package primastar

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ductnet/spatial"
)

// Heuristic estimates how far candidate is from finishing the tree, given the
// positions of the terminals that are still unprocessed. remaining is owned
// by the search and must not be retained or modified.
type Heuristic interface {
	Estimate(candidate spatial.Point, remaining []spatial.Point) float64
}

// Func adapts an ordinary function to the Heuristic interface.
type Func func(candidate spatial.Point, remaining []spatial.Point) float64

// Estimate calls f.
func (f Func) Estimate(candidate spatial.Point, remaining []spatial.Point) float64 {
	return f(candidate, remaining)
}

// Zero never guides the search. With it Find degrades to a pure
// multi-terminal Prim growth from the source.
type Zero struct{}

// Estimate always returns 0.
func (Zero) Estimate(spatial.Point, []spatial.Point) float64 { return 0 }

// NearestTerminal scores a candidate by its weighted Manhattan distance to the
// closest remaining terminal.
type NearestTerminal struct {
	Weight float64
}

// Validate rejects a negative or non-finite Weight with ErrInvalidHeuristic.
func (h NearestTerminal) Validate() error {
	return checkWeight("nearest", h.Weight)
}

// Estimate returns Weight × NearestDistance.
func (h NearestTerminal) Estimate(candidate spatial.Point, remaining []spatial.Point) float64 {
	if h.Weight == 0 {
		return 0
	}

	return h.Weight * NearestDistance(candidate, remaining)
}

// Composite is the three-term heuristic. Each weight scales one term and must
// be finite and non-negative (Find checks this through Validate); all-zero
// weights behave exactly like Zero.
type Composite struct {
	Nearest float64 // weight of the nearest-terminal distance
	Average float64 // weight of the mean terminal distance
	Fermat  float64 // weight of the distance to the median of candidate and two nearest terminals
}

// Estimate returns the weighted sum of the three terms. Terms with a zero
// weight are not evaluated.
func (h Composite) Estimate(candidate spatial.Point, remaining []spatial.Point) float64 {
	var sum float64
	if h.Nearest != 0 {
		sum += h.Nearest * NearestDistance(candidate, remaining)
	}
	if h.Average != 0 {
		sum += h.Average * AverageDistance(candidate, remaining)
	}
	if h.Fermat != 0 {
		sum += h.Fermat * FermatDistance(candidate, remaining)
	}

	return sum
}

// Validate rejects a negative or non-finite weight with ErrInvalidHeuristic.
func (h Composite) Validate() error {
	if err := checkWeight("nearest", h.Nearest); err != nil {
		return err
	}
	if err := checkWeight("average", h.Average); err != nil {
		return err
	}

	return checkWeight("fermat", h.Fermat)
}

func checkWeight(term string, w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %s=%g", ErrInvalidHeuristic, term, w)
	}

	return nil
}

// IsZero reports whether every weight is zero.
func (h Composite) IsZero() bool {
	return h.Nearest == 0 && h.Average == 0 && h.Fermat == 0
}

// String renders the weights as "n=… a=… f=…".
func (h Composite) String() string {
	return fmt.Sprintf("n=%g a=%g f=%g", h.Nearest, h.Average, h.Fermat)
}

// NearestDistance returns the minimum Manhattan distance from p to any point
// of remaining, or 0 if remaining is empty.
func NearestDistance(p spatial.Point, remaining []spatial.Point) float64 {
	if len(remaining) == 0 {
		return 0
	}
	i, _ := nearestTwo(p, remaining)

	return p.Manhattan(remaining[i])
}

// AverageDistance returns the mean Manhattan distance from p to the points of
// remaining, or 0 if remaining is empty.
func AverageDistance(p spatial.Point, remaining []spatial.Point) float64 {
	if len(remaining) == 0 {
		return 0
	}
	var sum float64
	for _, q := range remaining {
		sum += p.Manhattan(q)
	}

	return sum / float64(len(remaining))
}

// FermatDistance returns the Manhattan distance from p to Median3 of p and
// its two nearest remaining points, or 0 with fewer than two points remaining.
func FermatDistance(p spatial.Point, remaining []spatial.Point) float64 {
	if len(remaining) < 2 {
		return 0
	}
	i, j := nearestTwo(p, remaining)

	return p.Manhattan(Median3(p, remaining[i], remaining[j]))
}

// Median3 returns the coordinate-wise median of three points.
func Median3(a, b, c spatial.Point) spatial.Point {
	return spatial.Point{
		X: median(a.X, b.X, c.X),
		Y: median(a.Y, b.Y, c.Y),
		Z: median(a.Z, b.Z, c.Z),
	}
}

func median(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}

	return b
}

// nearestTwo returns the indices of the nearest and second-nearest points of
// remaining to p. Ties go to the lower index. j is -1 when len(remaining) < 2.
func nearestTwo(p spatial.Point, remaining []spatial.Point) (i, j int) {
	i, j = -1, -1
	var di, dj float64
	for k, q := range remaining {
		d := p.Manhattan(q)
		switch {
		case i < 0 || d < di:
			j, dj = i, di
			i, di = k, d
		case j < 0 || d < dj:
			j, dj = k, d
		}
	}

	return i, j
}
