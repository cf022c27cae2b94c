// Package spatial defines core types, options, and sentinel errors
// for building routing graphs over plan and volume grids.
package spatial

import (
	"errors"
	"fmt"
	"math"
)

// ErrGridConstruction is the parent of every error reported for a malformed grid.
// Use errors.Is(err, ErrGridConstruction) to detect any of them.
var ErrGridConstruction = errors.New("spatial: malformed grid")

// Sentinel errors for grid construction. Each wraps ErrGridConstruction.
var (
	// ErrEmptyGrid indicates the input has no levels, rows or columns.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have at least one level, row and column", ErrGridConstruction)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrGridConstruction)
	// ErrLevelMismatch indicates levels with different row or column counts.
	ErrLevelMismatch = fmt.Errorf("%w: all levels must have the same shape", ErrGridConstruction)
	// ErrBadLevel indicates a level whose top is not above its bottom.
	ErrBadLevel = fmt.Errorf("%w: level top must be above level bottom", ErrGridConstruction)
	// ErrBadCellSize indicates a non-positive cell dimension.
	ErrBadCellSize = fmt.Errorf("%w: cell dimensions must be positive", ErrGridConstruction)
)

// Sentinel errors for manual graph construction and lookups.
var (
	// ErrNodeNotFound indicates an id outside the graph.
	ErrNodeNotFound = errors.New("spatial: node not found")
	// ErrNegativeWeight indicates an edge weight below zero (or NaN).
	ErrNegativeWeight = errors.New("spatial: edge weight must be non-negative")
	// ErrEmptyRegionID indicates a region or zone registered without an id.
	ErrEmptyRegionID = errors.New("spatial: region id is empty")
)

// Point is a position in feet. Plan-mode nodes have Z == 0.
type Point struct {
	X, Y, Z float64
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y) + math.Abs(p.Z-q.Z)
}

// Euclidean returns the straight-line distance between p and q.
func (p Point) Euclidean(q Point) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// CellRef addresses one grid cell. Level is always 0 in plan mode.
type CellRef struct {
	Level, Row, Col int
}

// String renders the cell as "level/row/col".
func (c CellRef) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Level, c.Row, c.Col)
}

// Node is a traversable cell. It is immutable once added to a Graph.
type Node struct {
	ID     int     // dense id, equal to the node's index in the Graph
	Pos    Point   // cell centre
	Cell   CellRef // originating cell; zero value for manually added nodes
	Region string  // owning region id, "" for voids
	Volume float64 // cell volume in cubic feet
	Dim    int     // 2 for plan nodes, 3 for volume nodes
}

// Edge is one directed adjacency entry. The reverse entry always exists.
type Edge struct {
	To     int
	Weight float64
}

// Region is a named group of nodes sharing one required flow rate (a "space").
type Region struct {
	ID         string
	Nodes      []int
	ChangeRate float64 // air changes per hour
	Zone       string  // owning zone id, "" if none
	// FlowOverride, when positive, replaces the volume-derived flow.
	FlowOverride float64
}

// Zone is a named group of regions supplied at a shared target velocity.
type Zone struct {
	ID             string
	TargetVelocity float64 // feet per minute; 0 defers to the request velocity
}

// WeightFunc computes the weight of the edge between two adjacent nodes.
type WeightFunc func(a, b Node) float64

// UnitWeight gives every edge weight 1 (the legacy plan mode).
func UnitWeight(Node, Node) float64 { return 1 }

// EuclideanWeight weighs an edge by the distance between its endpoint positions.
func EuclideanWeight(a, b Node) float64 { return a.Pos.Euclidean(b.Pos) }

// Level is one horizontal slice of a volume grid.
type Level struct {
	Bottom, Top float64    // elevation bounds in feet
	Rows        [][]string // Rows[row][col] cell markers
}

// GridOptions contains tunable parameters for grid construction.
type GridOptions struct {
	// CellWidth and CellDepth are the x and y extents of a cell in feet.
	CellWidth, CellDepth float64
	// Height is the cell height used for volumes in plan mode.
	Height float64
	// Block and Void are the impassable and region-less markers.
	Block, Void string
	// Weight overrides the mode's default edge weight function when non-nil.
	Weight WeightFunc
	// ChangeRates maps region id to air changes per hour.
	ChangeRates map[string]float64
	// RegionZones maps region id to zone id.
	RegionZones map[string]string
	// Zones lists the zones to register on the graph.
	Zones []Zone
}

// DefaultGridOptions returns GridOptions with 1×1×1 ft cells,
// Block="#", Void="." and the mode's default weight function.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		CellWidth: 1,
		CellDepth: 1,
		Height:    1,
		Block:     "#",
		Void:      ".",
	}
}
