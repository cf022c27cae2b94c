// Package spatial treats a 2D plan or a 3D stack of levels as a weighted
// adjacency graph over traversable cells, ready for duct routing.
//
// What:
//
//   - Graph is an adjacency list keyed by integer node id. Every physical
//     adjacency is stored twice, once from each endpoint.
//   - BuildPlan turns a [][]string plan into a 4-connected graph with unit
//     edge weights (the legacy 2D mode).
//   - BuildVolume turns a stack of Levels into a 6-connected graph whose edge
//     weights are Euclidean distances between cell centres.
//   - Region groups the cells of one space and derives its required flow
//     from cell volumes and an air-change rate: Σ volume × rate / 60.
//   - Zone groups regions that share a target flow velocity.
//
// Cell markers:
//
//   - GridOptions.Block (default "#") marks an impassable block.
//   - GridOptions.Void (default ".") marks a traversable cell outside any region.
//   - "" or " " marks an absent cell.
//   - any other marker is the id of the Region the cell belongs to.
//
// Complexity:
//
//   - BuildPlan / BuildVolume: O(L×R×C) time and memory.
//   - Neighbors: O(1).
//
// Errors:
//
//   - ErrGridConstruction: parent of every malformed-grid error below.
//   - ErrEmptyGrid: no levels, rows or columns.
//   - ErrNonRectangular: rows of differing lengths.
//   - ErrLevelMismatch: levels of differing shape.
//   - ErrBadLevel: level top not above its bottom.
//   - ErrBadCellSize: non-positive cell width, depth or height.
//   - ErrNodeNotFound, ErrNegativeWeight: manual graph construction.
package spatial
