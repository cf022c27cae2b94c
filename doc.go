// Package ductnet routes and sizes air-distribution duct networks through
// building grids.
//
// A building is described as a grid of cells: walls block, voids carry ducts
// but need no air, and every other marker names a space (region) with an air
// change rate. ductnet connects one supply source to a set of terminal cells,
// sizes every duct run for the flow it carries and searches heuristic weights
// for the network with the least duct surface.
//
// Packages:
//
//	spatial/   grid → graph construction, regions, zones and required flows
//	frontier/  stable minimum-priority queue for the search
//	primastar/ multi-terminal Prim growth ordered by an A*-style heuristic
//	network/   segment merging, radius sizing and surface-area cost
//	sweep/     concurrent weight-grid search with metrics and observers
//	reach/     breadth-first reachability and connected components
//	request/   TOML/YAML request files with environment overrides
//
// Quick ASCII example:
//
//	S . A
//	. # .
//	. . B
//
// routes S→A along the top row and reaches B through A's column, so the two
// branches share and merge their first two runs.
//
//	go install github.com/katalvlaran/ductnet/cmd/ductnet@latest
package ductnet
