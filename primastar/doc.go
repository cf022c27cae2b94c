// Package primastar grows a single tree from a source node to a set of
// terminal nodes over a spatial.Graph, combining Prim-style growth from the
// source with an A*-style heuristic that pulls the search toward the
// terminals still waiting for a connection.
//
// Algorithm:
//
//  1. Push the source with g=0 and f=h(source).
//  2. Pop the open node with the lowest f. Already finalized nodes and
//     entries superseded by a later push are skipped.
//  3. If the node is an unprocessed terminal, walk the predecessor chain back
//     to the source, record the path and mark the terminal processed. The
//     processed terminal drops out of every heuristic term, so growth bends
//     toward the terminals that remain. Stop once all are processed.
//  4. Relax every edge: on a strict improvement of g, record the predecessor,
//     set f = g + h(neighbor) and push the neighbor.
//  5. An empty frontier with terminals left returns ErrUnreachableTerminal
//     together with the partial Result.
//
// Heuristics:
//
//   - Zero: no guidance; the search is a pure multi-terminal Prim/Dijkstra growth.
//   - NearestTerminal: weighted Manhattan distance to the nearest remaining terminal.
//   - Composite: weighted sum of nearest distance, average distance, and the
//     distance to the coordinate-wise median of the candidate and its two
//     nearest remaining terminals (a cheap Fermat-point stand-in).
//
// The composite heuristic is not admissible, so the tree is a heuristic
// approximation and not a minimum Steiner tree.
//
// Complexity:
//
//   - Time:  O((V + E) log V + V·T) where T is the number of terminals
//     (every heuristic evaluation scans the remaining terminals).
//   - Space: O(V + E).
//
// Each Find call allocates its own Search state, so concurrent calls on the
// same read-only graph are safe.
//
// Errors:
//
//   - ErrNilGraph, ErrSourceNotFound, ErrTerminalNotFound, ErrNoTerminals: invalid input.
//   - ErrUnreachableTerminal: some terminals cannot be reached (recoverable).
//   - ErrExpansionLimit: WithMaxExpansions budget exhausted.
package primastar
