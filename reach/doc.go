// Package reach provides breadth-first reachability over a spatial.Graph:
// hop distances and parent links from one start node, connected components,
// and the terminals a source cannot reach.
//
// Walk explores nodes in increasing hop count from the start, with optional
// depth limit, visit hook and context cancellation. Edge weights are ignored.
//
// Complexity: O(V + E) time and O(V) memory per Walk; Components is O(V + E).
//
// Errors:
//
//   - ErrGraphNil, ErrStartNotFound for invalid input.
//   - ErrOptionViolation for a negative depth limit.
//   - Any error returned by the visit hook, wrapped.
//   - ctx.Err() when the context is cancelled.
package reach
