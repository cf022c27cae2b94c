// Package sweep searches the heuristic weight space for the cheapest duct
// network.
//
// Every combination of (nearest, average, fermat) weights drawn from three
// inclusive ranges is an independent experiment: route with primastar.Find,
// size with network.Build, and score by total surface area. The Optimizer
// fans combinations out over a bounded errgroup and reduces the outcomes to
// the minimum-cost one.
//
// Semantics:
//
//   - Combinations are enumerated nearest-major with a stable Index.
//   - An unreachable terminal, an exhausted expansion budget or an invalid
//     flow makes that combination non-viable (Cost = +Inf); the sweep goes on.
//   - network.ErrSegmentMergeInconsistency and any unexpected error halt the
//     sweep and are returned.
//   - The winner is the lowest cost, ties broken by the lowest Index, so the
//     outcome does not depend on worker count or scheduling.
//   - When the context ends or the time budget expires no further
//     combinations are started; Result.Stopped reports it and the best
//     evaluated combination is still returned.
//
// The graph is shared read-only across workers; each evaluation owns its
// search state and segment index.
//
// Metrics: PrometheusObserver exports evaluation counts, the best cost and
// evaluation latency.
package sweep
