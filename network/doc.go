// Package network turns the source→terminal paths of a routing search into a
// sized duct network: one Segment per distinct node pair, each with a
// circular section large enough for the flow it carries.
//
// Sizing:
//
//   - A terminal receives its region's required flow divided equally among
//     all terminals that share the region.
//   - Its section area is flow / velocity, with the zone velocity taking
//     precedence over the request velocity; radius = sqrt(area / π).
//
// Merging:
//
//   - Each path is walked from its terminal back to the source. A pair that
//     already has a Segment grows to radius sqrt(r_old² + r_added²), which
//     keeps the total section area (and therefore flow at a fixed velocity)
//     constant. Segments accumulate Σr², so the order of merges never
//     changes the final radius.
//   - The running cost subtracts the old surface area and adds the new one.
//
// Cost is the sum of segment surface areas (perimeter × length).
//
// Errors:
//
//   - ErrInvalidFlowParameter: non-positive or non-finite flow or velocity, or
//     a terminal outside every region. A single-node path (terminal == source)
//     carries no duct and is skipped when its terminal has no region.
//   - ErrSegmentMergeInconsistency: the segment index returned a segment for
//     the wrong node pair; indicates a bug and must halt the caller.
package network
