// Package frontier implements the open set of a best-first graph search: a
// minimum-priority queue of node ids keyed by a score that the caller may
// re-issue as it improves.
//
// What:
//
//   - Push(id, score) inserts an entry in O(log n).
//   - Pop() removes the entry with the lowest score in O(log n).
//   - Entries with equal scores leave in insertion order.
//
// The frontier does not deduplicate ids. Searches use the "lazy decrease-key"
// pattern: push a fresh entry whenever a node's score improves and skip the
// stale entries when they surface.
//
// Storage is a binary heap from github.com/emirpasic/gods ordered by
// (score, sequence number).
package frontier
