// Package graph implements the in-memory directed graph of entities and
// relationships at the core of netintel.
//
// The [Graph] type owns the node and edge collections and enforces the
// structural invariants of the model:
//
//   - node identity is the trimmed, non-empty ID; upserting an existing ID
//     replaces the record rather than duplicating it
//   - at most one edge exists per ordered (source, target) pair; repeated
//     writes overwrite attributes (last write wins)
//   - edge upserts auto-create bare nodes for unknown endpoints
//   - edge impact is clamped into [0, 1] on every write
//   - deleting a node removes every incident edge
//
// Derived attributes (influence, community) live on the node records but are
// computed externally by the analytics package and merged back in through
// [Graph.SetInfluence] and [Graph.SetCommunities]. Structural upserts clear
// them; callers recompute after mutating the graph.
//
// The [Document] types define the versioned serialization format shared by
// file persistence, database storage and API payload construction. See
// [ToDocument] and [FromDocument] for the round-trip contract.
//
// Graph performs no internal locking. A single logical instance is live per
// process and concurrent callers must serialize mutations externally.
package graph
