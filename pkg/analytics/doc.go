// Package analytics computes derived node attributes over a graph snapshot.
//
// Two independent computations are provided, both full-graph scans that
// overwrite prior values on every call (nothing is incremental):
//
//   - [Influence]: eigenvector centrality with edge impact as weight, with a
//     silent fallback to degree centrality on the undirected projection when
//     the eigenvector problem is degenerate or fails to converge. Scores are
//     max-normalized into [0, 1].
//   - [Communities]: greedy modularity clustering of the undirected
//     projection, assigning 0-based integer community IDs.
//
// Both functions return score mappings that the caller merges into the store
// via Graph.SetInfluence and Graph.SetCommunities. Numerical trouble never
// propagates to the caller; only a structurally malformed projection
// surfaces as an ANALYTICS_ERROR, and that cannot happen for graphs built
// through the store's public operations.
//
// Computations must not run concurrently with graph mutation. They are
// bounded: power iteration stops after 1000 iterations and the greedy merge
// removes one community per step, so it runs at most n-1 steps.
package analytics
