// Package graph provides in-memory analysis of the tag lattice: connected
// components, degree distribution, hub and orphan detection, and a composite
// health score, plus compressed archive export.
package graph

import "sort"

// NodeInfo is a lightweight node representation decoupled from store types
type NodeInfo struct {
	ID    int64
	Slug  string
	Text  string
	IsTag bool
}

// EdgeInfo is one parent -> child relation
type EdgeInfo struct {
	Parent int64
	Child  int64
}

// Snapshot holds the lattice with precomputed adjacency lists
type Snapshot struct {
	Nodes    map[int64]*NodeInfo
	Edges    []EdgeInfo
	Children map[int64][]int64
	Parents  map[int64][]int64
	Adj      map[int64][]int64 // undirected
}

// NewSnapshot builds a Snapshot from raw nodes and edges. Edges referencing
// unknown nodes are dropped.
func NewSnapshot(nodes []*NodeInfo, edges []EdgeInfo) *Snapshot {
	nodeMap := make(map[int64]*NodeInfo, len(nodes))
	children := make(map[int64][]int64)
	parents := make(map[int64][]int64)
	adj := make(map[int64][]int64)

	for _, n := range nodes {
		nodeMap[n.ID] = n
		children[n.ID] = nil // ensure entry exists
		parents[n.ID] = nil
		adj[n.ID] = nil
	}

	var kept []EdgeInfo
	for _, e := range edges {
		if _, ok := nodeMap[e.Parent]; !ok {
			continue
		}
		if _, ok := nodeMap[e.Child]; !ok {
			continue
		}
		kept = append(kept, e)
		children[e.Parent] = append(children[e.Parent], e.Child)
		parents[e.Child] = append(parents[e.Child], e.Parent)
		adj[e.Parent] = append(adj[e.Parent], e.Child)
		adj[e.Child] = append(adj[e.Child], e.Parent)
	}

	return &Snapshot{
		Nodes:    nodeMap,
		Edges:    kept,
		Children: children,
		Parents:  parents,
		Adj:      adj,
	}
}

// NodeIDs returns a sorted list of all node IDs (for deterministic output)
func (s *Snapshot) NodeIDs() []int64 {
	ids := make([]int64, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Roots returns the ids of nodes with no parent, sorted
func (s *Snapshot) Roots() []int64 {
	var roots []int64
	for _, id := range s.NodeIDs() {
		if len(s.Parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}
