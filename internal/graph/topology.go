package graph

import "sort"

// HubNode is a node with high connectivity
type HubNode struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Degree    int    `json:"degree"`
	InDegree  int    `json:"in_degree"`
	OutDegree int    `json:"out_degree"`
}

// DegreeBucket is one bucket in the degree histogram
type DegreeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ComponentInfo names one connected component after the first of its root
// categories, so a fragmented lattice reads as "weapons (120), armor (45)"
// instead of anonymous id sets.
type ComponentInfo struct {
	Label string `json:"label"`
	Size  int    `json:"size"`
}

// TopologyReport contains topology analysis results for the lattice
type TopologyReport struct {
	TotalNodes         int             `json:"total_nodes"`
	TotalEdges         int             `json:"total_edges"`
	TagCount           int             `json:"tag_count"`
	CategoryCount      int             `json:"category_count"`
	DualCount          int             `json:"dual_count"` // both tag and parent
	RootCount          int             `json:"root_count"`
	NumComponents      int             `json:"num_components"`
	LargestComponent   int             `json:"largest_component"`
	SmallestComponent  int             `json:"smallest_component"`
	Components         []ComponentInfo `json:"components"`
	OrphanCount        int             `json:"orphan_count"`
	OrphanSlugs        []string        `json:"orphan_slugs"`
	EmptyCategoryCount int             `json:"empty_category_count"`
	EmptyCategorySlugs []string        `json:"empty_category_slugs"`
	DegreeHistogram    []DegreeBucket  `json:"degree_histogram"`
	Hubs               []HubNode       `json:"hubs"`
}

// ComputeTopology analyzes lattice topology: components, orphans, empty
// categories, degree distribution, hubs, and tag coverage counts. An empty
// category is a non-tag node with no children — unreachable dead weight for
// a tag browser.
func ComputeTopology(snap *Snapshot, hubThreshold, topN int) *TopologyReport {
	totalNodes := len(snap.Nodes)
	totalEdges := len(snap.Edges)

	if totalNodes == 0 {
		return &TopologyReport{
			DegreeHistogram: defaultHistogram(),
		}
	}

	nodeIDs := snap.NodeIDs()

	var tagCount, categoryCount, dualCount int
	for _, id := range nodeIDs {
		n := snap.Nodes[id]
		hasChildren := len(snap.Children[id]) > 0
		if n.IsTag {
			tagCount++
			if hasChildren {
				dualCount++
			}
		}
		if hasChildren {
			categoryCount++
		}
	}

	roots := snap.Roots()
	rootSet := make(map[int64]bool, len(roots))
	for _, id := range roots {
		rootSet[id] = true
	}

	// Connected components via UnionFind, each labeled after the first of
	// its root categories. Every component of an acyclic lattice has at
	// least one parentless node, so the root fallback never fires except
	// for degenerate data.
	uf := NewUnionFind(nodeIDs)
	for _, e := range snap.Edges {
		uf.Union(e.Parent, e.Child)
	}
	components := uf.Components()
	numComponents := len(components)
	largest, smallest := 0, totalNodes
	var labeled []ComponentInfo
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
		if len(c) < smallest {
			smallest = len(c)
		}
		label, rootLabel := "", ""
		for _, id := range c {
			slug := snap.Nodes[id].Slug
			if label == "" || slug < label {
				label = slug
			}
			if rootSet[id] && (rootLabel == "" || slug < rootLabel) {
				rootLabel = slug
			}
		}
		if rootLabel != "" {
			label = rootLabel
		}
		labeled = append(labeled, ComponentInfo{Label: label, Size: len(c)})
	}
	sort.Slice(labeled, func(i, j int) bool {
		if labeled[i].Size != labeled[j].Size {
			return labeled[i].Size > labeled[j].Size
		}
		return labeled[i].Label < labeled[j].Label
	})
	if len(labeled) > topN {
		labeled = labeled[:topN]
	}

	// Orphans: degree == 0
	var orphans []string
	for _, id := range nodeIDs {
		if len(snap.Adj[id]) == 0 {
			orphans = append(orphans, snap.Nodes[id].Slug)
		}
	}
	orphanCount := len(orphans)
	sort.Strings(orphans)
	if len(orphans) > topN {
		orphans = orphans[:topN]
	}

	// Empty categories: non-tag leaves
	var empties []string
	for _, id := range nodeIDs {
		n := snap.Nodes[id]
		if !n.IsTag && len(snap.Children[id]) == 0 {
			empties = append(empties, n.Slug)
		}
	}
	emptyCount := len(empties)
	sort.Strings(empties)
	if len(empties) > topN {
		empties = empties[:topN]
	}

	// Degree histogram (log-scale buckets)
	buckets := [7]int{}
	for _, id := range nodeIDs {
		buckets[degreeBucket(len(snap.Adj[id]))]++
	}
	histogram := defaultHistogram()
	for i := range histogram {
		histogram[i].Count = buckets[i]
	}

	// Hubs: degree > threshold
	var hubs []HubNode
	for _, id := range nodeIDs {
		degree := len(snap.Adj[id])
		if degree > hubThreshold {
			hubs = append(hubs, HubNode{
				ID:        id,
				Slug:      snap.Nodes[id].Slug,
				Degree:    degree,
				InDegree:  len(snap.Parents[id]),
				OutDegree: len(snap.Children[id]),
			})
		}
	}
	sort.Slice(hubs, func(i, j int) bool { return hubs[i].Degree > hubs[j].Degree })
	if len(hubs) > topN {
		hubs = hubs[:topN]
	}

	return &TopologyReport{
		TotalNodes:         totalNodes,
		TotalEdges:         totalEdges,
		TagCount:           tagCount,
		CategoryCount:      categoryCount,
		DualCount:          dualCount,
		RootCount:          len(roots),
		NumComponents:      numComponents,
		LargestComponent:   largest,
		SmallestComponent:  smallest,
		Components:         labeled,
		OrphanCount:        orphanCount,
		OrphanSlugs:        orphans,
		EmptyCategoryCount: emptyCount,
		EmptyCategorySlugs: empties,
		DegreeHistogram:    histogram,
		Hubs:               hubs,
	}
}

func defaultHistogram() []DegreeBucket {
	return []DegreeBucket{
		{Label: "0"}, {Label: "1"}, {Label: "2-3"},
		{Label: "4-7"}, {Label: "8-15"}, {Label: "16-31"}, {Label: "32+"},
	}
}

func degreeBucket(degree int) int {
	switch {
	case degree == 0:
		return 0
	case degree == 1:
		return 1
	case degree <= 3:
		return 2
	case degree <= 7:
		return 3
	case degree <= 15:
		return 4
	case degree <= 31:
		return 5
	default:
		return 6
	}
}
