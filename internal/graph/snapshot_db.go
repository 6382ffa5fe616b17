package graph

import "taglattice/internal/db"

// FromDB loads a Snapshot of the whole lattice from the store
func FromDB(d *db.DB) (*Snapshot, error) {
	dbNodes, err := d.AllNodes()
	if err != nil {
		return nil, err
	}
	dbEdges, err := d.AllEdges()
	if err != nil {
		return nil, err
	}

	nodes := make([]*NodeInfo, 0, len(dbNodes))
	for _, n := range dbNodes {
		nodes = append(nodes, &NodeInfo{
			ID:    n.ID,
			Slug:  n.Slug,
			Text:  n.Text,
			IsTag: n.IsTag,
		})
	}

	edges := make([]EdgeInfo, 0, len(dbEdges))
	for _, e := range dbEdges {
		edges = append(edges, EdgeInfo{Parent: e.ParentID, Child: e.ChildID})
	}

	return NewSnapshot(nodes, edges), nil
}
