package db

import "sort"

const (
	// maxBreadcrumbDepth bounds the ascent when building a breadcrumb chain.
	maxBreadcrumbDepth = 50
	// defaultSubtreeDepth is the descent bound when the caller passes none.
	defaultSubtreeDepth = 50
)

// GetRoots returns nodes with no parent, ordered by text. limit <= 0 means no limit.
func (d *DB) GetRoots(limit int) ([]Node, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.conn.Query(`
		SELECT `+nodeColumns+` FROM nodes n
		WHERE NOT EXISTS (SELECT 1 FROM edges e WHERE e.child_id = n.id)
		ORDER BY n.text LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// GetChildren returns the direct children of a node, ordered by text
func (d *DB) GetChildren(id int64) ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT n.id, n.slug, n.text, n.is_tag, n.extra
		FROM edges e JOIN nodes n ON n.id = e.child_id
		WHERE e.parent_id = ?
		ORDER BY n.text
	`, id)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// GetParents returns the direct parents of a node, ordered by text
func (d *DB) GetParents(id int64) ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT n.id, n.slug, n.text, n.is_tag, n.extra
		FROM edges e JOIN nodes n ON n.id = e.parent_id
		WHERE e.child_id = ?
		ORDER BY n.text
	`, id)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// GetSiblings returns the union of children of every parent of id, excluding
// id itself, deduplicated and ordered by text.
func (d *DB) GetSiblings(id int64) ([]Node, error) {
	rows, err := d.conn.Query(`
		SELECT DISTINCT n.id, n.slug, n.text, n.is_tag, n.extra
		FROM edges pe
		JOIN edges ce ON ce.parent_id = pe.parent_id
		JOIN nodes n ON n.id = ce.child_id
		WHERE pe.child_id = ?1 AND ce.child_id <> ?1
		ORDER BY n.text
	`, id)
	if err != nil {
		return nil, err
	}
	return collectNodes(rows)
}

// GetBreadcrumb returns one root-to-node ascent chain, root first, including
// the node itself. Not guaranteed shortest. The visited set stops a
// multi-parent lattice from revisiting an ancestor already on the chain; the
// depth bound stops runaway ascent. Unknown ids yield an empty chain.
func (d *DB) GetBreadcrumb(id int64) ([]Node, error) {
	node, err := d.GetNodeByID(id)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return []Node{}, nil
	}

	chain := []Node{*node}
	visited := map[int64]bool{id: true}
	current := id
	for depth := 0; depth < maxBreadcrumbDepth; depth++ {
		parents, err := d.GetParents(current)
		if err != nil {
			return nil, err
		}
		var next *Node
		for i := range parents {
			if !visited[parents[i].ID] {
				next = &parents[i]
				break
			}
		}
		if next == nil {
			break
		}
		visited[next.ID] = true
		chain = append(chain, *next)
		current = next.ID
	}

	// built node-first, flip to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// GetSubtree returns the descendants of id reachable within maxDepth hops,
// deduplicated by id even when multiple descent paths reach the same node,
// ordered by text. maxDepth <= 0 uses the default bound.
func (d *DB) GetSubtree(id int64, maxDepth int) ([]Node, error) {
	if maxDepth <= 0 {
		maxDepth = defaultSubtreeDepth
	}

	seen := map[int64]bool{id: true}
	frontier := []int64{id}
	var result []Node
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []int64
		for _, cur := range frontier {
			children, err := d.GetChildren(cur)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				if seen[c.ID] {
					continue
				}
				seen[c.ID] = true
				result = append(result, c)
				next = append(next, c.ID)
			}
		}
		frontier = next
	}

	sortNodesByText(result)
	return result, nil
}

// GetRelatedSimple returns a discovery set of nearby nodes: siblings plus
// cousins (children of grandparents), excluding the node itself, ordered by
// text and capped at limit.
func (d *DB) GetRelatedSimple(id int64, limit int) ([]Node, error) {
	related := make(map[int64]Node)

	siblings, err := d.GetSiblings(id)
	if err != nil {
		return nil, err
	}
	for _, s := range siblings {
		related[s.ID] = s
	}

	parents, err := d.GetParents(id)
	if err != nil {
		return nil, err
	}
	grandparents := make(map[int64]bool)
	for _, p := range parents {
		gps, err := d.GetParents(p.ID)
		if err != nil {
			return nil, err
		}
		for _, gp := range gps {
			grandparents[gp.ID] = true
		}
	}
	for gp := range grandparents {
		cousins, err := d.GetChildren(gp)
		if err != nil {
			return nil, err
		}
		for _, c := range cousins {
			if c.ID == id {
				continue
			}
			related[c.ID] = c
		}
	}

	result := make([]Node, 0, len(related))
	for _, n := range related {
		result = append(result, n)
	}
	sortNodesByText(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func sortNodesByText(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Text != nodes[j].Text {
			return nodes[i].Text < nodes[j].Text
		}
		return nodes[i].Slug < nodes[j].Slug
	})
}
