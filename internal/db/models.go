package db

// Node is a row in the nodes table: a category, a usable tag, or both.
// IsTag is monotonic — upserts only ever promote it from false to true.
type Node struct {
	ID    int64   `json:"id"`
	Slug  string  `json:"slug"`
	Text  string  `json:"text"`
	IsTag bool    `json:"is_tag"`
	Extra *string `json:"extra,omitempty"`
}

// Edge is a directed parent -> child relation between two nodes
type Edge struct {
	ParentID int64 `json:"parent_id"`
	ChildID  int64 `json:"child_id"`
}

// Alias is an alternate spelling bound to one node, used to widen search recall
type Alias struct {
	NodeID int64  `json:"node_id"`
	Slug   string `json:"alias_slug"`
	Text   string `json:"alias_text"`
}

// SearchHit is one merged search result, embedding the matched node so
// callers read hit.Slug / hit.Text directly. Match names the strategy
// that produced the kept score: "exact", "prefix", or "fts".
type SearchHit struct {
	Node     `json:"node"`
	Score    float64 `json:"score"`
	Match    string  `json:"match"`
	BestPath string  `json:"best_path,omitempty"`
}
