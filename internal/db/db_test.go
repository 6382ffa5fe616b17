package db

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := OpenDB(filepath.Join(t.TempDir(), "lattice.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// mustNode upserts a node or fails the test
func mustNode(t *testing.T, d *DB, text string, isTag bool) *Node {
	t.Helper()
	n, err := d.UpsertNode(text, isTag)
	if err != nil {
		t.Fatalf("upserting %q: %v", text, err)
	}
	return n
}

// mustEdge adds an edge and asserts it was actually inserted
func mustEdge(t *testing.T, d *DB, parentID, childID int64) {
	t.Helper()
	outcome, err := d.AddEdge(parentID, childID)
	if err != nil {
		t.Fatalf("adding edge %d -> %d: %v", parentID, childID, err)
	}
	if outcome != EdgeAdded {
		t.Fatalf("edge %d -> %d: got outcome %v, want added", parentID, childID, outcome)
	}
}

func TestHasSearchIndex_AbsentUntilRebuild(t *testing.T) {
	d := openTestDB(t)

	has, err := d.HasSearchIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("fresh db should have no search index")
	}

	if err := d.RebuildSearchIndex(); err != nil {
		t.Fatalf("rebuilding index: %v", err)
	}
	has, err = d.HasSearchIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("index should exist after rebuild")
	}
}

func TestMeta_SetGetDelete(t *testing.T) {
	d := openTestDB(t)

	v, err := d.GetMeta("marker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "" {
		t.Errorf("missing key should read empty, got %q", v)
	}

	if err := d.SetMeta("marker", "abc123"); err != nil {
		t.Fatalf("setting meta: %v", err)
	}
	v, err = d.GetMeta("marker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "abc123" {
		t.Errorf("got %q, want abc123", v)
	}

	if err := d.DeleteMeta("marker"); err != nil {
		t.Fatalf("deleting meta: %v", err)
	}
	v, err = d.GetMeta("marker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "" {
		t.Errorf("deleted key should read empty, got %q", v)
	}

	// deleting an absent key is a no-op
	if err := d.DeleteMeta("marker"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	d := openTestDB(t)

	a := mustNode(t, d, "weapons", false)
	b := mustNode(t, d, "katana", true)
	mustEdge(t, d, a.ID, b.ID)
	if _, err := d.AddAlias(b.ID, "nihonto"); err != nil {
		t.Fatalf("adding alias: %v", err)
	}

	s, err := d.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Nodes != 2 || s.Edges != 1 || s.Tags != 1 || s.Aliases != 1 {
		t.Errorf("got nodes=%d edges=%d tags=%d aliases=%d, want 2/1/1/1",
			s.Nodes, s.Edges, s.Tags, s.Aliases)
	}
	if s.SearchIndex {
		t.Error("search index should not exist yet")
	}
}
