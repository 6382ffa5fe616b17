package db

import "testing"

func TestPathIndex_EmptyUntilRebuild(t *testing.T) {
	d := openTestDB(t)
	ids := buildLattice(t, d)

	best, err := d.GetBestPath(ids["katana"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != "" {
		t.Errorf("expected no cached path before rebuild, got %q", best)
	}
}

func TestRebuildPathIndex_BestPath(t *testing.T) {
	d := openTestDB(t)
	ids := buildLattice(t, d)

	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}

	best, err := d.GetBestPath(ids["katana"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != "weapons/swords/katana" {
		t.Errorf("got best path %q, want %q", best, "weapons/swords/katana")
	}

	root, err := d.GetBestPath(ids["weapons"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != "weapons" {
		t.Errorf("root path should be its own label, got %q", root)
	}
}

func TestRebuildPathIndex_MultipleAscents(t *testing.T) {
	d := openTestDB(t)
	a := mustNode(t, d, "clothing", false)
	b := mustNode(t, d, "accessories and props", false)
	hat := mustNode(t, d, "hat", true)
	mustEdge(t, d, a.ID, hat.ID)
	mustEdge(t, d, b.ID, hat.ID)

	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}

	paths, err := d.GetAllPaths(hat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"clothing/hat", "accessories and props/hat"}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("got paths %v, want %v (shortest first)", paths, want)
	}

	best, err := d.GetBestPath(hat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best != "clothing/hat" {
		t.Errorf("got best path %q, want shortest %q", best, "clothing/hat")
	}
}

func TestRebuildPathIndex_Overwrites(t *testing.T) {
	d := openTestDB(t)
	a := mustNode(t, d, "weapons", false)
	b := mustNode(t, d, "katana", true)
	mustEdge(t, d, a.ID, b.ID)
	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}

	// restructure, then rebuild again: stale paths must disappear
	if err := d.RemoveEdge(a.ID, b.ID); err != nil {
		t.Fatalf("removing edge: %v", err)
	}
	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}

	paths, err := d.GetAllPaths(b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != "katana" {
		t.Errorf("got paths %v, want just [katana] after detach", paths)
	}
}

func TestAscentPaths_DiamondTerminates(t *testing.T) {
	texts := map[int64]string{1: "top", 2: "left", 3: "right", 4: "bottom"}
	parents := map[int64][]int64{
		2: {1}, 3: {1}, 4: {2, 3},
	}

	out := ascentPaths(4, texts, parents)
	if len(out) != 2 {
		t.Fatalf("got %d paths %v, want 2", len(out), out)
	}
	if out[0] != "top/left/bottom" || out[1] != "top/right/bottom" {
		t.Errorf("got %v, want [top/left/bottom top/right/bottom]", out)
	}
}
