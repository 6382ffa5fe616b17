package db

import "testing"

func TestUpsertNode_IdempotentOnSlug(t *testing.T) {
	d := openTestDB(t)

	first := mustNode(t, d, "Hair Colors", false)
	second := mustNode(t, d, "hair colors", false)
	if first.ID != second.ID {
		t.Errorf("same slug should reuse the node: got ids %d and %d", first.ID, second.ID)
	}
	if second.Slug != "hair_colors" {
		t.Errorf("got slug %q, want %q", second.Slug, "hair_colors")
	}
}

func TestUpsertNode_IsTagMonotonic(t *testing.T) {
	d := openTestDB(t)

	mustNode(t, d, "hair", true)
	n := mustNode(t, d, "hair", false)
	if !n.IsTag {
		t.Error("is_tag must not demote from true to false")
	}

	// and it promotes
	mustNode(t, d, "colors", false)
	p := mustNode(t, d, "colors", true)
	if !p.IsTag {
		t.Error("is_tag should promote from false to true")
	}
}

func TestUpsertNode_NormalizesText(t *testing.T) {
	d := openTestDB(t)

	n := mustNode(t, d, "  Samurai Helmet ", true)
	if n.Text != "samurai helmet" {
		t.Errorf("got text %q, want %q", n.Text, "samurai helmet")
	}
}

func TestUpsertNodeSlug_ExplicitSlug(t *testing.T) {
	d := openTestDB(t)

	n, err := d.UpsertNodeSlug("colors_hair_colors", "hair colors", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Slug != "colors_hair_colors" || n.Text != "hair colors" {
		t.Errorf("got slug=%q text=%q", n.Slug, n.Text)
	}

	// distinct from the plain-slug node
	plain := mustNode(t, d, "hair colors", false)
	if plain.ID == n.ID {
		t.Error("explicit slug should create a distinct node")
	}
}

func TestUpsertNode_EmptySlug(t *testing.T) {
	d := openTestDB(t)
	if _, err := d.UpsertNode("???", false); err == nil {
		t.Error("expected error for text with no usable slug")
	}
}

func TestGetNode_MissingIsNil(t *testing.T) {
	d := openTestDB(t)

	n, err := d.GetNodeByID(9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != nil {
		t.Errorf("expected nil for unknown id, got %+v", n)
	}

	n, err = d.GetNodeBySlug("no_such_slug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != nil {
		t.Errorf("expected nil for unknown slug, got %+v", n)
	}
}

func TestGetRandomTags_OnlyTags(t *testing.T) {
	d := openTestDB(t)

	mustNode(t, d, "weapons", false)
	mustNode(t, d, "katana", true)
	mustNode(t, d, "wakizashi", true)

	tags, err := d.GetRandomTags(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("got %d tags, want 2", len(tags))
	}
	for _, n := range tags {
		if !n.IsTag {
			t.Errorf("non-tag node %q in random tag sample", n.Slug)
		}
	}
}

func TestDeleteNode_Cascades(t *testing.T) {
	d := openTestDB(t)

	parent := mustNode(t, d, "weapons", false)
	child := mustNode(t, d, "katana", true)
	mustEdge(t, d, parent.ID, child.ID)
	if _, err := d.AddAlias(child.ID, "nihonto"); err != nil {
		t.Fatalf("adding alias: %v", err)
	}
	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}

	if err := d.DeleteNode(child.ID); err != nil {
		t.Fatalf("deleting node: %v", err)
	}

	s, err := d.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if s.Edges != 0 || s.Aliases != 0 {
		t.Errorf("cascade failed: edges=%d aliases=%d, want 0/0", s.Edges, s.Aliases)
	}
	paths, err := d.GetAllPaths(child.ID)
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("cached paths should cascade, got %v", paths)
	}
}
