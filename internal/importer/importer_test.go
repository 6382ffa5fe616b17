package importer

import (
	"os"
	"path/filepath"
	"testing"

	"taglattice/internal/db"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenDB(filepath.Join(t.TempDir(), "lattice.db"))
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing source: %v", err)
		}
	}
	return filepath.Join(dir, "*.csv")
}

func TestImport_BuildsLattice(t *testing.T) {
	d := openTestDB(t)
	pattern := writeSources(t, map[string]string{
		"weapons.csv": "weapons,swords,katana\n",
		"armor.csv":   "armor,helmet,samurai helmet\n",
	})

	result, err := ImportIfNeeded(d, pattern)
	if err != nil {
		t.Fatalf("importing: %v", err)
	}
	if result.Skipped {
		t.Fatal("first import should not be skipped")
	}
	if result.Sources != 2 || result.Rows != 2 {
		t.Errorf("got %d sources, %d rows, want 2/2", result.Sources, result.Rows)
	}
	if result.EdgesAdded != 4 {
		t.Errorf("got %d edges added, want 4", result.EdgesAdded)
	}

	stats, err := d.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Nodes != 6 || stats.Edges != 4 {
		t.Errorf("got %d nodes, %d edges, want 6/4", stats.Nodes, stats.Edges)
	}
	if !stats.SearchIndex {
		t.Error("import should build the search index")
	}

	hits, err := d.Search("katana", 10)
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits for katana, want exactly 1", len(hits))
	}
	if hits[0].Score != 100 {
		t.Errorf("got score %v, want 100", hits[0].Score)
	}
	if hits[0].BestPath != "weapons/swords/katana" {
		t.Errorf("got best path %q, want weapons/swords/katana", hits[0].BestPath)
	}

	// leaves become tags, intermediates stay categories
	katana, _ := d.GetNodeBySlug("katana")
	if katana == nil || !katana.IsTag {
		t.Error("katana should be a tag")
	}
	weapons, _ := d.GetNodeBySlug("weapons")
	if weapons == nil || weapons.IsTag {
		t.Error("weapons should be a category")
	}
	helmet2, _ := d.GetNodeBySlug("samurai_helmet")
	if helmet2 == nil || !helmet2.IsTag {
		t.Error("samurai_helmet should be a tag")
	}
}

func TestImport_DisambiguatesSharedCategoryName(t *testing.T) {
	d := openTestDB(t)
	pattern := writeSources(t, map[string]string{
		"tags.csv": "colors,hair colors,auburn\nhair,hair colors,side bangs\n",
	})

	if _, err := ImportIfNeeded(d, pattern); err != nil {
		t.Fatalf("importing: %v", err)
	}

	under, _ := d.GetNodeBySlug("colors_hair_colors")
	if under == nil {
		t.Fatal("missing colors_hair_colors")
	}
	other, _ := d.GetNodeBySlug("hair_hair_colors")
	if other == nil {
		t.Fatal("missing hair_hair_colors")
	}
	plain, _ := d.GetNodeBySlug("hair_colors")
	if plain != nil {
		t.Error("unqualified hair_colors should not exist")
	}

	// the two occurrences are distinct nodes with distinct children
	auburn, _ := d.GetNodeBySlug("auburn")
	crumb, err := d.GetBreadcrumb(auburn.ID)
	if err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}
	if len(crumb) != 3 || crumb[0].Slug != "colors" {
		t.Errorf("unexpected breadcrumb for auburn: %v", crumb)
	}
}

func TestImport_DisambiguatesCategoryNamedLikeTag(t *testing.T) {
	d := openTestDB(t)
	pattern := writeSources(t, map[string]string{
		"tags.csv": "body,hair,ponytail\nfeatures,hair\n",
	})

	if _, err := ImportIfNeeded(d, pattern); err != nil {
		t.Fatalf("importing: %v", err)
	}

	cat, _ := d.GetNodeBySlug("body_hair")
	if cat == nil {
		t.Fatal("missing body_hair category")
	}
	if cat.IsTag {
		t.Error("body_hair should be a category")
	}
	tag, _ := d.GetNodeBySlug("hair")
	if tag == nil || !tag.IsTag {
		t.Error("hair should exist as a tag")
	}
}

func TestImport_RootCategorySharingTagNameMergesDual(t *testing.T) {
	d := openTestDB(t)
	pattern := writeSources(t, map[string]string{
		"tags.csv": "hair,ponytail\nfeatures,hair\n",
	})

	if _, err := ImportIfNeeded(d, pattern); err != nil {
		t.Fatalf("importing: %v", err)
	}

	// at root position there is no parent chain to qualify with, so the
	// category and the tag merge into one dual-role node
	hair, _ := d.GetNodeBySlug("hair")
	if hair == nil {
		t.Fatal("missing hair node")
	}
	if !hair.IsTag {
		t.Error("merged hair node should keep the tag flag")
	}
	children, err := d.GetChildren(hair.ID)
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 1 || children[0].Slug != "ponytail" {
		t.Errorf("merged hair node should keep its children, got %v", children)
	}
	parents, err := d.GetParents(hair.ID)
	if err != nil {
		t.Fatalf("parents: %v", err)
	}
	if len(parents) != 1 || parents[0].Slug != "features" {
		t.Errorf("merged hair node should sit under features, got %v", parents)
	}
}

func TestImport_SecondRunSkipped(t *testing.T) {
	d := openTestDB(t)
	pattern := writeSources(t, map[string]string{
		"tags.csv": "weapons,katana\n",
	})

	if _, err := ImportIfNeeded(d, pattern); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := ImportIfNeeded(d, pattern)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !result.Skipped {
		t.Error("second import should be skipped")
	}

	stats, _ := d.GetStats()
	if stats.Nodes != 2 {
		t.Errorf("got %d nodes after repeat import, want 2", stats.Nodes)
	}
}

func TestForceReimport_ReplacesData(t *testing.T) {
	d := openTestDB(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "tags.csv")
	pattern := filepath.Join(dir, "*.csv")

	if err := os.WriteFile(file, []byte("weapons,katana\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportIfNeeded(d, pattern); err != nil {
		t.Fatalf("first import: %v", err)
	}

	if err := os.WriteFile(file, []byte("armor,helmet\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := ForceReimport(d, pattern)
	if err != nil {
		t.Fatalf("force reimport: %v", err)
	}
	if result.Skipped {
		t.Error("force reimport must not be skipped")
	}

	if old, _ := d.GetNodeBySlug("katana"); old != nil {
		t.Error("old data survived the wipe")
	}
	helmet, _ := d.GetNodeBySlug("helmet")
	if helmet == nil || !helmet.IsTag {
		t.Error("new data missing after force reimport")
	}

	// the marker is rewritten, so plain import is idempotent again
	again, err := ImportIfNeeded(d, pattern)
	if err != nil {
		t.Fatalf("import after force: %v", err)
	}
	if !again.Skipped {
		t.Error("import after force reimport should be skipped")
	}
}

func TestImport_NoSources(t *testing.T) {
	d := openTestDB(t)
	if _, err := ImportIfNeeded(d, filepath.Join(t.TempDir(), "*.csv")); err == nil {
		t.Error("expected error when no sources match")
	}
}

func TestDiscoverSources_Sorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "c.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := DiscoverSources(filepath.Join(dir, "*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for i, want := range []string{"a.csv", "b.csv", "c.csv"} {
		if filepath.Base(paths[i]) != want {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want)
		}
	}
}
