package db

import "testing"

func TestBuildFTSQuery_StopwordRemoval(t *testing.T) {
	got := BuildFTSQuery("the katana from a forge")
	want := "katana OR forge"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_ShortWords(t *testing.T) {
	got := BuildFTSQuery("go to war hammer")
	want := "war OR hammer"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_PunctuationTrimming(t *testing.T) {
	got := BuildFTSQuery("(samurai_helmet), armor!")
	want := "samurai_helmet OR armor"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFTSQuery_Empty(t *testing.T) {
	if got := BuildFTSQuery(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := BuildFTSQuery("the a an"); got != "" {
		t.Errorf("expected empty for all-stopwords, got %q", got)
	}
}

func TestTypeahead(t *testing.T) {
	d := openTestDB(t)
	buildLattice(t, d)
	mustNode(t, d, "sword polish", true)

	hits, err := d.Typeahead("swo", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlugs(hits, []string{"sword_polish", "swords"}) {
		t.Errorf("got %v, want [sword_polish swords]", slugs(hits))
	}
}

func TestTypeahead_UnderscoreIsLiteral(t *testing.T) {
	d := openTestDB(t)
	mustNode(t, d, "hair colors", false)
	mustNode(t, d, "hairxcolors", false)

	hits, err := d.Typeahead("hair_co", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalSlugs(hits, []string{"hair_colors"}) {
		t.Errorf("underscore must not act as a wildcard, got %v", slugs(hits))
	}
}

func TestSearch_ExactBeatsPrefix(t *testing.T) {
	d := openTestDB(t)
	buildLattice(t, d)

	// "swords" matches both exactly and as its own prefix; max score wins
	hits, err := d.Search("swords", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Score != 100 || hits[0].Match != "exact" {
		t.Errorf("got score=%v match=%q, want 100/exact", hits[0].Score, hits[0].Match)
	}
}

func TestSearch_PrefixTier(t *testing.T) {
	d := openTestDB(t)
	buildLattice(t, d)

	hits, err := d.Search("swo", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got hits %v, want just swords", hits)
	}
	if hits[0].Node.Slug != "swords" || hits[0].Score != 80 || hits[0].Match != "prefix" {
		t.Errorf("got %+v, want swords at score 80/prefix", hits[0])
	}
}

func TestSearch_SkipsFTSWhenIndexAbsent(t *testing.T) {
	d := openTestDB(t)
	buildLattice(t, d)

	// "helmet" only appears inside "samurai helmet" text tokens; without the
	// index there is no full-text strategy, but exact text match still fires
	// for the helmet category itself.
	hits, err := d.Search("helmet", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, h := range hits {
		if h.Match == "fts" {
			t.Errorf("fts hit %q without an index", h.Node.Slug)
		}
	}
}

func TestSearch_FullTextTier(t *testing.T) {
	d := openTestDB(t)
	ids := buildLattice(t, d)
	if _, err := d.AddAlias(ids["katana"], "nihonto blade"); err != nil {
		t.Fatalf("adding alias: %v", err)
	}
	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}
	if err := d.RebuildSearchIndex(); err != nil {
		t.Fatalf("rebuilding index: %v", err)
	}

	// alias token: reachable only through full text
	hits, err := d.Search("nihonto", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 || hits[0].Node.Slug != "katana" {
		t.Fatalf("got %v, want katana via alias", hits)
	}
	if hits[0].Match != "fts" {
		t.Errorf("got match %q, want fts", hits[0].Match)
	}
	if hits[0].Score <= 0 || hits[0].Score >= 80 {
		t.Errorf("fts score %v must stay below the prefix tier", hits[0].Score)
	}
	if hits[0].BestPath != "weapons/swords/katana" {
		t.Errorf("got best path %q, want weapons/swords/katana", hits[0].BestPath)
	}
}

func TestSearch_MaxScorePerNode(t *testing.T) {
	d := openTestDB(t)
	ids := buildLattice(t, d)
	if err := d.RebuildPathIndex(); err != nil {
		t.Fatalf("rebuilding paths: %v", err)
	}
	if err := d.RebuildSearchIndex(); err != nil {
		t.Fatalf("rebuilding index: %v", err)
	}

	// katana matches exact, prefix, and full text; it must appear once at 100
	hits, err := d.Search("katana", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, h := range hits {
		if h.Node.ID == ids["katana"] {
			count++
			if h.Score != 100 {
				t.Errorf("got score %v, want max score 100", h.Score)
			}
		}
	}
	if count != 1 {
		t.Errorf("katana appeared %d times, want once", count)
	}
}

func TestSearchHit_ExposesNodeFields(t *testing.T) {
	d := openTestDB(t)
	buildLattice(t, d)

	// callers read node fields straight off the hit
	hits, err := d.Search("katana", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	h := hits[0]
	if h.Slug != "katana" || h.Text != "katana" {
		t.Errorf("got slug=%q text=%q, want katana", h.Slug, h.Text)
	}
	if !h.IsTag {
		t.Error("katana hit should carry the tag flag")
	}
	if h.ID == 0 {
		t.Error("hit should carry the node id")
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	d := openTestDB(t)
	for _, text := range []string{"sword a", "sword b", "sword c"} {
		mustNode(t, d, text, true)
	}

	hits, err := d.Search("sword", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("got %d hits, want limit 2", len(hits))
	}
}
