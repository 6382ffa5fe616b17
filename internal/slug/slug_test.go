package slug

import "testing"

func TestMake_Simple(t *testing.T) {
	got := Make("Hair Colors")
	if got != "hair_colors" {
		t.Errorf("got %q, want %q", got, "hair_colors")
	}
}

func TestMake_AlreadySlug(t *testing.T) {
	got := Make("hair_colors")
	if got != "hair_colors" {
		t.Errorf("got %q, want %q", got, "hair_colors")
	}
}

func TestMake_PunctuationRuns(t *testing.T) {
	got := Make("katana -- (folded steel)")
	if got != "katana_folded_steel" {
		t.Errorf("got %q, want %q", got, "katana_folded_steel")
	}
}

func TestMake_LeadingTrailingSeparators(t *testing.T) {
	got := Make("  ~samurai helmet!  ")
	if got != "samurai_helmet" {
		t.Errorf("got %q, want %q", got, "samurai_helmet")
	}
}

func TestMake_Digits(t *testing.T) {
	got := Make("2 swords")
	if got != "2_swords" {
		t.Errorf("got %q, want %q", got, "2_swords")
	}
}

func TestMake_Unicode(t *testing.T) {
	got := Make("Épée Légère")
	if got != "épée_légère" {
		t.Errorf("got %q, want %q", got, "épée_légère")
	}
}

func TestMake_NoUsableRunes(t *testing.T) {
	if got := Make("!!! --- ???"); got != "" {
		t.Errorf("expected empty slug, got %q", got)
	}
	if got := Make(""); got != "" {
		t.Errorf("expected empty slug for empty input, got %q", got)
	}
}
