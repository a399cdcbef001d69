package main

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "ninja", 5},
		{"stats", "stats", 0},
		{"stats", "stat", 1},
		{"explain", "explian", 2},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := EditDistance(tt.s1, tt.s2, true, 0); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
	if got := EditDistance("abcdefgh", "zzzzzzzz", true, 3); got != 4 {
		t.Errorf("capped EditDistance = %d, want 4", got)
	}
	if got := EditDistance("ab", "ba", false, 0); got != 2 {
		t.Errorf("EditDistance without replacements = %d, want 2", got)
	}
}

func TestSpellcheckString(t *testing.T) {
	if got := SpellcheckString("hstory", "ops", "history", "version"); got != "history" {
		t.Errorf("got %q", got)
	}
	if got := SpellcheckString("frobnicate", "ops", "history", "version"); got != "" {
		t.Errorf("got %q, want no suggestion", got)
	}
}
