package server

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"queen", "queen"},
		{" Queen ", "queen"},
		{"BOHEMIAN RHAPSODY", "bohemian rhapsody"},
		{"Queen!", "queen!"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := normalizeAnswer(tc.in); got != tc.want {
			t.Errorf("normalizeAnswer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchesAnswer(t *testing.T) {
	card := PuzzleCard{
		Answers: []string{"queen", "bohemian rhapsody"},
	}
	cases := []struct {
		submission string
		want       bool
	}{
		{"queen", true},
		{" Queen ", true},
		{"BOHEMIAN RHAPSODY", true},
		{"Queen!", false},
		{"bohemian", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := matchesAnswer(card, tc.submission); got != tc.want {
			t.Errorf("matchesAnswer(%q) = %v, want %v", tc.submission, got, tc.want)
		}
	}
}

func TestCurrentPuzzleBounds(t *testing.T) {
	room := &Room{Puzzles: testCards(2)}

	if card := currentPuzzle(room); card == nil || card.ID != 1 {
		t.Errorf("expected first card, got %+v", card)
	}
	room.CurrentPuzzleIndex = 2
	if card := currentPuzzle(room); card != nil {
		t.Errorf("index past the sequence must yield nil, got %+v", card)
	}
	if card := currentPuzzle(nil); card != nil {
		t.Errorf("nil room must yield nil, got %+v", card)
	}
}
