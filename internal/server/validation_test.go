package server

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	if name, err := validateName("  Alice   Smith "); err != nil || name != "Alice Smith" {
		t.Errorf("expected collapsed name, got %q err=%v", name, err)
	}
	if _, err := validateName("   "); err == nil {
		t.Error("blank name must be rejected")
	}
	if _, err := validateName(strings.Repeat("x", maxNameLength+1)); err == nil {
		t.Error("overlong name must be rejected")
	}
}

func TestValidateSubmissionKeepsInnerSpacing(t *testing.T) {
	got, err := validateSubmission("  bohemian  rhapsody  ")
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	if got != "bohemian  rhapsody" {
		t.Errorf("inner spacing must survive, got %q", got)
	}
	if _, err := validateSubmission(""); err == nil {
		t.Error("empty submission must be rejected")
	}
}

func validPuzzleInput() puzzleInput {
	return puzzleInput{
		Type:          puzzleTypeSong,
		Emoji:         "🎸🔥",
		Clues:         []string{"first", "second", "third"},
		Answers:       []string{"one answer", " another "},
		DisplayAnswer: "One Answer",
	}
}

func TestValidatePuzzleInput(t *testing.T) {
	input, err := validatePuzzleInput(validPuzzleInput())
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if len(input.Answers) != 2 || input.Answers[1] != "another" {
		t.Errorf("answers should be trimmed, got %v", input.Answers)
	}

	bad := validPuzzleInput()
	bad.Type = "genre"
	if _, err := validatePuzzleInput(bad); err == nil {
		t.Error("unknown type must be rejected")
	}

	bad = validPuzzleInput()
	bad.Clues = []string{"only", "two"}
	if _, err := validatePuzzleInput(bad); err == nil {
		t.Error("two clues must be rejected")
	}

	bad = validPuzzleInput()
	bad.Answers = []string{"   ", ""}
	if _, err := validatePuzzleInput(bad); err == nil {
		t.Error("blank answers must be rejected")
	}

	bad = validPuzzleInput()
	bad.Emoji = ""
	if _, err := validatePuzzleInput(bad); err == nil {
		t.Error("missing emoji must be rejected")
	}

	bad = validPuzzleInput()
	bad.DisplayAnswer = ""
	if _, err := validatePuzzleInput(bad); err == nil {
		t.Error("missing display answer must be rejected")
	}
}
