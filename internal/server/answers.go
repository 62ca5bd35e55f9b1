package server

import "strings"

// normalizeAnswer trims surrounding whitespace and lowercases. No punctuation
// stripping: " Queen " matches "queen", "Queen!" does not.
func normalizeAnswer(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func matchesAnswer(card PuzzleCard, submission string) bool {
	normalized := normalizeAnswer(submission)
	if normalized == "" {
		return false
	}
	for _, accepted := range card.Answers {
		if normalizeAnswer(accepted) == normalized {
			return true
		}
	}
	return false
}

func currentPuzzle(room *Room) *PuzzleCard {
	if room == nil {
		return nil
	}
	if room.CurrentPuzzleIndex < 0 || room.CurrentPuzzleIndex >= len(room.Puzzles) {
		return nil
	}
	return &room.Puzzles[room.CurrentPuzzleIndex]
}
