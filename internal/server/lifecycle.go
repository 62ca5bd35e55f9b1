package server

import (
	"errors"
	"time"
)

// Room lifecycle: waiting -> pending -> playing <-> showing_answer -> finished.
// Every transition below runs inside Store.UpdateRoom, so the guard and the
// mutation are one critical section. Handlers never poke room fields directly.

var (
	errNotPending    = errors.New("no pending player to admit")
	errNotCreator    = errors.New("only the creator can admit")
	errRoundNotOpen  = errors.New("round is not open for answers")
	errNotShowing    = errors.New("answer is not being shown")
	errGameFinished  = errors.New("game finished")
	errPlayerUnknown = errors.New("player not in room")
	errPlayerPending = errors.New("player not approved")
	errEmptySequence = errors.New("no puzzles available")
)

// applyAdmit approves the pending joiner and installs the drawn puzzle
// sequence in the same transition: sequence set, index zeroed, scores reset,
// room moved straight to the first open round.
func applyAdmit(room *Room, callerID int, cards []PuzzleCard, at time.Time) error {
	if room.Status == statusFinished {
		return errGameFinished
	}
	if room.Status != statusPending {
		return errNotPending
	}
	caller, ok := findPlayer(room, callerID)
	if !ok {
		return errPlayerUnknown
	}
	if !caller.IsCreator {
		return errNotCreator
	}
	joiner := nonCreator(room)
	if joiner == nil {
		return errNotPending
	}
	if len(cards) == 0 {
		return errEmptySequence
	}

	joiner.Approved = true
	room.Puzzles = cards
	room.CurrentPuzzleIndex = 0
	for i := range room.Players {
		room.Players[i].Score = 0
	}
	room.RoundWinnerID = 0
	room.ReadyPlayers = make(map[int]struct{})
	room.Status = statusPlaying
	room.GameState = stateRoundOpen
	room.RoundStartedAt = at
	return nil
}

// applyAnswer checks a submission against the current puzzle. A correct
// answer closes the round; reaching winScore finishes the game. An incorrect
// answer changes nothing.
func applyAnswer(room *Room, playerID int, submission string, winScore int) (bool, error) {
	if room.Status == statusFinished {
		return false, errGameFinished
	}
	if room.Status != statusPlaying || room.GameState != stateRoundOpen {
		return false, errRoundNotOpen
	}
	player, ok := findPlayer(room, playerID)
	if !ok {
		return false, errPlayerUnknown
	}
	if !player.Approved {
		return false, errPlayerPending
	}
	card := currentPuzzle(room)
	if card == nil {
		return false, errors.New("no current puzzle")
	}
	if !matchesAnswer(*card, submission) {
		return false, nil
	}

	player.Score++
	room.GameState = stateShowingAnswer
	room.RoundWinnerID = player.ID
	if winScore > 0 && player.Score >= winScore {
		room.Status = statusFinished
	}
	return true, nil
}

// applyTimeout closes the round with no winner. The expected index makes the
// timer callback a no-op when the round already moved on.
func applyTimeout(room *Room, expectedIndex int) (bool, error) {
	if room.Status != statusPlaying || room.GameState != stateRoundOpen {
		return false, nil
	}
	if room.CurrentPuzzleIndex != expectedIndex {
		return false, nil
	}
	room.GameState = stateShowingAnswer
	room.RoundWinnerID = 0
	return true, nil
}

// applyReady records one player's ready-for-next signal. The set is
// append-if-absent under the store lock, so simultaneous signals cannot lose
// an update. Once every approved player is ready the round advances exactly
// once and the set is cleared.
func applyReady(room *Room, playerID int, at time.Time) (bool, error) {
	if room.Status == statusFinished {
		return false, errGameFinished
	}
	if room.Status != statusPlaying || room.GameState != stateShowingAnswer {
		return false, errNotShowing
	}
	player, ok := findPlayer(room, playerID)
	if !ok {
		return false, errPlayerUnknown
	}
	if !player.Approved {
		return false, errPlayerPending
	}
	if room.ReadyPlayers == nil {
		room.ReadyPlayers = make(map[int]struct{})
	}
	room.ReadyPlayers[player.ID] = struct{}{}
	if len(room.ReadyPlayers) < approvedCount(room) {
		return false, nil
	}

	room.CurrentPuzzleIndex++
	room.ReadyPlayers = make(map[int]struct{})
	room.RoundWinnerID = 0
	if room.CurrentPuzzleIndex >= len(room.Puzzles) {
		room.Status = statusFinished
		room.GameState = stateShowingAnswer
		return true, nil
	}
	room.GameState = stateRoundOpen
	room.RoundStartedAt = at
	return true, nil
}

func findPlayer(room *Room, playerID int) (*Player, bool) {
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return &room.Players[i], true
		}
	}
	return nil, false
}

func roundWinnerName(room *Room) string {
	if room == nil || room.RoundWinnerID == 0 {
		return ""
	}
	if player, ok := findPlayer(room, room.RoundWinnerID); ok {
		return player.Name
	}
	return ""
}

func gameWinnerName(room *Room) string {
	if room == nil || room.Status != statusFinished {
		return ""
	}
	best := ""
	bestScore := -1
	for _, player := range room.Players {
		if player.Score > bestScore {
			best = player.Name
			bestScore = player.Score
		} else if player.Score == bestScore {
			best = ""
		}
	}
	if bestScore <= 0 {
		return ""
	}
	return best
}
