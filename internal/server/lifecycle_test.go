package server

import (
	"testing"
	"time"
)

func testCards(n int) []PuzzleCard {
	cards := make([]PuzzleCard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, PuzzleCard{
			ID:            uint(i + 1),
			Type:          puzzleTypeSong,
			Emoji:         "🎵",
			Clues:         []string{"one", "two", "three"},
			Answers:       []string{"queen", "bohemian rhapsody"},
			DisplayAnswer: "Bohemian Rhapsody",
		})
	}
	return cards
}

func pendingRoom(t *testing.T) (*Store, *Room, *Player, *Player) {
	t.Helper()
	store := NewStore()
	room := store.CreateRoom("alice", 2)
	_, joiner, err := store.AddJoiner(room.Code, "bob")
	if err != nil {
		t.Fatalf("add joiner: %v", err)
	}
	return store, room, creator(room), joiner
}

func playingRoom(t *testing.T, cards int) (*Room, *Player, *Player) {
	t.Helper()
	_, room, host, joiner := pendingRoom(t)
	if err := applyAdmit(room, host.ID, testCards(cards), time.Now()); err != nil {
		t.Fatalf("admit: %v", err)
	}
	return room, host, joiner
}

func TestAdmitApprovesJoinerAndOpensFirstRound(t *testing.T) {
	_, room, host, joiner := pendingRoom(t)

	if err := applyAdmit(room, host.ID, testCards(5), time.Now()); err != nil {
		t.Fatalf("admit: %v", err)
	}
	if !joiner.Approved {
		t.Error("joiner should be approved after admit")
	}
	if room.Status != statusPlaying || room.GameState != stateRoundOpen {
		t.Errorf("expected playing/%s, got %s/%s", stateRoundOpen, room.Status, room.GameState)
	}
	if len(room.Puzzles) != 5 {
		t.Errorf("expected 5 puzzles, got %d", len(room.Puzzles))
	}
	if room.CurrentPuzzleIndex != 0 {
		t.Errorf("expected index 0, got %d", room.CurrentPuzzleIndex)
	}
	for _, player := range room.Players {
		if player.Score != 0 {
			t.Errorf("player %s should start at 0, got %d", player.Name, player.Score)
		}
	}
}

func TestAdmitRejectsNonCreator(t *testing.T) {
	_, room, _, joiner := pendingRoom(t)

	if err := applyAdmit(room, joiner.ID, testCards(3), time.Now()); err != errNotCreator {
		t.Fatalf("expected errNotCreator, got %v", err)
	}
	if room.Status != statusPending {
		t.Errorf("room should still be pending, got %s", room.Status)
	}
}

func TestAdmitRequiresPendingPlayer(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom("alice", 2)

	err := applyAdmit(room, room.Players[0].ID, testCards(3), time.Now())
	if err != errNotPending {
		t.Fatalf("expected errNotPending, got %v", err)
	}
}

func TestAdmitRejectsEmptySequence(t *testing.T) {
	_, room, host, _ := pendingRoom(t)

	if err := applyAdmit(room, host.ID, nil, time.Now()); err != errEmptySequence {
		t.Fatalf("expected errEmptySequence, got %v", err)
	}
}

func TestAnswerCorrectClosesRoundAndScores(t *testing.T) {
	room, _, joiner := playingRoom(t, 3)

	correct, err := applyAnswer(room, joiner.ID, " Queen ", 5)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if !correct {
		t.Fatal("padded casing should still match")
	}
	if joiner.Score != 1 {
		t.Errorf("expected score 1, got %d", joiner.Score)
	}
	if room.GameState != stateShowingAnswer {
		t.Errorf("expected %s, got %s", stateShowingAnswer, room.GameState)
	}
	if room.RoundWinnerID != joiner.ID {
		t.Errorf("expected winner %d, got %d", joiner.ID, room.RoundWinnerID)
	}
}

func TestAnswerWithPunctuationDoesNotMatch(t *testing.T) {
	room, _, joiner := playingRoom(t, 3)

	correct, err := applyAnswer(room, joiner.ID, "Queen!", 5)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if correct {
		t.Fatal("punctuation should not be stripped before matching")
	}
	if joiner.Score != 0 {
		t.Errorf("incorrect answer must not score, got %d", joiner.Score)
	}
	if room.GameState != stateRoundOpen {
		t.Errorf("round should stay open, got %s", room.GameState)
	}
}

func TestAnswerRejectedWhileShowingAnswer(t *testing.T) {
	room, host, joiner := playingRoom(t, 3)

	if _, err := applyAnswer(room, joiner.ID, "queen", 5); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := applyAnswer(room, host.ID, "queen", 5); err != errRoundNotOpen {
		t.Fatalf("expected errRoundNotOpen, got %v", err)
	}
}

func TestAnswerReachingWinScoreFinishesGame(t *testing.T) {
	room, _, joiner := playingRoom(t, 3)

	correct, err := applyAnswer(room, joiner.ID, "queen", 1)
	if err != nil || !correct {
		t.Fatalf("answer: correct=%v err=%v", correct, err)
	}
	if room.Status != statusFinished {
		t.Errorf("expected finished, got %s", room.Status)
	}
	if name := gameWinnerName(room); name != "bob" {
		t.Errorf("expected winner bob, got %q", name)
	}
}

func TestTimeoutClosesRoundWithoutWinner(t *testing.T) {
	room, _, _ := playingRoom(t, 3)

	expired, err := applyTimeout(room, 0)
	if err != nil {
		t.Fatalf("timeout: %v", err)
	}
	if !expired {
		t.Fatal("expected the round to expire")
	}
	if room.GameState != stateShowingAnswer {
		t.Errorf("expected %s, got %s", stateShowingAnswer, room.GameState)
	}
	if room.RoundWinnerID != 0 {
		t.Errorf("timeout must not set a winner, got %d", room.RoundWinnerID)
	}
}

func TestTimeoutIgnoresStaleIndex(t *testing.T) {
	room, _, _ := playingRoom(t, 3)
	room.CurrentPuzzleIndex = 1

	expired, err := applyTimeout(room, 0)
	if err != nil {
		t.Fatalf("timeout: %v", err)
	}
	if expired {
		t.Fatal("timeout for an older round must be a no-op")
	}
	if room.GameState != stateRoundOpen {
		t.Errorf("round should stay open, got %s", room.GameState)
	}
}

func TestReadyAdvancesOnlyWhenAllApprovedAreReady(t *testing.T) {
	room, host, joiner := playingRoom(t, 3)
	if _, err := applyAnswer(room, joiner.ID, "queen", 5); err != nil {
		t.Fatalf("answer: %v", err)
	}

	advanced, err := applyReady(room, host.ID, time.Now())
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if advanced {
		t.Fatal("one ready out of two must not advance")
	}
	if room.CurrentPuzzleIndex != 0 {
		t.Errorf("index should still be 0, got %d", room.CurrentPuzzleIndex)
	}

	// Repeated signals from the same player count once.
	if advanced, _ = applyReady(room, host.ID, time.Now()); advanced {
		t.Fatal("duplicate ready from the same player must not advance")
	}

	advanced, err = applyReady(room, joiner.ID, time.Now())
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if !advanced {
		t.Fatal("both players ready should advance the round")
	}
	if room.CurrentPuzzleIndex != 1 {
		t.Errorf("expected index 1, got %d", room.CurrentPuzzleIndex)
	}
	if room.GameState != stateRoundOpen {
		t.Errorf("expected %s, got %s", stateRoundOpen, room.GameState)
	}
	if len(room.ReadyPlayers) != 0 {
		t.Errorf("ready set should reset after advancing, got %d entries", len(room.ReadyPlayers))
	}
	if room.RoundWinnerID != 0 {
		t.Errorf("round winner should clear after advancing, got %d", room.RoundWinnerID)
	}
}

func TestReadyRejectedWhileRoundOpen(t *testing.T) {
	room, host, _ := playingRoom(t, 3)

	if _, err := applyReady(room, host.ID, time.Now()); err != errNotShowing {
		t.Fatalf("expected errNotShowing, got %v", err)
	}
}

func TestReadyOnLastPuzzleFinishesGame(t *testing.T) {
	room, host, joiner := playingRoom(t, 1)
	if _, err := applyAnswer(room, joiner.ID, "queen", 5); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if _, err := applyReady(room, host.ID, time.Now()); err != nil {
		t.Fatalf("ready: %v", err)
	}
	advanced, err := applyReady(room, joiner.ID, time.Now())
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if !advanced {
		t.Fatal("exhausting the sequence should still report an advance")
	}
	if room.Status != statusFinished {
		t.Errorf("expected finished, got %s", room.Status)
	}
}

func TestGameWinnerNameReportsDrawAsEmpty(t *testing.T) {
	room, _, joiner := playingRoom(t, 2)
	room.Status = statusFinished

	if name := gameWinnerName(room); name != "" {
		t.Errorf("zero-zero finish has no winner, got %q", name)
	}

	joiner.Score = 2
	if name := gameWinnerName(room); name != "bob" {
		t.Errorf("expected bob, got %q", name)
	}
}
