package server

import (
	"testing"
	"time"

	"emoji-songs/internal/config"
)

func TestSnapshotShowsLastPuzzleAfterExhaustion(t *testing.T) {
	room, host, joiner := playingRoom(t, 1)
	if _, err := applyTimeout(room, 0); err != nil {
		t.Fatalf("timeout: %v", err)
	}
	if _, err := applyReady(room, host.ID, time.Now()); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if _, err := applyReady(room, joiner.ID, time.Now()); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if room.Status != statusFinished {
		t.Fatalf("expected finished, got %s", room.Status)
	}

	snapshot := snapshotWithConfig(room, config.Default())
	puzzle, ok := snapshot["puzzle"].(map[string]any)
	if !ok {
		t.Fatal("finished snapshot should carry the last puzzle")
	}
	if puzzle["display_answer"] != room.Puzzles[0].DisplayAnswer {
		t.Errorf("expected %q, got %v", room.Puzzles[0].DisplayAnswer, puzzle["display_answer"])
	}
}

func TestSnapshotHidesPuzzleBeforeAdmit(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom("alice", 2)

	snapshot := snapshotWithConfig(room, config.Default())
	if _, ok := snapshot["puzzle"]; ok {
		t.Error("waiting room has no puzzle to show")
	}
}
