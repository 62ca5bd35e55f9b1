package server

import (
	"sort"
	"time"

	"emoji-songs/internal/config"
)

// snapshotWithConfig is the authoritative room view pushed over the room's
// websocket group and returned by GET /api/rooms/{code}. Accepted answers are
// withheld while a round is open; the reveal fields appear once the round
// closes.
func snapshotWithConfig(room *Room, cfg config.Config) map[string]any {
	players := make([]map[string]any, 0, len(room.Players))
	for _, player := range room.Players {
		players = append(players, map[string]any{
			"id":         player.ID,
			"name":       player.Name,
			"is_creator": player.IsCreator,
			"approved":   player.Approved,
			"score":      player.Score,
			"ready":      playerReady(room, player.ID),
		})
	}

	ready := make([]int, 0, len(room.ReadyPlayers))
	for id := range room.ReadyPlayers {
		ready = append(ready, id)
	}
	sort.Ints(ready)

	snapshot := map[string]any{
		"room_code":            room.Code,
		"created_by":           room.CreatedBy,
		"status":               room.Status,
		"game_state":           room.GameState,
		"max_players":          room.MaxPlayers,
		"players":              players,
		"pending_player":       pendingPlayerName(room),
		"current_puzzle_index": room.CurrentPuzzleIndex,
		"total_puzzles":        len(room.Puzzles),
		"ready_player_ids":     ready,
		"round_winner":         roundWinnerName(room),
		"game_winner":          gameWinnerName(room),
		"win_score":            cfg.WinScore,
		"round_seconds":        cfg.RoundSeconds,
		"reveal_seconds":       cfg.RevealSeconds,
	}

	if card := revealPuzzle(room); card != nil {
		puzzle := map[string]any{
			"id":    card.ID,
			"type":  card.Type,
			"emoji": card.Emoji,
			"clues": card.Clues,
		}
		if room.GameState == stateShowingAnswer || room.Status == statusFinished {
			puzzle["display_answer"] = card.DisplayAnswer
			puzzle["video_url"] = card.VideoURL
			puzzle["links"] = card.Links
		}
		snapshot["puzzle"] = puzzle
	}

	if room.Status == statusPlaying && room.GameState == stateRoundOpen && !room.RoundStartedAt.IsZero() && cfg.RoundSeconds > 0 {
		endsAt := room.RoundStartedAt.Add(time.Duration(cfg.RoundSeconds) * time.Second)
		snapshot["round_started_at"] = room.RoundStartedAt.UTC().Format(time.RFC3339)
		snapshot["round_ends_at"] = endsAt.UTC().Format(time.RFC3339)
	}
	return snapshot
}

// revealPuzzle is the puzzle the snapshot shows. A game finished by running
// out of puzzles leaves the index one past the sequence; keep showing the
// last puzzle so the final reveal survives the transition.
func revealPuzzle(room *Room) *PuzzleCard {
	if card := currentPuzzle(room); card != nil {
		return card
	}
	if room.Status == statusFinished && len(room.Puzzles) > 0 {
		return &room.Puzzles[len(room.Puzzles)-1]
	}
	return nil
}

func playerReady(room *Room, playerID int) bool {
	if room.ReadyPlayers == nil {
		return false
	}
	_, ok := room.ReadyPlayers[playerID]
	return ok
}

func pendingPlayerName(room *Room) string {
	joiner := nonCreator(room)
	if joiner == nil || joiner.Approved {
		return ""
	}
	return joiner.Name
}
