package server

import "time"

const (
	statusWaiting  = "waiting"
	statusPending  = "pending"
	statusPlaying  = "playing"
	statusFinished = "finished"
)

const (
	stateRoundOpen     = "playing"
	stateShowingAnswer = "showing_answer"
)

const (
	wsRoleCreator   = "creator"
	wsRoleJoiner    = "joiner"
	wsRoleSpectator = "spectator"
)

const (
	puzzleTypeArtist     = "artist"
	puzzleTypeSong       = "song"
	puzzleTypeSongArtist = "song-artist"
	puzzleTypeAlbum      = "album"
)

type RoomSummary struct {
	Code    string
	Status  string
	Players int
}

type Room struct {
	Code               string
	DBID               uint
	CreatedBy          string
	Status             string
	MaxPlayers         int
	Puzzles            []PuzzleCard
	CurrentPuzzleIndex int
	GameState          string
	RoundWinnerID      int
	ReadyPlayers       map[int]struct{}
	Players            []Player
	RoundStartedAt     time.Time
	CreatedAt          time.Time
}

type Player struct {
	ID        int
	DBID      uint
	Name      string
	Token     string
	IsCreator bool
	Approved  bool
	Score     int
	JoinedAt  time.Time
}

// PuzzleCard is the in-memory form of a puzzle drawn into a room's sequence.
type PuzzleCard struct {
	ID            uint
	Type          string
	Emoji         string
	Clues         []string
	Answers       []string
	DisplayAnswer string
	VideoURL      string
	Links         []string
}
