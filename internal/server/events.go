package server

type EventPayload struct {
	RoomCode    string `json:"room_code,omitempty"`
	PlayerName  string `json:"player,omitempty"`
	PlayerID    int    `json:"player_id,omitempty"`
	PuzzleIndex int    `json:"puzzle_index,omitempty"`
	Answer      string `json:"answer,omitempty"`
	Correct     bool   `json:"correct,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Status      string `json:"status,omitempty"`
	GameState   string `json:"game_state,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Count       int    `json:"count,omitempty"`
}
