package web

type RoomSummary struct {
	Code    string `json:"code"`
	Status  string `json:"status"`
	Players int    `json:"players"`
}
