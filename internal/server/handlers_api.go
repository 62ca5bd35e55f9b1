package server

import (
	"errors"
	"log"
	"net/http"
	"time"
)

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type admitRequest struct {
	PlayerID int    `json:"player_id"`
	Token    string `json:"token"`
}

type answerRequest struct {
	PlayerID int    `json:"player_id"`
	Token    string `json:"token"`
	Answer   string `json:"answer"`
}

type readyRequest struct {
	PlayerID int    `json:"player_id"`
	Token    string `json:"token"`
}

type timeoutRequest struct {
	PlayerID    int    `json:"player_id"`
	Token       string `json:"token"`
	PuzzleIndex int    `json:"puzzle_index"`
}

func (s *Server) handleRoomSubroutes(w http.ResponseWriter, r *http.Request) {
	roomCode, action, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			s.handleGetRoom(w, r, roomCode)
		case "events":
			s.handleRoomEvents(w, r, roomCode)
		case "qr":
			s.handleRoomQR(w, r, roomCode)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "join":
			s.handleJoinRoom(w, r, roomCode)
		case "admit":
			s.handleAdmit(w, r, roomCode)
		case "answers":
			s.handleAnswer(w, r, roomCode)
		case "ready":
			s.handleReady(w, r, roomCode)
		case "timeout":
			s.handleTimeout(w, r, roomCode)
		default:
			http.NotFound(w, r)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room := s.store.CreateRoom(name, s.cfg.MaxPlayers)
	if err := s.persistRoom(room); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}
	host := creator(room)
	log.Printf("room created room_code=%s created_by=%s", room.Code, name)

	if s.sessions != nil {
		s.sessions.SetPlayer(w, r, name, room.Code)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"room_code": room.Code,
		"player_id": host.ID,
		"token":     host.Token,
	})
	s.broadcastHomeUpdate()
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request, roomCode string) {
	room, ok := s.store.GetRoom(roomCode)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(room))
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req joinRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, player, err := s.store.AddJoiner(roomCode, name)
	if err != nil {
		if err.Error() == "room not found" {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistPlayer(room, player); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to join room")
		return
	}
	log.Printf("player joined room_code=%s player_id=%d player_name=%s approved=%t",
		room.Code, player.ID, player.Name, player.Approved)

	if s.sessions != nil {
		s.sessions.SetPlayer(w, r, name, room.Code)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_code": room.Code,
		"player_id": player.ID,
		"token":     player.Token,
		"approved":  player.Approved,
	})
	// AddJoiner hands back the live room; broadcast from a detached copy.
	if view, ok := s.store.GetRoom(room.Code); ok {
		s.broadcastRoomUpdate(view)
	}
}

func (s *Server) handleAdmit(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req admitRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "player_id and token are required")
		return
	}
	if !s.authPlayer(roomCode, req.PlayerID, req.Token) {
		writeError(w, http.StatusForbidden, "invalid player credentials")
		return
	}

	pool, err := s.loadPuzzleLibrary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load puzzles")
		return
	}
	cards := drawSequence(pool, s.cfg.PuzzlesPerGame)

	now := time.Now().UTC()
	room, err := s.store.UpdateRoom(roomCode, func(room *Room) error {
		return applyAdmit(room, req.PlayerID, cards, now)
	})
	if err != nil {
		s.writeLifecycleError(w, r, err)
		return
	}
	if err := s.persistAdmit(room); err != nil {
		log.Printf("admit persist failed room_code=%s error=%v", room.Code, err)
	}
	log.Printf("player admitted room_code=%s puzzles=%d", room.Code, len(room.Puzzles))

	s.scheduleRoundTimer(room)
	writeJSON(w, http.StatusOK, s.snapshot(room))
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req answerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}
	if !s.authPlayer(roomCode, req.PlayerID, req.Token) {
		writeError(w, http.StatusForbidden, "invalid player credentials")
		return
	}
	submission, err := validateSubmission(req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	correct := false
	room, err := s.store.UpdateRoom(roomCode, func(room *Room) error {
		var applyErr error
		correct, applyErr = applyAnswer(room, req.PlayerID, submission, s.cfg.WinScore)
		return applyErr
	})
	if err != nil {
		s.writeLifecycleError(w, r, err)
		return
	}

	payload := EventPayload{
		PlayerID: req.PlayerID,
		Answer:   submission,
		Correct:  correct,
	}
	if !correct {
		if err := s.persistEvent(room, "answer_submitted", payload); err != nil {
			log.Printf("answer persist failed room_code=%s error=%v", room.Code, err)
		}
		writeJSON(w, http.StatusOK, map[string]any{"correct": false})
		return
	}

	payload.Winner = roundWinnerName(room)
	if err := s.persistRoomState(room, "answer_submitted", payload); err != nil {
		log.Printf("answer persist failed room_code=%s error=%v", room.Code, err)
	}
	s.cancelRoundTimer(room.Code)
	log.Printf("round won room_code=%s player_id=%d puzzle_index=%d",
		room.Code, req.PlayerID, room.CurrentPuzzleIndex)
	if room.Status == statusFinished {
		s.finishRoom(room)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"correct":      true,
		"round_winner": roundWinnerName(room),
		"status":       room.Status,
	})
	s.broadcastRoomUpdate(room)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req readyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "player_id and token are required")
		return
	}
	if !s.authPlayer(roomCode, req.PlayerID, req.Token) {
		writeError(w, http.StatusForbidden, "invalid player credentials")
		return
	}

	advanced := false
	now := time.Now().UTC()
	room, err := s.store.UpdateRoom(roomCode, func(room *Room) error {
		var applyErr error
		advanced, applyErr = applyReady(room, req.PlayerID, now)
		return applyErr
	})
	if err != nil {
		s.writeLifecycleError(w, r, err)
		return
	}

	eventType := "player_ready"
	if advanced {
		eventType = "round_advanced"
	}
	if err := s.persistRoomState(room, eventType, EventPayload{
		PlayerID:    req.PlayerID,
		PuzzleIndex: room.CurrentPuzzleIndex,
	}); err != nil {
		log.Printf("ready persist failed room_code=%s error=%v", room.Code, err)
	}
	if advanced {
		log.Printf("round advanced room_code=%s puzzle_index=%d status=%s",
			room.Code, room.CurrentPuzzleIndex, room.Status)
		if room.Status == statusFinished {
			s.finishRoom(room)
		} else {
			s.scheduleRoundTimer(room)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"advanced":             advanced,
		"current_puzzle_index": room.CurrentPuzzleIndex,
		"status":               room.Status,
	})
	s.broadcastRoomUpdate(room)
}

// handleTimeout lets a client report its countdown reaching zero before the
// server timer fires; both paths converge on the same guarded transition.
func (s *Server) handleTimeout(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req timeoutRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "player_id and token are required")
		return
	}
	if !s.authPlayer(roomCode, req.PlayerID, req.Token) {
		writeError(w, http.StatusForbidden, "invalid player credentials")
		return
	}

	expired := false
	room, err := s.store.UpdateRoom(roomCode, func(room *Room) error {
		var applyErr error
		expired, applyErr = applyTimeout(room, req.PuzzleIndex)
		return applyErr
	})
	if err != nil {
		s.writeLifecycleError(w, r, err)
		return
	}
	if expired {
		if err := s.persistRoomState(room, "round_timeout", EventPayload{
			PlayerID:    req.PlayerID,
			PuzzleIndex: req.PuzzleIndex,
			Reason:      "client_countdown",
		}); err != nil {
			log.Printf("timeout persist failed room_code=%s error=%v", room.Code, err)
		}
		s.cancelRoundTimer(room.Code)
		log.Printf("round timed out room_code=%s puzzle_index=%d reported_by=%d",
			room.Code, req.PuzzleIndex, req.PlayerID)
		s.broadcastRoomUpdate(room)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"expired":    expired,
		"game_state": room.GameState,
	})
}

func (s *Server) handleRoomEvents(w http.ResponseWriter, r *http.Request, roomCode string) {
	room, ok := s.store.GetRoom(roomCode)
	if !ok {
		http.NotFound(w, r)
		return
	}
	events, err := s.listRoomEvents(room)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	list := make([]map[string]any, 0, len(events))
	for _, event := range events {
		list = append(list, map[string]any{
			"type":       event.Type,
			"payload":    event.Payload,
			"created_at": event.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room_code": room.Code,
		"events":    list,
	})
}

// finishRoom records the terminal transition and drops the room's timer.
func (s *Server) finishRoom(room *Room) {
	s.cancelRoundTimer(room.Code)
	if err := s.persistRoomState(room, "room_finished", EventPayload{
		Winner: gameWinnerName(room),
		Status: room.Status,
	}); err != nil {
		log.Printf("finish persist failed room_code=%s error=%v", room.Code, err)
	}
	log.Printf("room finished room_code=%s winner=%s", room.Code, gameWinnerName(room))
}

func (s *Server) authPlayer(roomCode string, playerID int, token string) bool {
	_, player, ok := s.store.GetPlayer(roomCode, playerID)
	if !ok || player == nil {
		return false
	}
	return token != "" && player.Token == token
}

func (s *Server) writeLifecycleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		return
	case err.Error() == "room not found":
		http.NotFound(w, r)
	case errors.Is(err, errPlayerUnknown):
		http.NotFound(w, r)
	case errors.Is(err, errNotCreator), errors.Is(err, errPlayerPending):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusConflict, err.Error())
	}
}
