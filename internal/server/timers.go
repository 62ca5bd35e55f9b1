package server

import (
	"log"
	"time"
)

// scheduleRoundTimer arms the countdown for the room's current round. The
// callback captures the puzzle index so a timer firing after the round moved
// on does nothing.
func (s *Server) scheduleRoundTimer(room *Room) {
	if s.cfg.RoundSeconds <= 0 {
		s.cancelRoundTimer(room.Code)
		return
	}
	index := room.CurrentPuzzleIndex
	s.timersMu.Lock()
	if existing, ok := s.timers[room.Code]; ok {
		existing.Stop()
	}
	timer := time.AfterFunc(time.Duration(s.cfg.RoundSeconds)*time.Second, func() {
		s.expireRound(room.Code, index)
	})
	s.timers[room.Code] = timer
	s.timersMu.Unlock()
}

func (s *Server) cancelRoundTimer(roomCode string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[roomCode]; ok {
		timer.Stop()
		delete(s.timers, roomCode)
	}
}

func (s *Server) expireRound(roomCode string, expectedIndex int) {
	expired := false
	room, err := s.store.UpdateRoom(roomCode, func(room *Room) error {
		var applyErr error
		expired, applyErr = applyTimeout(room, expectedIndex)
		return applyErr
	})
	if err != nil || !expired {
		return
	}
	if err := s.persistRoomState(room, "round_timeout", EventPayload{
		PuzzleIndex: expectedIndex,
		Reason:      "countdown",
	}); err != nil {
		log.Printf("round timeout persist failed room_code=%s error=%v", room.Code, err)
	}
	log.Printf("round timed out room_code=%s puzzle_index=%d", room.Code, expectedIndex)
	s.broadcastRoomUpdate(room)
}
