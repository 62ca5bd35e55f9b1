package server

import (
	"encoding/json"
	"errors"
	"sort"

	"emoji-songs/internal/db"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	record := db.Room{
		Code:       room.Code,
		CreatedBy:  room.CreatedBy,
		Status:     room.Status,
		MaxPlayers: room.MaxPlayers,
		GameState:  room.GameState,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	if host := creator(room); host != nil {
		if err := s.persistPlayer(room, host); err != nil {
			return err
		}
	}
	return s.persistEvent(room, "room_created", EventPayload{
		RoomCode: room.Code,
	})
}

func (s *Server) persistPlayer(room *Room, player *Player) error {
	if s.db == nil {
		return nil
	}
	if player.DBID != 0 {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	record := db.RoomPlayer{
		RoomID:    room.DBID,
		Name:      player.Name,
		IsCreator: player.IsCreator,
		Approved:  player.Approved,
		JoinedAt:  player.JoinedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		// The partial unique index rejects a second joiner row that raced
		// past the in-memory guard; reclaim the existing row when the name
		// matches, surface the conflict otherwise.
		if isUniqueViolation(err) {
			existing, lookupErr := s.findPlayerDBID(room.DBID, player.Name)
			if lookupErr == nil && existing != 0 {
				player.DBID = existing
				return nil
			}
		}
		return err
	}
	player.DBID = record.ID
	if player.IsCreator {
		return nil
	}
	return s.persistEvent(room, "player_joined", EventPayload{
		PlayerName: player.Name,
		PlayerID:   player.ID,
	})
}

// persistAdmit writes the sequence install and the joiner approval as one
// transaction, unlike the two independent writes it replaces.
func (s *Server) persistAdmit(room *Room) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	joiner := nonCreator(room)
	if joiner == nil {
		return errors.New("joiner not found")
	}
	if joiner.DBID == 0 {
		if existing, err := s.findPlayerDBID(room.DBID, joiner.Name); err == nil {
			joiner.DBID = existing
		}
	}
	if joiner.DBID == 0 {
		return errors.New("joiner not persisted")
	}
	sequence, err := json.Marshal(sequenceIDs(room.Puzzles))
	if err != nil {
		return err
	}
	updates := map[string]any{
		"status":               room.Status,
		"game_state":           room.GameState,
		"puzzle_sequence":      datatypes.JSON(sequence),
		"current_puzzle_index": room.CurrentPuzzleIndex,
		"player1_score":        0,
		"player2_score":        0,
		"round_winner":         "",
		"ready_players":        datatypes.JSON([]byte("[]")),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Room{}).Where("id = ?", room.DBID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&db.RoomPlayer{}).Where("id = ?", joiner.DBID).Update("approved", true).Error
	})
	if err != nil {
		return err
	}
	return s.persistEvent(room, "player_admitted", EventPayload{
		PlayerName: joiner.Name,
		PlayerID:   joiner.ID,
		Count:      len(room.Puzzles),
	})
}

// persistRoomState mirrors the room's mutable round fields after a lifecycle
// transition and appends the event that caused it.
func (s *Server) persistRoomState(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	ready := make([]int, 0, len(room.ReadyPlayers))
	for id := range room.ReadyPlayers {
		ready = append(ready, id)
	}
	sort.Ints(ready)
	readyJSON, err := json.Marshal(ready)
	if err != nil {
		return err
	}
	player1Score, player2Score := 0, 0
	if host := creator(room); host != nil {
		player1Score = host.Score
	}
	if joiner := nonCreator(room); joiner != nil {
		player2Score = joiner.Score
	}
	updates := map[string]any{
		"status":               room.Status,
		"game_state":           room.GameState,
		"current_puzzle_index": room.CurrentPuzzleIndex,
		"round_winner":         roundWinnerName(room),
		"player1_score":        player1Score,
		"player2_score":        player2Score,
		"ready_players":        datatypes.JSON(readyJSON),
	}
	if err := s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Updates(updates).Error; err != nil {
		return err
	}
	return s.persistEvent(room, eventType, payload)
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.RoomEvent{
		RoomID:   room.DBID,
		PlayerID: s.resolveEventPlayerID(room, payload),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) resolveEventPlayerID(room *Room, payload EventPayload) *uint {
	if payload.PlayerID <= 0 {
		return nil
	}
	player, found := s.store.FindPlayer(room, payload.PlayerID)
	if found && player.DBID != 0 {
		value := player.DBID
		return &value
	}
	return nil
}

func (s *Server) ensureRoomDBID(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	var record db.Room
	if err := s.db.Where("code = ?", room.Code).First(&record).Error; err != nil {
		return nil
	}
	room.DBID = record.ID
	return nil
}

func (s *Server) findPlayerDBID(roomDBID uint, name string) (uint, error) {
	var record db.RoomPlayer
	if err := s.db.Where("room_id = ? AND name = ?", roomDBID, name).First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func (s *Server) listRoomEvents(room *Room) ([]db.RoomEvent, error) {
	if s.db == nil {
		return nil, nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return nil, err
	}
	if room.DBID == 0 {
		return nil, nil
	}
	var events []db.RoomEvent
	if err := s.db.Where("room_id = ?", room.DBID).Order("id asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
