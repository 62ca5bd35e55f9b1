package server

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.Mutex
	nextPlayerID int
	rooms        map[string]*Room
}

func NewStore() *Store {
	return &Store{
		nextPlayerID: 1,
		rooms:        make(map[string]*Room),
	}
}

func (s *Store) CreateRoom(createdBy string, maxPlayers int) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for {
		if _, taken := s.rooms[code]; !taken {
			break
		}
		code = newRoomCode()
	}
	now := time.Now().UTC()
	room := &Room{
		Code:         code,
		CreatedBy:    createdBy,
		Status:       statusWaiting,
		MaxPlayers:   maxPlayers,
		ReadyPlayers: make(map[int]struct{}),
		CreatedAt:    now,
	}
	creator := Player{
		ID:        s.nextPlayerID,
		Name:      createdBy,
		Token:     uuid.NewString(),
		IsCreator: true,
		Approved:  true,
		JoinedAt:  now,
	}
	s.nextPlayerID++
	room.Players = append(room.Players, creator)
	s.rooms[code] = room
	return room
}

// GetRoom returns a detached copy, safe to read and serialize after the lock
// is released.
func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, false
	}
	return cloneRoom(room), true
}

// UpdateRoom runs update under the store lock so a lifecycle check and the
// write it guards are a single critical section. The returned room is a copy
// taken before the lock is released, so callers never serialize state that a
// concurrent update is mutating.
func (s *Store) UpdateRoom(code string, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, errors.New("room not found")
	}
	if err := update(room); err != nil {
		return nil, err
	}
	return cloneRoom(room), nil
}

// AddJoiner admits a second participant into the waiting room as the pending
// player. Joining again under an existing player's name reclaims that player
// instead of creating a duplicate.
func (s *Store) AddJoiner(code, name string) (*Room, *Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, nil, errors.New("room not found")
	}
	for i := range room.Players {
		if room.Players[i].Name == name {
			return room, &room.Players[i], nil
		}
	}
	if room.Status == statusFinished {
		return nil, nil, errors.New("game finished")
	}
	if room.Status == statusPlaying {
		return nil, nil, errors.New("game already started")
	}
	if joiner := nonCreator(room); joiner != nil {
		return nil, nil, errors.New("room already has a pending player")
	}
	if len(room.Players) >= room.MaxPlayers {
		return nil, nil, errors.New("room full")
	}

	player := Player{
		ID:       s.nextPlayerID,
		Name:     name,
		Token:    uuid.NewString(),
		JoinedAt: time.Now().UTC(),
	}
	s.nextPlayerID++
	room.Players = append(room.Players, player)
	room.Status = statusPending
	return room, &room.Players[len(room.Players)-1], nil
}

func (s *Store) ListRoomSummaries() []RoomSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]RoomSummary, 0, len(s.rooms))
	for _, room := range s.rooms {
		list = append(list, RoomSummary{
			Code:    room.Code,
			Status:  room.Status,
			Players: len(room.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Code < list[j].Code
	})
	return list
}

func (s *Store) GetPlayer(code string, playerID int) (*Room, *Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, nil, false
	}
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return room, &room.Players[i], true
		}
	}
	return room, nil, false
}

func (s *Store) FindPlayer(room *Room, playerID int) (*Player, bool) {
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return &room.Players[i], true
		}
	}
	return nil, false
}

func cloneRoom(room *Room) *Room {
	clone := *room
	clone.Players = append([]Player(nil), room.Players...)
	clone.Puzzles = append([]PuzzleCard(nil), room.Puzzles...)
	clone.ReadyPlayers = make(map[int]struct{}, len(room.ReadyPlayers))
	for id := range room.ReadyPlayers {
		clone.ReadyPlayers[id] = struct{}{}
	}
	return &clone
}

func nonCreator(room *Room) *Player {
	for i := range room.Players {
		if !room.Players[i].IsCreator {
			return &room.Players[i]
		}
	}
	return nil
}

func creator(room *Room) *Player {
	for i := range room.Players {
		if room.Players[i].IsCreator {
			return &room.Players[i]
		}
	}
	return nil
}

func approvedCount(room *Room) int {
	count := 0
	for i := range room.Players {
		if room.Players[i].Approved {
			count++
		}
	}
	return count
}
