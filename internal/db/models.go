package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID                 uint           `gorm:"primaryKey"`
	Code               string         `gorm:"size:12;uniqueIndex;not null"`
	CreatedBy          string         `gorm:"size:64;not null"`
	Status             string         `gorm:"size:32;not null"`
	MaxPlayers         int            `gorm:"not null;default:2"`
	PuzzleSequence     datatypes.JSON `gorm:"type:jsonb"`
	CurrentPuzzleIndex int            `gorm:"not null;default:0"`
	GameState          string         `gorm:"size:32;not null"`
	RoundWinner        string         `gorm:"size:64"`
	Player1Score       int            `gorm:"not null;default:0"`
	Player2Score       int            `gorm:"not null;default:0"`
	ReadyPlayers       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
	Players            []RoomPlayer
	Events             []RoomEvent
}

type RoomPlayer struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"index;not null;uniqueIndex:idx_room_players_room_name"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_room_players_room_name"`
	IsCreator bool      `gorm:"not null;default:false"`
	Approved  bool      `gorm:"not null;default:false"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Puzzle struct {
	ID            uint           `gorm:"primaryKey"`
	Type          string         `gorm:"size:32;not null;index"`
	Emoji         string         `gorm:"size:128;not null;uniqueIndex:idx_puzzles_emoji_answer"`
	Clues         datatypes.JSON `gorm:"type:jsonb;not null"`
	Answers       datatypes.JSON `gorm:"type:jsonb;not null"`
	DisplayAnswer string         `gorm:"size:160;not null;uniqueIndex:idx_puzzles_emoji_answer"`
	VideoURL      string         `gorm:"size:512"`
	Links         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

type RoomEvent struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    uint           `gorm:"index;not null"`
	PlayerID  *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

type Session struct {
	ID         string    `gorm:"primaryKey;size:64"`
	PlayerName string    `gorm:"size:64"`
	RoomCode   string    `gorm:"size:12"`
	Flash      string    `gorm:"size:280"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}
