package server

import (
	"encoding/json"
	"errors"
	"math/rand"

	"emoji-songs/internal/db"
)

// drawSequence shuffles the pool and keeps the first limit cards, so a game
// never repeats a puzzle.
func drawSequence(pool []PuzzleCard, limit int) []PuzzleCard {
	if limit <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := make([]PuzzleCard, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if limit > len(shuffled) {
		limit = len(shuffled)
	}
	return shuffled[:limit]
}

func sequenceIDs(cards []PuzzleCard) []uint {
	ids := make([]uint, 0, len(cards))
	for _, card := range cards {
		ids = append(ids, card.ID)
	}
	return ids
}

func (s *Server) loadPuzzleLibrary() ([]PuzzleCard, error) {
	if s.db == nil {
		return fallbackPuzzles(), nil
	}
	var records []db.Puzzle
	if err := s.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	cards := make([]PuzzleCard, 0, len(records))
	for _, record := range records {
		card, err := cardFromRecord(record)
		if err != nil {
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, errors.New("puzzle library is empty")
	}
	return cards, nil
}

func cardFromRecord(record db.Puzzle) (PuzzleCard, error) {
	card := PuzzleCard{
		ID:            record.ID,
		Type:          record.Type,
		Emoji:         record.Emoji,
		DisplayAnswer: record.DisplayAnswer,
		VideoURL:      record.VideoURL,
	}
	if len(record.Clues) > 0 {
		if err := json.Unmarshal(record.Clues, &card.Clues); err != nil {
			return PuzzleCard{}, err
		}
	}
	if len(record.Answers) > 0 {
		if err := json.Unmarshal(record.Answers, &card.Answers); err != nil {
			return PuzzleCard{}, err
		}
	}
	if len(record.Links) > 0 {
		if err := json.Unmarshal(record.Links, &card.Links); err != nil {
			return PuzzleCard{}, err
		}
	}
	if len(card.Answers) == 0 {
		return PuzzleCard{}, errors.New("puzzle has no accepted answers")
	}
	return card, nil
}

// fallbackPuzzles keeps the server playable with no database attached.
func fallbackPuzzles() []PuzzleCard {
	return []PuzzleCard{
		{
			ID:    1,
			Type:  puzzleTypeSong,
			Emoji: "👑🎶🌈",
			Clues: []string{"Six minutes long", "No chorus", "Operatic middle section"},
			Answers: []string{
				"bohemian rhapsody",
			},
			DisplayAnswer: "Bohemian Rhapsody",
		},
		{
			ID:    2,
			Type:  puzzleTypeArtist,
			Emoji: "👑",
			Clues: []string{"British rock band", "Freddie Mercury", "We Will Rock You"},
			Answers: []string{
				"queen",
			},
			DisplayAnswer: "Queen",
		},
		{
			ID:    3,
			Type:  puzzleTypeSong,
			Emoji: "🌧️☂️👩",
			Clues: []string{"2007 hit", "One-word title repeated", "Jay-Z verse"},
			Answers: []string{
				"umbrella",
			},
			DisplayAnswer: "Umbrella",
		},
		{
			ID:    4,
			Type:  puzzleTypeAlbum,
			Emoji: "🌑🌕🎧",
			Clues: []string{"1973 release", "Prism cover art", "Pink Floyd"},
			Answers: []string{
				"the dark side of the moon",
				"dark side of the moon",
			},
			DisplayAnswer: "The Dark Side of the Moon",
		},
		{
			ID:    5,
			Type:  puzzleTypeSongArtist,
			Emoji: "🚀👨🎹",
			Clues: []string{"1972 single", "Piano ballad", "Elton John"},
			Answers: []string{
				"rocket man elton john",
				"rocket man - elton john",
			},
			DisplayAnswer: "Rocket Man - Elton John",
		},
		{
			ID:    6,
			Type:  puzzleTypeSong,
			Emoji: "💃🕺🌃",
			Clues: []string{"Disco era", "Bee Gees", "Soundtrack single"},
			Answers: []string{
				"stayin alive",
				"stayin' alive",
				"staying alive",
			},
			DisplayAnswer: "Stayin' Alive",
		},
		{
			ID:    7,
			Type:  puzzleTypeArtist,
			Emoji: "🐝👸",
			Clues: []string{"Destiny's Child", "Lemonade", "Single Ladies"},
			Answers: []string{
				"beyonce",
				"beyoncé",
			},
			DisplayAnswer: "Beyoncé",
		},
		{
			ID:    8,
			Type:  puzzleTypeSong,
			Emoji: "🧊🧊👶",
			Clues: []string{"1990 rap hit", "Under Pressure bassline", "Vanilla Ice"},
			Answers: []string{
				"ice ice baby",
			},
			DisplayAnswer: "Ice Ice Baby",
		},
	}
}
