package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"emoji-songs/internal/config"
	"emoji-songs/internal/db"

	"gorm.io/datatypes"
)

type puzzleDocument struct {
	Puzzles []puzzleRecord `json:"puzzles"`
}

type puzzleRecord struct {
	Type          string   `json:"type"`
	Emoji         string   `json:"emoji"`
	Clues         []string `json:"clues"`
	Answers       []string `json:"answers"`
	DisplayAnswer string   `json:"display_answer"`
	VideoURL      string   `json:"video_url"`
	Links         []string `json:"links"`
}

func main() {
	filePath := flag.String("file", "puzzles.json", "path to puzzle document")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	records, err := readPuzzles(*filePath)
	if err != nil {
		log.Fatalf("failed to read puzzles: %v", err)
	}

	inserted := 0
	for _, record := range records {
		clues, err := json.Marshal(record.Clues)
		if err != nil {
			log.Fatalf("failed to encode clues: %v", err)
		}
		answers, err := json.Marshal(record.Answers)
		if err != nil {
			log.Fatalf("failed to encode answers: %v", err)
		}
		links, err := json.Marshal(record.Links)
		if err != nil {
			log.Fatalf("failed to encode links: %v", err)
		}
		entry := db.Puzzle{
			Type:          record.Type,
			Emoji:         record.Emoji,
			Clues:         datatypes.JSON(clues),
			Answers:       datatypes.JSON(answers),
			DisplayAnswer: record.DisplayAnswer,
			VideoURL:      record.VideoURL,
			Links:         datatypes.JSON(links),
		}
		if err := conn.FirstOrCreate(&entry, db.Puzzle{Emoji: entry.Emoji, DisplayAnswer: entry.DisplayAnswer}).Error; err != nil {
			log.Fatalf("failed to upsert puzzle: %v", err)
		}
		inserted++
	}

	log.Printf("loaded %d puzzles", inserted)
}

func readPuzzles(path string) ([]puzzleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc puzzleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var records []puzzleRecord
	for _, record := range doc.Puzzles {
		record.Type = strings.TrimSpace(record.Type)
		record.Emoji = strings.TrimSpace(record.Emoji)
		record.DisplayAnswer = strings.TrimSpace(record.DisplayAnswer)
		if record.Emoji == "" || record.DisplayAnswer == "" || len(record.Answers) == 0 {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
