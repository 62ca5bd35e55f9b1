package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength   = 20
	maxAnswerLength = 100
	maxEmojiLength  = 32
	maxClueLength   = 120
	maxDisplayLen   = 160
	requiredClues   = 3
)

func validateName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", errors.New("name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

func validateSubmission(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.New("answer is required")
	}
	if utf8.RuneCountInString(trimmed) > maxAnswerLength {
		return "", fmt.Errorf("answer must be %d characters or fewer", maxAnswerLength)
	}
	return trimmed, nil
}

type puzzleInput struct {
	Type          string   `json:"type"`
	Emoji         string   `json:"emoji"`
	Clues         []string `json:"clues"`
	Answers       []string `json:"answers"`
	DisplayAnswer string   `json:"display_answer"`
	VideoURL      string   `json:"video_url"`
	Links         []string `json:"links"`
}

func validatePuzzleInput(input puzzleInput) (puzzleInput, error) {
	switch input.Type {
	case puzzleTypeArtist, puzzleTypeSong, puzzleTypeSongArtist, puzzleTypeAlbum:
	default:
		return puzzleInput{}, errors.New("type must be one of artist, song, song-artist, album")
	}
	input.Emoji = strings.TrimSpace(input.Emoji)
	if input.Emoji == "" {
		return puzzleInput{}, errors.New("emoji is required")
	}
	if utf8.RuneCountInString(input.Emoji) > maxEmojiLength {
		return puzzleInput{}, fmt.Errorf("emoji must be %d characters or fewer", maxEmojiLength)
	}
	if len(input.Clues) != requiredClues {
		return puzzleInput{}, fmt.Errorf("exactly %d clues are required", requiredClues)
	}
	for i, clue := range input.Clues {
		clue = normalizeText(clue)
		if clue == "" {
			return puzzleInput{}, fmt.Errorf("clue %d is required", i+1)
		}
		if utf8.RuneCountInString(clue) > maxClueLength {
			return puzzleInput{}, fmt.Errorf("clue %d must be %d characters or fewer", i+1, maxClueLength)
		}
		input.Clues[i] = clue
	}
	answers := make([]string, 0, len(input.Answers))
	for _, answer := range input.Answers {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		if utf8.RuneCountInString(answer) > maxAnswerLength {
			return puzzleInput{}, fmt.Errorf("answers must be %d characters or fewer", maxAnswerLength)
		}
		answers = append(answers, answer)
	}
	if len(answers) == 0 {
		return puzzleInput{}, errors.New("at least one accepted answer is required")
	}
	input.Answers = answers
	input.DisplayAnswer = normalizeText(input.DisplayAnswer)
	if input.DisplayAnswer == "" {
		return puzzleInput{}, errors.New("display answer is required")
	}
	if utf8.RuneCountInString(input.DisplayAnswer) > maxDisplayLen {
		return puzzleInput{}, fmt.Errorf("display answer must be %d characters or fewer", maxDisplayLen)
	}
	input.VideoURL = strings.TrimSpace(input.VideoURL)
	return input, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
