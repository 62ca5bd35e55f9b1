package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"emoji-songs/internal/db"

	"gorm.io/datatypes"
)

// Admin puzzle library API. Without a database the library is the read-only
// built-in set, so mutations report the missing configuration instead of
// silently dropping edits.

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, 25, 100)
	typeFilter := strings.TrimSpace(r.URL.Query().Get("type"))

	if s.db == nil {
		puzzles := make([]map[string]any, 0)
		for _, card := range fallbackPuzzles() {
			if typeFilter != "" && card.Type != typeFilter {
				continue
			}
			puzzles = append(puzzles, map[string]any{
				"id":             card.ID,
				"type":           card.Type,
				"emoji":          card.Emoji,
				"clues":          card.Clues,
				"answers":        card.Answers,
				"display_answer": card.DisplayAnswer,
				"video_url":      card.VideoURL,
				"links":          card.Links,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"puzzles":  puzzles,
			"page":     1,
			"per_page": len(puzzles),
			"total":    len(puzzles),
			"readonly": true,
		})
		return
	}

	query := s.db.Model(&db.Puzzle{})
	if typeFilter != "" {
		query = query.Where("type = ?", typeFilter)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load puzzles")
		return
	}
	var records []db.Puzzle
	offset := (page - 1) * perPage
	if err := query.Order("id asc").Offset(offset).Limit(perPage).Find(&records).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load puzzles")
		return
	}
	puzzles := make([]map[string]any, 0, len(records))
	for _, record := range records {
		puzzles = append(puzzles, puzzleRecordPayload(record))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"puzzles":  puzzles,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	var input puzzleInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid puzzle payload")
		return
	}
	input, err := validatePuzzleInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := puzzleRecordFromInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "puzzle already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save puzzle")
		return
	}
	log.Printf("puzzle created puzzle_id=%d type=%s", record.ID, record.Type)
	writeJSON(w, http.StatusCreated, puzzleRecordPayload(record))
}

func (s *Server) handleUpdatePuzzle(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	id, ok := puzzleIDFromPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var input puzzleInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid puzzle payload")
		return
	}
	input, err := validatePuzzleInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var record db.Puzzle
	if err := s.db.First(&record, id).Error; err != nil {
		writeError(w, http.StatusNotFound, "puzzle not found")
		return
	}
	updated, err := puzzleRecordFromInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated.ID = record.ID
	updated.CreatedAt = record.CreatedAt
	if err := s.db.Save(&updated).Error; err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "puzzle already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update puzzle")
		return
	}
	log.Printf("puzzle updated puzzle_id=%d", updated.ID)
	writeJSON(w, http.StatusOK, puzzleRecordPayload(updated))
}

func (s *Server) handleDeletePuzzle(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}
	id, ok := puzzleIDFromPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	result := s.db.Delete(&db.Puzzle{}, id)
	if result.Error != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete puzzle")
		return
	}
	if result.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "puzzle not found")
		return
	}
	log.Printf("puzzle deleted puzzle_id=%d", id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handlePuzzleTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"types": []string{
			puzzleTypeArtist,
			puzzleTypeSong,
			puzzleTypeSongArtist,
			puzzleTypeAlbum,
		},
	})
}

func puzzleIDFromPath(path string) (uint, bool) {
	raw, ok := parsePuzzlePath(path)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func puzzleRecordFromInput(input puzzleInput) (db.Puzzle, error) {
	clues, err := json.Marshal(input.Clues)
	if err != nil {
		return db.Puzzle{}, err
	}
	answers, err := json.Marshal(input.Answers)
	if err != nil {
		return db.Puzzle{}, err
	}
	links, err := json.Marshal(input.Links)
	if err != nil {
		return db.Puzzle{}, err
	}
	return db.Puzzle{
		Type:          input.Type,
		Emoji:         input.Emoji,
		Clues:         datatypes.JSON(clues),
		Answers:       datatypes.JSON(answers),
		DisplayAnswer: input.DisplayAnswer,
		VideoURL:      input.VideoURL,
		Links:         datatypes.JSON(links),
	}, nil
}

func puzzleRecordPayload(record db.Puzzle) map[string]any {
	card, err := cardFromRecord(record)
	if err != nil {
		return map[string]any{"id": record.ID}
	}
	return map[string]any{
		"id":             card.ID,
		"type":           card.Type,
		"emoji":          card.Emoji,
		"clues":          card.Clues,
		"answers":        card.Answers,
		"display_answer": card.DisplayAnswer,
		"video_url":      card.VideoURL,
		"links":          card.Links,
	}
}

func parsePagination(r *http.Request, defaultPerPage, maxPerPage int) (int, int) {
	page := 1
	perPage := defaultPerPage
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			page = value
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("per_page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			perPage = value
		}
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
