package server

import (
	"net/http"
	"testing"
)

func TestListPuzzlesWithoutDatabaseIsReadonly(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/puzzles", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["readonly"] != true {
		t.Error("builtin library should report readonly")
	}
	puzzles := body["puzzles"].([]any)
	if len(puzzles) == 0 {
		t.Fatal("builtin library must not be empty")
	}
}

func TestListPuzzlesTypeFilter(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/puzzles?type="+puzzleTypeArtist, nil)
	body := decodeBody(t, resp)
	for _, entry := range body["puzzles"].([]any) {
		puzzle := entry.(map[string]any)
		if puzzle["type"] != puzzleTypeArtist {
			t.Errorf("filter leaked type %v", puzzle["type"])
		}
	}
}

func TestPuzzleMutationsRequireDatabase(t *testing.T) {
	_, ts := newTestServer(t)

	payload := map[string]any{
		"type":           puzzleTypeSong,
		"emoji":          "🎸",
		"clues":          []string{"a", "b", "c"},
		"answers":        []string{"song"},
		"display_answer": "Song",
	}
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/puzzles"},
		{http.MethodPut, "/api/puzzles/1"},
		{http.MethodDelete, "/api/puzzles/1"},
	}
	for _, tc := range cases {
		resp := doRequest(t, ts, tc.method, tc.path, payload)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("%s %s: expected status %d, got %d",
				tc.method, tc.path, http.StatusServiceUnavailable, resp.StatusCode)
		}
	}
}

func TestPuzzleTypesEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doRequest(t, ts, http.MethodGet, "/api/puzzles/types", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	types := body["types"].([]any)
	if len(types) != 4 {
		t.Fatalf("expected 4 puzzle types, got %d", len(types))
	}
}

func TestPuzzleIDFromPath(t *testing.T) {
	cases := []struct {
		path string
		id   uint
		ok   bool
	}{
		{"/api/puzzles/7", 7, true},
		{"/api/puzzles/7/", 7, true},
		{"/api/puzzles/abc", 0, false},
		{"/api/puzzles/-1", 0, false},
		{"/api/puzzles/", 0, false},
	}
	for _, tc := range cases {
		id, ok := puzzleIDFromPath(tc.path)
		if id != tc.id || ok != tc.ok {
			t.Errorf("puzzleIDFromPath(%q) = (%d, %v), want (%d, %v)", tc.path, id, ok, tc.id, tc.ok)
		}
	}
}
