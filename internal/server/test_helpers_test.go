package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testPlayer struct {
	ID    int
	Token string
}

func createRoom(t *testing.T, ts *httptest.Server, name string) (string, testPlayer) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["room_code"].(string), testPlayer{
		ID:    int(body["player_id"].(float64)),
		Token: body["token"].(string),
	}
}

func joinRoom(t *testing.T, ts *httptest.Server, roomCode, name string) testPlayer {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomCode+"/join", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return testPlayer{
		ID:    int(body["player_id"].(float64)),
		Token: body["token"].(string),
	}
}

func admitRoom(t *testing.T, ts *httptest.Server, roomCode string, creator testPlayer) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomCode+"/admit", map[string]any{
		"player_id": creator.ID,
		"token":     creator.Token,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, roomCode string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomCode, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func submitAnswer(t *testing.T, ts *httptest.Server, roomCode string, player testPlayer, answer string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomCode+"/answers", map[string]any{
		"player_id": player.ID,
		"token":     player.Token,
		"answer":    answer,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func signalReady(t *testing.T, ts *httptest.Server, roomCode string, player testPlayer) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomCode+"/ready", map[string]any{
		"player_id": player.ID,
		"token":     player.Token,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

// currentAnswer reaches into the store for the puzzle the room is showing,
// since snapshots withhold accepted answers while a round is open.
func currentAnswer(t *testing.T, srv *Server, roomCode string) string {
	t.Helper()
	room, ok := srv.store.GetRoom(roomCode)
	if !ok {
		t.Fatalf("room %s not found", roomCode)
	}
	card := currentPuzzle(room)
	if card == nil || len(card.Answers) == 0 {
		t.Fatalf("room %s has no current puzzle", roomCode)
	}
	return card.Answers[0]
}
