package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readWSMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read websocket: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode websocket payload: %v", err)
	}
	return payload
}

func TestRoomWebsocketSendsSnapshotOnConnect(t *testing.T) {
	_, ts := newTestServer(t)
	code, _ := createRoom(t, ts, "alice")

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/rooms/" + code + "?role=creator"
	conn := dialWS(t, wsURL)

	snapshot := readWSMessage(t, conn)
	if snapshot["room_code"] != code {
		t.Errorf("expected room_code %s, got %v", code, snapshot["room_code"])
	}
	if snapshot["status"] != statusWaiting {
		t.Errorf("expected %s, got %v", statusWaiting, snapshot["status"])
	}
}

func TestRoomWebsocketBroadcastsJoin(t *testing.T) {
	_, ts := newTestServer(t)
	code, _ := createRoom(t, ts, "alice")

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/rooms/" + code
	conn := dialWS(t, wsURL)
	readWSMessage(t, conn) // initial snapshot

	joinRoom(t, ts, code, "bob")

	snapshot := readWSMessage(t, conn)
	if snapshot["status"] != statusPending {
		t.Errorf("expected %s after join, got %v", statusPending, snapshot["status"])
	}
	if snapshot["pending_player"] != "bob" {
		t.Errorf("expected pending bob, got %v", snapshot["pending_player"])
	}
}

func TestRoomWebsocketUnknownRoom(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/rooms/ZZZZZZ"
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatal("dialing an unknown room should fail the upgrade")
	}
}

func TestHomeWebsocketSendsRoomList(t *testing.T) {
	_, ts := newTestServer(t)
	code, _ := createRoom(t, ts, "alice")

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws/home"
	conn := dialWS(t, wsURL)

	payload := readWSMessage(t, conn)
	rooms, ok := payload["rooms"].([]any)
	if !ok || len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %v", payload["rooms"])
	}
	room := rooms[0].(map[string]any)
	if room["code"] != code {
		t.Errorf("expected code %s, got %v", code, room["code"])
	}
}
