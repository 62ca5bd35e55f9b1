package server

import "testing"

func TestParseRoomPath(t *testing.T) {
	cases := []struct {
		path   string
		code   string
		action string
		ok     bool
	}{
		{"/api/rooms/ABC123", "ABC123", "", true},
		{"/api/rooms/ABC123/", "ABC123", "", true},
		{"/api/rooms/ABC123/join", "ABC123", "join", true},
		{"/api/rooms/ABC123/join/extra", "", "", false},
		{"/api/rooms/", "", "", false},
		{"/api/other/ABC123", "", "", false},
	}
	for _, tc := range cases {
		code, action, ok := parseRoomPath(tc.path)
		if code != tc.code || action != tc.action || ok != tc.ok {
			t.Errorf("parseRoomPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.path, code, action, ok, tc.code, tc.action, tc.ok)
		}
	}
}

func TestParseWebsocketPath(t *testing.T) {
	if code, ok := parseWebsocketPath("/ws/rooms/ABC123"); !ok || code != "ABC123" {
		t.Errorf("got (%q, %v)", code, ok)
	}
	if _, ok := parseWebsocketPath("/ws/rooms/"); ok {
		t.Error("empty code must fail")
	}
	if _, ok := parseWebsocketPath("/ws/rooms/a/b"); ok {
		t.Error("nested path must fail")
	}
}

func TestParseViewPath(t *testing.T) {
	if code, ok := parseViewPath("/room/", "/room/ABC123"); !ok || code != "ABC123" {
		t.Errorf("got (%q, %v)", code, ok)
	}
	if _, ok := parseViewPath("/room/", "/game/ABC123"); ok {
		t.Error("wrong prefix must fail")
	}
}

func TestNewRoomCodeAlphabet(t *testing.T) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for i := 0; i < 50; i++ {
		code := newRoomCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if !containsRune(alphabet, r) {
				t.Fatalf("code %q uses %q outside the alphabet", code, r)
			}
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, candidate := range s {
		if candidate == r {
			return true
		}
	}
	return false
}
