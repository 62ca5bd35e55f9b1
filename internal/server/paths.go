package server

import "strings"

// parseRoomPath splits "/api/rooms/{code}" and "/api/rooms/{code}/{action}".
func parseRoomPath(path string) (string, string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/rooms/")
	if !ok || rest == "" {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], "", true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

// parsePuzzlePath splits "/api/puzzles/{id}".
func parsePuzzlePath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/puzzles/")
	if !ok || rest == "" {
		return "", false
	}
	id := strings.Trim(rest, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// parseWebsocketPath splits "/ws/rooms/{code}".
func parseWebsocketPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/ws/rooms/")
	if !ok || rest == "" {
		return "", false
	}
	code := strings.Trim(rest, "/")
	if code == "" || strings.Contains(code, "/") {
		return "", false
	}
	return code, true
}

// parseViewPath splits "/room/{code}" style view paths for the given prefix.
func parseViewPath(prefix, path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		return "", false
	}
	code := strings.Trim(rest, "/")
	if code == "" || strings.Contains(code, "/") {
		return "", false
	}
	return code, true
}
