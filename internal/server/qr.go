package server

import (
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// handleRoomQR renders the room's join link as a QR code so the second
// player can scan instead of typing the code.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request, roomCode string) {
	if _, ok := s.store.GetRoom(roomCode); !ok {
		http.NotFound(w, r)
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	joinURL := fmt.Sprintf("%s://%s/room/%s", scheme, r.Host, roomCode)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render qr code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
