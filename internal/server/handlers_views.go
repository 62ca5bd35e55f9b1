package server

import (
	"log"
	"net/http"

	"emoji-songs/internal/web"

	"github.com/a-h/templ"
)

const missingRoomFlash = "Room not found. Start a new one or join with a fresh code."

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	flash := ""
	name := ""
	if s.sessions != nil {
		flash = s.sessions.PopFlash(w, r)
		name, _ = s.sessions.GetPlayer(w, r)
	}
	templ.Handler(web.Home(flash, name)).ServeHTTP(w, r)
}

func (s *Server) handleRoomView(w http.ResponseWriter, r *http.Request) {
	roomCode, ok := parseViewPath("/room/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, exists := s.store.GetRoom(roomCode); !exists {
		s.redirectMissingRoom(w, r, roomCode)
		return
	}
	name := ""
	if s.sessions != nil {
		name, _ = s.sessions.GetPlayer(w, r)
	}
	templ.Handler(web.Room(roomCode, name)).ServeHTTP(w, r)
}

func (s *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	roomCode, ok := parseViewPath("/game/", r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, exists := s.store.GetRoom(roomCode); !exists {
		s.redirectMissingRoom(w, r, roomCode)
		return
	}
	templ.Handler(web.Game(roomCode)).ServeHTTP(w, r)
}

// redirectMissingRoom sends a stale bookmark or mistyped code back to the
// landing page with a flash explaining what happened.
func (s *Server) redirectMissingRoom(w http.ResponseWriter, r *http.Request, roomCode string) {
	if s.sessions != nil {
		s.sessions.SetFlash(w, r, missingRoomFlash)
	}
	log.Printf("view missing room_code=%s path=%s", roomCode, r.URL.Path)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleAdminView(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Admin()).ServeHTTP(w, r)
}
