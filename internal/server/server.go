package server

import (
	"net/http"
	"sync"
	"time"

	"emoji-songs/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	ws       *wsHub
	homeWS   *homeHub
	cfg      config.Config
	sessions *sessionStore
	timersMu sync.Mutex
	timers   map[string]*time.Timer
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		store:    NewStore(),
		db:       conn,
		ws:       newWSHub(),
		homeWS:   newHomeHub(),
		cfg:      cfg,
		sessions: newSessionStore(conn),
		timers:   make(map[string]*time.Timer),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /room/", s.handleRoomView)
	mux.HandleFunc("GET /game/", s.handleGameView)
	mux.HandleFunc("GET /admin", s.handleAdminView)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("POST /api/rooms/", s.handleRoomSubroutes)
	mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	mux.HandleFunc("GET /api/puzzles/types", s.handlePuzzleTypes)
	mux.HandleFunc("PUT /api/puzzles/", s.handleUpdatePuzzle)
	mux.HandleFunc("DELETE /api/puzzles/", s.handleDeletePuzzle)
	mux.HandleFunc("GET /ws/rooms/", s.handleWebsocket)
	mux.HandleFunc("GET /ws/home", s.handleHomeWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

func (s *Server) snapshot(room *Room) map[string]any {
	return snapshotWithConfig(room, s.cfg)
}
