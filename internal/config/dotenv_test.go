package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaults(t *testing.T) {
	cfg := Load()
	if cfg.MaxPlayers != 2 {
		t.Errorf("expected 2 max players, got %d", cfg.MaxPlayers)
	}
	if cfg.PuzzlesPerGame != 10 {
		t.Errorf("expected 10 puzzles per game, got %d", cfg.PuzzlesPerGame)
	}
	if cfg.WinScore != 5 {
		t.Errorf("expected win score 5, got %d", cfg.WinScore)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PUZZLES_PER_GAME", "6")
	t.Setenv("WIN_SCORE", "3")
	t.Setenv("ROUND_SECONDS", "0")

	cfg := Load()
	if cfg.PuzzlesPerGame != 6 {
		t.Errorf("expected 6, got %d", cfg.PuzzlesPerGame)
	}
	if cfg.WinScore != 3 {
		t.Errorf("expected 3, got %d", cfg.WinScore)
	}
	if cfg.RoundSeconds != 0 {
		t.Errorf("zero disables the countdown, got %d", cfg.RoundSeconds)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_PLAYERS", "1")
	t.Setenv("WIN_SCORE", "banana")

	cfg := Load()
	if cfg.MaxPlayers != 2 {
		t.Errorf("single-player rooms are not a thing, got %d", cfg.MaxPlayers)
	}
	if cfg.WinScore != 5 {
		t.Errorf("expected default win score, got %d", cfg.WinScore)
	}
}

func TestLoadDotEnvMissingFileIsFine(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}

func TestLoadDotEnvReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PUZZLES_PER_GAME=4\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PUZZLES_PER_GAME", "")
	os.Unsetenv("PUZZLES_PER_GAME")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}
	if got := os.Getenv("PUZZLES_PER_GAME"); got != "4" {
		t.Errorf("expected 4, got %q", got)
	}
}
