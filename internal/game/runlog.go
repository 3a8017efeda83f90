package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run outcomes.
const (
	OutcomeEscaped = "escaped"
	OutcomeCaught  = "caught"
	OutcomeQuit    = "quit"
)

// RunLog records one finished run.
type RunLog struct {
	Seed          int64     `json:"seed"`
	Started       time.Time `json:"started"`
	Outcome       string    `json:"outcome"`
	DepthReached  int       `json:"depth_reached"`
	TurnsPlayed   int       `json:"turns_played"`
	TilesExplored int       `json:"tiles_explored"`
	TimesSpotted  int       `json:"times_spotted"`
}

// saveRunLog appends the run as a single JSON line to runs.jsonl.
func saveRunLog(log RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// runLogDir returns the directory where run logs are stored:
// $XDG_DATA_HOME/shadowcast-rogue, defaulting to ~/.local/share/shadowcast-rogue.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shadowcast-rogue"), nil
}
