package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	EndedAt        time.Time `json:"ended_at"`
	Difficulty     string    `json:"difficulty"`
	Mode           string    `json:"mode"`
	Skin           string    `json:"skin"`
	Networked      bool      `json:"networked"`
	Score          int       `json:"score"`
	Level          int       `json:"level"`
	Kills          int       `json:"kills"`
	ShotsFired     int       `json:"shots_fired"`
	DamageTaken    int       `json:"damage_taken"`
	BossesDefeated int       `json:"bosses_defeated"`
	Frames         int       `json:"frames"`
}

// saveRunLog appends the completed run as a single JSON line to
// dir/runs.jsonl. Failures are logged and otherwise ignored so a disk
// problem never interrupts play.
func saveRunLog(dir string, log RunLog) {
	if log.EndedAt.IsZero() {
		log.EndedAt = time.Now().UTC()
	}
	if err := appendRunLog(dir, log); err != nil {
		slog.Warn("run log not saved", "dir", dir, "err", err)
	}
}

func appendRunLog(dir string, log RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
