package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hero-blaster")

	saveRunLog(dir, RunLog{Difficulty: "hard", Mode: "multi", Skin: "dc", Score: 31, Level: 3, Kills: 31})

	data, err := os.ReadFile(filepath.Join(dir, "runs.jsonl"))
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Errorf("log entry should end with newline; got: %q", content)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if got.Score != 31 || got.Mode != "multi" || got.EndedAt.IsZero() {
		t.Errorf("entry = %+v", got)
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	dir := t.TempDir()
	for i := range 3 {
		saveRunLog(dir, RunLog{Mode: "single", Score: i})
	}

	data, err := os.ReadFile(filepath.Join(dir, "runs.jsonl"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}

func TestSaveRunLogUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// A file where the directory should be must not panic.
	saveRunLog(filepath.Join(file, "sub"), RunLog{})
}
