package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nucleus-renderer/internal/logging"
)

func TestParseMoves(t *testing.T) {
	if _, err := parseMoves("udlr.UD"); err != nil {
		t.Errorf("valid moves rejected: %v", err)
	}
	if _, err := parseMoves("ux"); err == nil {
		t.Error("invalid move accepted")
	}
}

func TestRealMainExitCodes(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(nil) })
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"missing config", []string{"-config", filepath.Join(dir, "missing.json")}, 1},
		{"bad moves", []string{"-log", filepath.Join(dir, "bad.log"), "-moves", "rx"}, 1},
		{"short run", []string{"-frames", "2", "-snapshot", filepath.Join(dir, "shot.png")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := realMain(tt.args); got != tt.want {
				t.Errorf("realMain(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "shot.png")); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRealMainErrorReachesLogFile(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(nil) })
	path := filepath.Join(t.TempDir(), "squares.log")

	if code := realMain([]string{"-log", path, "-moves", "?"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "invalid moves") {
		t.Errorf("log file missing error record:\n%s", data)
	}
}
