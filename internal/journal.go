package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Journal appends one JSON line per event of a tagging run.
// All methods are no-ops on a nil *Journal.
type Journal struct {
	ID   string // Run ID (timestamp: 2025-01-15-103045)
	Path string // Full path of the .jsonl file
	file *os.File
}

// JournalEvent represents a single event in the journal
type JournalEvent struct {
	Event    string   `json:"event"`
	Ts       string   `json:"ts"`
	Src      string   `json:"src,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Rating   *int     `json:"rating,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Error    string   `json:"error,omitempty"`

	ErrorCategory   string `json:"error_category,omitempty"`
	ErrorSeverity   string `json:"error_severity,omitempty"`
	ErrorSuggestion string `json:"error_suggestion,omitempty"`

	// Run start/end fields
	Root       string `json:"root,omitempty"`
	Mode       string `json:"mode,omitempty"`
	TotalFiles int    `json:"total_files,omitempty"`
	Visited    int    `json:"visited,omitempty"`
	Tagged     int    `json:"tagged,omitempty"`
	Skipped    int    `json:"skipped,omitempty"`
	ErrorCount int    `json:"errors,omitempty"`
}

// NewJournal creates <dir>/<run-id>.jsonl.
func NewJournal(dir string) (*Journal, error) {
	id := time.Now().Format("2006-01-02-150405")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	path := filepath.Join(dir, id+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal file: %w", err)
	}
	return &Journal{ID: id, Path: path, file: f}, nil
}

func (j *Journal) LogRunStart(root string, mode Mode, totalFiles int) {
	j.write(JournalEvent{Event: "run_start", Root: root, Mode: mode.String(), TotalFiles: totalFiles})
}

func (j *Journal) LogTagged(src string, keywords []string, rating *int) {
	j.write(JournalEvent{Event: "tagged", Src: src, Keywords: keywords, Rating: rating})
}

func (j *Journal) LogSkipped(src, reason string) {
	j.write(JournalEvent{Event: "skipped", Src: src, Reason: reason})
}

func (j *Journal) LogError(procErr *ProcessError) {
	j.write(JournalEvent{
		Event:           "error",
		Src:             procErr.FilePath,
		Error:           procErr.OriginalErr.Error(),
		ErrorCategory:   string(procErr.Category),
		ErrorSeverity:   string(procErr.Severity),
		ErrorSuggestion: procErr.Suggestion,
	})
}

func (j *Journal) LogRunEnd(res *WalkResult) {
	j.write(JournalEvent{
		Event:      "run_end",
		Visited:    res.Visited,
		Tagged:     res.Modified,
		Skipped:    res.Visited - res.Modified - res.Failed,
		ErrorCount: len(res.Failures),
	})
}

func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	return j.file.Close()
}

// write appends event as a JSON line. Journal failures never stop a run.
func (j *Journal) write(event JournalEvent) {
	if j == nil || j.file == nil {
		return
	}
	event.Ts = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return
	}
	_ = j.file.Sync()
}
