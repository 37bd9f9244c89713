// Package progress persists per-file batch state so interrupted runs can be
// resumed and failed files retried.
package progress

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the recorded outcome for one source file.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Entry records the outcome of processing one file.
type Entry struct {
	Status    Status `json:"status"`
	Stamp     string `json:"stamp"` // size/mtime fingerprint of the source
	Output    string `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// trackerState is the on-disk JSON layout.
type trackerState struct {
	Files   map[string]*Entry `json:"files"`
	Updated string            `json:"updated"`
}

// Tracker keeps per-file outcomes keyed by source path, persisted as JSON
// after every change.
type Tracker struct {
	path    string
	entries map[string]*Entry
	log     logrus.FieldLogger
}

// NewTracker loads existing state from path if present. An empty path keeps
// the tracker in-memory only.
func NewTracker(path string, log logrus.FieldLogger) *Tracker {
	t := &Tracker{
		path:    path,
		entries: make(map[string]*Entry),
		log:     log,
	}
	if path != "" {
		t.load()
	}
	return t
}

func (t *Tracker) load() {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return // no prior state
	}

	var state trackerState
	if err := json.Unmarshal(data, &state); err != nil {
		t.log.WithError(err).Warn("could not load progress state, starting fresh")
		return
	}
	if state.Files != nil {
		t.entries = state.Files
	}
	t.log.WithField("entries", len(t.entries)).Debug("loaded progress state")
}

func (t *Tracker) save() {
	if t.path == "" {
		return
	}

	state := trackerState{
		Files:   t.entries,
		Updated: time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		t.log.WithError(err).Warn("could not marshal progress state")
		return
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		t.log.WithError(err).Warn("could not create progress directory")
		return
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		t.log.WithError(err).Warn("could not save progress state")
	}
}

// stamp fingerprints a source file by size and modification time. Cheap
// change detection, not integrity.
func stamp(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%d_%d", info.Size(), info.ModTime().Unix())
	return fmt.Sprintf("%x", h.Sum64())
}

// Done reports whether path was already processed successfully and has not
// changed since.
func (t *Tracker) Done(path string) bool {
	entry, ok := t.entries[path]
	if !ok || entry.Status != StatusSuccess {
		return false
	}
	return entry.Stamp == stamp(path)
}

// MarkSuccess records a successful run for path.
func (t *Tracker) MarkSuccess(path, output string) {
	t.entries[path] = &Entry{
		Status:    StatusSuccess,
		Stamp:     stamp(path),
		Output:    output,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	t.save()
}

// MarkFailed records a failure for path.
func (t *Tracker) MarkFailed(path, msg string) {
	t.entries[path] = &Entry{
		Status:    StatusFailed,
		Stamp:     stamp(path),
		Error:     msg,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	t.save()
}

// ClearFailed drops every failed entry so those files run again. Returns
// the number cleared.
func (t *Tracker) ClearFailed() int {
	count := 0
	for key, entry := range t.entries {
		if entry.Status == StatusFailed {
			delete(t.entries, key)
			count++
		}
	}
	if count > 0 {
		t.save()
		t.log.WithField("cleared", count).Info("cleared failed entries for retry")
	}
	return count
}

// Counts returns how many entries succeeded and failed.
func (t *Tracker) Counts() (succeeded, failed int) {
	for _, entry := range t.entries {
		switch entry.Status {
		case StatusSuccess:
			succeeded++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, failed
}
