package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radtools/internal/logging"
)

func sourceFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("source bytes"), 0o644))
	return path
}

func TestTrackerMarksAndResumes(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "out", ".progress.json")
	src := sourceFile(t, dir, "a.dcm")

	tracker := NewTracker(statePath, logging.Discard())
	assert.False(t, tracker.Done(src))

	tracker.MarkSuccess(src, filepath.Join(dir, "out", "a.dcm"))
	assert.True(t, tracker.Done(src))

	// A fresh tracker sees the persisted state.
	reloaded := NewTracker(statePath, logging.Discard())
	assert.True(t, reloaded.Done(src))

	succeeded, failed := reloaded.Counts()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, failed)
}

func TestTrackerDetectsChangedSource(t *testing.T) {
	dir := t.TempDir()
	src := sourceFile(t, dir, "a.dcm")

	tracker := NewTracker(filepath.Join(dir, ".progress.json"), logging.Discard())
	tracker.MarkSuccess(src, "out")
	require.True(t, tracker.Done(src))

	require.NoError(t, os.WriteFile(src, []byte("different content entirely"), 0o644))
	assert.False(t, tracker.Done(src))
}

func TestTrackerFailedIsNotDone(t *testing.T) {
	dir := t.TempDir()
	src := sourceFile(t, dir, "a.dcm")

	tracker := NewTracker(filepath.Join(dir, ".progress.json"), logging.Discard())
	tracker.MarkFailed(src, "could not parse DICOM")
	assert.False(t, tracker.Done(src))

	_, failed := tracker.Counts()
	assert.Equal(t, 1, failed)
}

func TestTrackerClearFailed(t *testing.T) {
	dir := t.TempDir()
	good := sourceFile(t, dir, "good.dcm")
	bad := sourceFile(t, dir, "bad.dcm")

	tracker := NewTracker(filepath.Join(dir, ".progress.json"), logging.Discard())
	tracker.MarkSuccess(good, "out")
	tracker.MarkFailed(bad, "boom")

	assert.Equal(t, 1, tracker.ClearFailed())
	assert.Equal(t, 0, tracker.ClearFailed())

	succeeded, failed := tracker.Counts()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, failed)
}

func TestTrackerInMemoryOnly(t *testing.T) {
	dir := t.TempDir()
	src := sourceFile(t, dir, "a.dcm")

	tracker := NewTracker("", logging.Discard())
	tracker.MarkSuccess(src, "out")
	assert.True(t, tracker.Done(src))
}

func TestTrackerIgnoresCorruptState(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, ".progress.json")
	require.NoError(t, os.WriteFile(statePath, []byte("{not json"), 0o644))

	tracker := NewTracker(statePath, logging.Discard())
	succeeded, failed := tracker.Counts()
	assert.Zero(t, succeeded)
	assert.Zero(t, failed)
}

func TestErrorLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "errors.log")

	log, err := NewErrorLog(path)
	require.NoError(t, err)

	log.Append("/data/bad.dcm", "required tag missing")
	log.Append("/data/worse.dcm", "could not parse DICOM")
	assert.Equal(t, 2, log.Count())
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bad.dcm | required tag missing")
	assert.Contains(t, string(data), "worse.dcm | could not parse DICOM")
}

func TestErrorLogCountingOnly(t *testing.T) {
	log, err := NewErrorLog("")
	require.NoError(t, err)

	log.Append("a", "x")
	assert.Equal(t, 1, log.Count())
	assert.NoError(t, log.Close())
}
