package anonymize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, PolicyContinue, p)

	p, err = ParsePolicy("abort")
	require.NoError(t, err)
	assert.Equal(t, PolicyAbort, p)

	_, err = ParsePolicy("panic")
	assert.Error(t, err)
}

func TestOpenDirectorySkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not dicom"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.dcm"), []byte("not dicom"), 0o644))

	d, err := OpenDirectory(dir, true, "", nil)
	require.NoError(t, err)
	assert.Empty(t, d.Files)
	assert.Empty(t, d.Index)
}

func TestOpenDirectoryFiltersPriorOutput(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, DefaultOutputName)
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "done.dcm"), []byte("x"), 0o644))

	d, err := OpenDirectory(dir, true, "", nil)
	require.NoError(t, err)
	assert.Empty(t, d.Files)
}

func TestOpenDirectoryFiltersCustomOutputName(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "deid")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "done.dcm"), []byte("x"), 0o644))

	d, err := OpenDirectory(dir, true, "deid", nil)
	require.NoError(t, err)
	assert.Empty(t, d.Files)
}

func TestExcludedOutput(t *testing.T) {
	assert.True(t, excludedOutput(filepath.Join("/data", "deid", "scan.dcm"), "deid"))
	assert.False(t, excludedOutput(filepath.Join("/data", "scan.dcm"), "deid"))

	// An earlier default-named run stays excluded after a rename.
	assert.True(t, excludedOutput(filepath.Join("/data", DefaultOutputName, "scan.dcm"), "deid"))
	assert.True(t, excludedOutput(filepath.Join("/data", DefaultOutputName, "scan.dcm"), DefaultOutputName))
}

func TestOpenDirectoryMissing(t *testing.T) {
	_, err := OpenDirectory(filepath.Join(t.TempDir(), "absent"), true, "", nil)
	assert.Error(t, err)
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	d := &Directory{
		Path:  dir,
		Files: []string{filepath.Join(dir, "a.dcm"), filepath.Join(dir, "b.dcm")},
		log:   New(nil).Log,
	}

	stats, failures, err := d.Run(fixedTransform(), Options{DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, Stats{Skipped: 2}, stats)

	_, err = os.Stat(filepath.Join(dir, DefaultOutputName))
	assert.True(t, os.IsNotExist(err))
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.dcm")
	require.NoError(t, os.WriteFile(bad, []byte("not dicom"), 0o644))

	d := &Directory{Path: dir, Files: []string{bad}, log: New(nil).Log}

	stats, failures, err := d.Run(fixedTransform(), Options{})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, bad, failures[0].Path)
	assert.Equal(t, Stats{Failed: 1}, stats)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.dcm")
	require.NoError(t, os.WriteFile(bad, []byte("not dicom"), 0o644))

	d := &Directory{Path: dir, Files: []string{bad, filepath.Join(dir, "never.dcm")}, log: New(nil).Log}

	stats, failures, err := d.Run(fixedTransform(), Options{Policy: PolicyAbort})
	assert.Error(t, err)
	assert.Len(t, failures, 1)
	assert.Equal(t, 1, stats.Failed)
}

func TestAnonymizeFileMissingSource(t *testing.T) {
	_, err := AnonymizeFile(fixedTransform(), filepath.Join(t.TempDir(), "absent.dcm"), "")
	assert.Error(t, err)
}
