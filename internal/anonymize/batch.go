package anonymize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/suyashkumar/dicom/pkg/tag"

	"radtools/internal/dicom"
	"radtools/internal/fileutil"
	"radtools/internal/progress"
)

// DefaultOutputName is the subdirectory receiving anonymized output. Paths
// containing it are excluded from directory listings so prior output is
// never re-processed.
const DefaultOutputName = "anonymized"

// Policy selects batch behavior when one file fails.
type Policy string

const (
	// PolicyContinue records the failure and keeps going. Default for
	// directory batches.
	PolicyContinue Policy = "continue"

	// PolicyAbort stops the batch at the first failure.
	PolicyAbort Policy = "abort"
)

// ParsePolicy validates a policy string from flags or config.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyContinue, PolicyAbort:
		return Policy(s), nil
	}
	return "", fmt.Errorf("unknown on-error policy %q (want %q or %q)", s, PolicyContinue, PolicyAbort)
}

// Options configures a batch run.
type Options struct {
	OutputName string // output subdirectory name, DefaultOutputName when empty
	Policy     Policy
	Retry      bool // clear previously failed entries before running
	DryRun     bool // list work without touching any file
}

// Stats summarizes a batch run.
type Stats struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// FileError pairs a failed source file with its error.
type FileError struct {
	Path string
	Err  error
}

// Directory is a validated DICOM directory: its supported files and the
// review index built from their headers.
type Directory struct {
	Path  string
	Files []string
	Index []dicom.Info

	log logrus.FieldLogger
}

// OpenDirectory lists and indexes every supported DICOM file under dir.
// Files that fail to decode or lack a Modality tag are logged and left out
// of the index; previously anonymized output is filtered by outputName (the
// effective Options.OutputName of the batch, DefaultOutputName when empty)
// so a batch never re-ingests its own output.
func OpenDirectory(dir string, recursive bool, outputName string, log logrus.FieldLogger) (*Directory, error) {
	root, err := fileutil.StatDir(dir)
	if err != nil {
		return nil, err
	}
	if outputName == "" {
		outputName = DefaultOutputName
	}
	if log == nil {
		log = New(nil).Log
	}

	candidates, err := fileutil.List(root, recursive, dicom.Sniff)
	if err != nil {
		return nil, err
	}

	d := &Directory{Path: root, log: log}
	for _, path := range candidates {
		if excludedOutput(path, outputName) {
			continue
		}

		ds, err := dicom.ReadHeader(path)
		if err != nil {
			log.WithField("path", path).WithError(err).Warn("skipping unreadable file")
			continue
		}
		if !ds.Has(tag.Modality) {
			log.WithField("path", path).Warn("skipping file without Modality tag")
			continue
		}

		d.Files = append(d.Files, path)
		d.Index = append(d.Index, ds.Info())
	}

	log.WithFields(logrus.Fields{"dir": root, "files": len(d.Files)}).
		Info("indexed DICOM directory")
	return d, nil
}

// excludedOutput reports whether path lies under prior anonymized output.
// The default output name is always excluded so switching names never picks
// up an older run's results.
func excludedOutput(path, outputName string) bool {
	if strings.Contains(path, outputName) {
		return true
	}
	return outputName != DefaultOutputName && strings.Contains(path, DefaultOutputName)
}

// Run anonymizes every indexed file into <dir>/<OutputName>/ following the
// derived path convention. Each file is owned exclusively for the duration
// of its processing; the loop is strictly sequential. With PolicyAbort the
// first failure stops the batch; with PolicyContinue failures are collected
// and returned alongside the stats.
func (d *Directory) Run(tr *Transform, opts Options) (Stats, []FileError, error) {
	if opts.OutputName == "" {
		opts.OutputName = DefaultOutputName
	}
	if opts.Policy == "" {
		opts.Policy = PolicyContinue
	}
	outDir := filepath.Join(d.Path, opts.OutputName)

	var stats Stats
	if opts.DryRun {
		for _, path := range d.Files {
			d.log.WithField("path", path).Info("would anonymize")
		}
		stats.Skipped = len(d.Files)
		return stats, nil, nil
	}

	tracker := progress.NewTracker(filepath.Join(outDir, ".progress.json"), d.log)
	if opts.Retry {
		tracker.ClearFailed()
	}

	errLog, err := progress.NewErrorLog(filepath.Join(outDir, "errors.log"))
	if err != nil {
		return stats, nil, fmt.Errorf("could not create error log: %w", err)
	}
	defer errLog.Close()

	var failures []FileError
	for _, path := range d.Files {
		if tracker.Done(path) {
			stats.Skipped++
			continue
		}

		outPath, err := d.processFile(tr, path, outDir)
		if err != nil {
			stats.Failed++
			failures = append(failures, FileError{Path: path, Err: err})
			tracker.MarkFailed(path, err.Error())
			errLog.Append(path, err.Error())
			d.log.WithField("path", path).WithError(err).Error("anonymization failed")

			if opts.Policy == PolicyAbort {
				return stats, failures, fmt.Errorf("batch aborted at %s: %w", path, err)
			}
			continue
		}

		stats.Succeeded++
		tracker.MarkSuccess(path, outPath)
	}

	d.log.WithFields(logrus.Fields{
		"succeeded": stats.Succeeded,
		"failed":    stats.Failed,
		"skipped":   stats.Skipped,
		"output":    outDir,
	}).Info("batch anonymization complete")
	return stats, failures, nil
}

func (d *Directory) processFile(tr *Transform, path, outDir string) (string, error) {
	ds, err := dicom.Read(path)
	if err != nil {
		return "", err
	}

	anon, err := tr.AnonymizeCopy(ds)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, tr.OutputPath(anon))
	if err := anon.Save(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// AnonymizeFile anonymizes a single file, fail-fast. With an empty destDir
// the output lands next to the source with an "_anonymized.dcm" suffix;
// otherwise it follows the derived path convention under destDir. Returns
// the written path.
func AnonymizeFile(tr *Transform, path, destDir string) (string, error) {
	handle, err := fileutil.Stat(path)
	if err != nil {
		return "", err
	}

	ds, err := dicom.Read(handle.Path)
	if err != nil {
		return "", err
	}

	anon, err := tr.AnonymizeCopy(ds)
	if err != nil {
		return "", err
	}

	var outPath string
	if destDir == "" {
		base := strings.TrimSuffix(handle.Name, handle.Ext)
		outPath = filepath.Join(handle.Dir, base+"_anonymized.dcm")
	} else {
		root, err := fileutil.StatDir(destDir)
		if err != nil {
			return "", err
		}
		outPath = filepath.Join(root, tr.OutputPath(anon))
	}

	if err := anon.Save(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
