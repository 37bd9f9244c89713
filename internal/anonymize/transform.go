// Package anonymize implements the deterministic DICOM de-identification
// transform and its directory-level batch orchestration.
package anonymize

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/suyashkumar/dicom/pkg/tag"

	"radtools/internal/dicom"
)

// ErrMissingTag is returned when a tag required by the transform is absent
// from the dataset. Fatal for the record, not for a batch.
var ErrMissingTag = errors.New("required tag missing")

var integerRuns = regexp.MustCompile(`[+-]?\d+`)

// Transform derives anonymized replacement values from in-record fields.
// Now and Hostname are injection points for tests; New fills in the real
// clock and host.
type Transform struct {
	Log      logrus.FieldLogger
	Now      func() time.Time
	Hostname func() (string, error)
}

// New returns a Transform logging through log. A nil log discards output.
func New(log logrus.FieldLogger) *Transform {
	if log == nil {
		nop := logrus.New()
		nop.SetOutput(nopWriter{})
		log = nop
	}
	return &Transform{
		Log:      log,
		Now:      time.Now,
		Hostname: os.Hostname,
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Fingerprint folds a study UID into a short reproducible token: separators
// become '+', every signed integer run is summed, and the sum is rendered
// as uppercase hex. UID components can be arbitrarily long decimals, e.g.
// the 2.25.<uuid-as-decimal> form, hence big.Int. Not cryptographic.
func Fingerprint(uid string) string {
	runs := integerRuns.FindAllString(strings.ReplaceAll(uid, ".", "+"), -1)
	sum := new(big.Int)
	run := new(big.Int)
	for _, r := range runs {
		if _, ok := run.SetString(r, 10); !ok {
			continue
		}
		sum.Add(sum, run)
	}
	return strings.ToUpper(sum.Text(16))
}

// last16 keeps at most the trailing 16 characters of s.
func last16(s string) string {
	if len(s) > 16 {
		return s[len(s)-16:]
	}
	return s
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AnonymizeCopy clones the dataset and anonymizes the clone, leaving the
// original untouched.
func (tr *Transform) AnonymizeCopy(ds *dicom.Dataset) (*dicom.Dataset, error) {
	clone := ds.Clone()
	if err := tr.Anonymize(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// Anonymize rewrites identifying tags in place. It fails only when a tag
// the derivations depend on is missing; absent overwrite or clear targets
// are logged and skipped.
func (tr *Transform) Anonymize(ds *dicom.Dataset) error {
	if !ds.Has(tag.DeviceSerialNumber) {
		substitute := tr.Now().Format("20060102")
		tr.Log.WithField("path", ds.Path).
			Warnf("DeviceSerialNumber missing, substituting %s", substitute)
		if err := ds.SetStringForce(tag.DeviceSerialNumber, substitute); err != nil {
			return err
		}
	}
	serial := ds.GetString(tag.DeviceSerialNumber)

	studyDate, err := tr.required(ds, tag.StudyDate, "StudyDate")
	if err != nil {
		return err
	}
	studyTime, err := tr.required(ds, tag.StudyTime, "StudyTime")
	if err != nil {
		return err
	}
	studyUID, err := tr.required(ds, tag.StudyInstanceUID, "StudyInstanceUID")
	if err != nil {
		return err
	}
	birthDate, err := tr.required(ds, tag.PatientBirthDate, "PatientBirthDate")
	if err != nil {
		return err
	}

	fingerprint := Fingerprint(studyUID)

	if !isNumeric(serial) {
		serial = tr.Now().Format("060102")
	}

	patientID, err := derivePatientID(serial, studyDate, studyTime)
	if err != nil {
		return fmt.Errorf("could not derive patient ID for %s: %w", ds.Path, err)
	}

	newStudyDate := dicom.YearZero(studyDate)
	newBirthDate := dicom.YearZero(birthDate)

	station := "UNKNOWN"
	if host, err := tr.Hostname(); err == nil {
		station = strings.ToUpper(host)
	}

	values := []string{
		station,
		newStudyDate,
		newStudyDate,
		newStudyDate,
		newStudyDate,
		newStudyDate,
		last16(fingerprint),
		patientID,
		patientID,
		newBirthDate,
		last16(fingerprint),
	}

	for i, t := range overwriteTags {
		if !ds.Has(t) {
			tr.Log.WithField("tag", overwriteTagNames[i]).Debug("dataset has no tag to overwrite")
			continue
		}
		if err := ds.SetString(t, values[i]); err != nil {
			return fmt.Errorf("could not set %s: %w", overwriteTagNames[i], err)
		}
	}

	for _, t := range clearedTags {
		if !ds.Has(t) {
			tr.Log.WithField("tag", tagName(t)).Debug("dataset has no tag to clear")
			continue
		}
		ds.Clear(t)
	}

	return nil
}

// required reads a tag the transform cannot proceed without.
func (tr *Transform) required(ds *dicom.Dataset, t tag.Tag, name string) (string, error) {
	if !ds.Has(t) {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissingTag, name, ds.Path)
	}
	return ds.GetString(t), nil
}

// derivePatientID folds the device serial number and the truncated study
// date/time into a decimal string and renders it as uppercase hex. The
// fold can exceed 64 bits, hence big.Int.
func derivePatientID(serial, studyDate, studyTime string) (string, error) {
	digits := serial + from(studyDate, 2) + upto(studyTime, 4)
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return "", fmt.Errorf("non-numeric identity fold %q", digits)
	}
	return strings.ToUpper(n.Text(16)), nil
}

func from(s string, i int) string {
	if len(s) <= i {
		return ""
	}
	return s[i:]
}

func upto(s string, i int) string {
	if len(s) <= i {
		return s
	}
	return s[:i]
}
