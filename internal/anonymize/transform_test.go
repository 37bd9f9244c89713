package anonymize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	godicom "github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"radtools/internal/dicom"
)

type field struct {
	tag    tag.Tag
	values []string
}

func buildDataset(t *testing.T, fields ...field) *dicom.Dataset {
	t.Helper()
	elems := make([]*godicom.Element, 0, len(fields))
	for _, f := range fields {
		elem, err := godicom.NewElement(f.tag, f.values)
		require.NoError(t, err)
		elems = append(elems, elem)
	}
	return &dicom.Dataset{
		Data: godicom.Dataset{Elements: elems},
		Path: "test.dcm",
	}
}

func fixedTransform() *Transform {
	tr := New(nil)
	tr.Now = func() time.Time {
		return time.Date(2023, 4, 15, 12, 0, 0, 0, time.UTC)
	}
	tr.Hostname = func() (string, error) { return "scanner01", nil }
	return tr
}

func studyFields() []field {
	return []field{
		{tag.DeviceSerialNumber, []string{"1"}},
		{tag.StudyDate, []string{"20230415"}},
		{tag.StudyTime, []string{"0000"}},
		{tag.StudyInstanceUID, []string{"1.2.840.113"}},
		{tag.PatientBirthDate, []string{"19800612"}},
		{tag.PatientID, []string{"HOSP-0042"}},
		{tag.PatientName, []string{"Doe^John"}},
		{tag.AccessionNumber, []string{"ACC123"}},
		{tag.StudyID, []string{"S1"}},
		{tag.StationName, []string{"ward-3"}},
		{tag.InstitutionName, []string{"General Hospital"}},
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "3BC", Fingerprint("1.2.840.113"))
	assert.Equal(t, "0", Fingerprint(""))
	assert.Equal(t, "0", Fingerprint("no digits here"))
}

func TestFingerprintLongComponents(t *testing.T) {
	// UUID-derived UIDs carry a single decimal run far beyond 64 bits; the
	// whole run must contribute to the sum, not be dropped.
	assert.Equal(t, "3C5DB3D6DB6D8E583D437EBB0B4743",
		Fingerprint("2.25.313438323941383536383738333438363432"))
	assert.NotEqual(t,
		Fingerprint("2.25.313438323941383536383738333438363432"),
		Fingerprint("2.25.313438323941383536383738333438363433"))
}

func TestDerivePatientID(t *testing.T) {
	pid, err := derivePatientID("1", "20230101", "0000")
	require.NoError(t, err)
	assert.Equal(t, "2DD328450", pid)

	pid, err = derivePatientID("1", "20230415", "0000")
	require.NoError(t, err)
	assert.Equal(t, "2DD626DF0", pid)

	_, err = derivePatientID("x", "20230101", "0000")
	assert.Error(t, err)
}

func TestAnonymizeRewritesIdentifyingTags(t *testing.T) {
	ds := buildDataset(t, studyFields()...)

	require.NoError(t, fixedTransform().Anonymize(ds))

	assert.Equal(t, "2DD626DF0", ds.GetString(tag.PatientID))
	assert.Equal(t, "2DD626DF0", ds.GetString(tag.PatientName))
	assert.Equal(t, "3BC", ds.GetString(tag.AccessionNumber))
	assert.Equal(t, "3BC", ds.GetString(tag.StudyID))
	assert.Equal(t, "20230101", ds.GetString(tag.StudyDate))
	assert.Equal(t, "19800101", ds.GetString(tag.PatientBirthDate))
	assert.Equal(t, "SCANNER01", ds.GetString(tag.StationName))

	assert.True(t, ds.Has(tag.InstitutionName))
	assert.Empty(t, ds.GetString(tag.InstitutionName))
}

func TestAnonymizeMissingRequiredTag(t *testing.T) {
	var fields []field
	for _, f := range studyFields() {
		if f.tag != tag.StudyDate {
			fields = append(fields, f)
		}
	}
	ds := buildDataset(t, fields...)

	err := fixedTransform().Anonymize(ds)
	assert.ErrorIs(t, err, ErrMissingTag)
}

func TestAnonymizeSubstitutesMissingSerial(t *testing.T) {
	var fields []field
	for _, f := range studyFields() {
		if f.tag != tag.DeviceSerialNumber {
			fields = append(fields, f)
		}
	}
	ds := buildDataset(t, fields...)

	require.NoError(t, fixedTransform().Anonymize(ds))
	assert.Equal(t, "20230415", ds.GetString(tag.DeviceSerialNumber))
	assert.NotEmpty(t, ds.GetString(tag.PatientID))
}

func TestAnonymizeNonNumericSerial(t *testing.T) {
	var fields []field
	for _, f := range studyFields() {
		if f.tag == tag.DeviceSerialNumber {
			f.values = []string{"ABC123X"}
		}
		fields = append(fields, f)
	}
	ds := buildDataset(t, fields...)

	pid, err := derivePatientID("230415", "20230415", "0000")
	require.NoError(t, err)

	require.NoError(t, fixedTransform().Anonymize(ds))
	assert.Equal(t, pid, ds.GetString(tag.PatientID))
}

func TestAnonymizeIsRepeatable(t *testing.T) {
	ds := buildDataset(t, studyFields()...)
	tr := fixedTransform()

	require.NoError(t, tr.Anonymize(ds))
	assert.Equal(t, "2DD626DF0", ds.GetString(tag.PatientID))

	// The study date is already year-zeroed, so the second pass folds the
	// new date into the identifier.
	require.NoError(t, tr.Anonymize(ds))
	assert.Equal(t, "2DD328450", ds.GetString(tag.PatientID))
}

func TestAnonymizeCopyLeavesOriginalUntouched(t *testing.T) {
	ds := buildDataset(t, studyFields()...)

	anon, err := fixedTransform().AnonymizeCopy(ds)
	require.NoError(t, err)

	assert.Equal(t, "HOSP-0042", ds.GetString(tag.PatientID))
	assert.Equal(t, "Doe^John", ds.GetString(tag.PatientName))
	assert.Equal(t, "2DD626DF0", anon.GetString(tag.PatientID))
}
