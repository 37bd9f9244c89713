package anonymize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func TestOutputPath(t *testing.T) {
	ds := buildDataset(t,
		field{tag.PatientID, []string{"2DD626DF0"}},
		field{tag.AccessionNumber, []string{"ACC1234567890123456789"}},
		field{tag.SeriesInstanceUID, []string{"12345678901234567890"}},
		field{tag.Modality, []string{"CT"}},
		field{tag.ImageType, []string{"ORIGINAL", "PRIMARY", "AXIAL"}},
		field{tag.InstanceNumber, []string{"7"}},
	)

	want := filepath.Join(
		"2DD626DF0",
		"4567890123456789",
		"5678901234567890_CT",
		"AXIAL_00007.dcm",
	)
	assert.Equal(t, want, fixedTransform().OutputPath(ds))
}

func TestOutputPathDefaults(t *testing.T) {
	ds := buildDataset(t,
		field{tag.PatientID, []string{"PID"}},
		field{tag.SeriesInstanceUID, []string{"1.2.3"}},
		field{tag.Modality, []string{"MR"}},
	)

	want := filepath.Join("PID", fallbackAccession, "1.2.3_MR", "UNK_00000.dcm")
	assert.Equal(t, want, fixedTransform().OutputPath(ds))
}

func TestOutputPathShortImageType(t *testing.T) {
	ds := buildDataset(t,
		field{tag.PatientID, []string{"PID"}},
		field{tag.AccessionNumber, []string{"A1"}},
		field{tag.SeriesInstanceUID, []string{"1.2.3"}},
		field{tag.Modality, []string{"US"}},
		field{tag.ImageType, []string{"ORIGINAL", "PRIMARY"}},
		field{tag.InstanceNumber, []string{"1"}},
	)

	want := filepath.Join("PID", "A1", "1.2.3_US", "UNK_00001.dcm")
	assert.Equal(t, want, fixedTransform().OutputPath(ds))
}
