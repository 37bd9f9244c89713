package anonymize

import (
	"fmt"
	"path/filepath"

	"github.com/suyashkumar/dicom/pkg/tag"

	"radtools/internal/dicom"
)

// fallbackAccession substitutes a missing AccessionNumber in output paths.
const fallbackAccession = "12345"

// OutputPath builds the relative output location for an anonymized dataset:
//
//	<patient_id>/<accession_last16>/<series_uid_last16>_<modality>/<image_type>_<instance%05d>.dcm
//
// Missing optional tags are logged and substituted, never fatal.
func (tr *Transform) OutputPath(ds *dicom.Dataset) string {
	patientID := ds.GetString(tag.PatientID)
	seriesUID := ds.GetString(tag.SeriesInstanceUID)
	modality := ds.Modality()

	imageType := ds.ImageTypeCode()
	if imageType == dicom.UnknownValue && !ds.Has(tag.ImageType) {
		tr.Log.WithField("path", ds.Path).Debug("ImageType missing, using UNK")
	}

	instanceNumber := 0
	if ds.Has(tag.InstanceNumber) {
		instanceNumber = ds.GetInt(tag.InstanceNumber, 0)
	} else {
		tr.Log.WithField("path", ds.Path).Debug("InstanceNumber missing, using 00000")
	}

	accession := ds.GetString(tag.AccessionNumber)
	if accession == "" {
		tr.Log.WithField("path", ds.Path).Debugf("AccessionNumber missing, using %s", fallbackAccession)
		accession = fallbackAccession
	}

	return filepath.Join(
		patientID,
		last16(accession),
		last16(seriesUID)+"_"+modality,
		fmt.Sprintf("%s_%05d.dcm", imageType, instanceNumber),
	)
}
