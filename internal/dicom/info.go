package dicom

import (
	"github.com/suyashkumar/dicom/pkg/tag"
)

// IndexColumns is the fixed projection of tags used for the per-directory
// review index, in export column order.
var IndexColumns = []string{
	"ImageType",
	"InstanceCreationDate",
	"StudyDate",
	"SeriesDate",
	"AcquisitionDate",
	"ContentDate",
	"AccessionNumber",
	"Modality",
	"StationName",
	"PatientName",
	"PatientID",
	"PatientBirthDate",
	"SeriesInstanceUID",
	"StudyID",
	"InstanceNumber",
}

var indexTags = map[string]tag.Tag{
	"ImageType":            tag.ImageType,
	"InstanceCreationDate": tag.InstanceCreationDate,
	"StudyDate":            tag.StudyDate,
	"SeriesDate":           tag.SeriesDate,
	"AcquisitionDate":      tag.AcquisitionDate,
	"ContentDate":          tag.ContentDate,
	"AccessionNumber":      tag.AccessionNumber,
	"Modality":             tag.Modality,
	"StationName":          tag.StationName,
	"PatientName":          tag.PatientName,
	"PatientID":            tag.PatientID,
	"PatientBirthDate":     tag.PatientBirthDate,
	"SeriesInstanceUID":    tag.SeriesInstanceUID,
	"StudyID":              tag.StudyID,
	"InstanceNumber":       tag.InstanceNumber,
}

// UnknownValue substitutes tags absent from a dataset in the review index.
const UnknownValue = "UNK"

// Info is one review-index row: the fixed tag projection plus the source
// file path.
type Info struct {
	Path   string
	Values map[string]string
}

// Info projects the dataset onto the review columns. Absent tags map to
// UnknownValue; ImageType maps to its variant component.
func (d *Dataset) Info() Info {
	values := make(map[string]string, len(IndexColumns))
	for _, col := range IndexColumns {
		t := indexTags[col]
		if !d.Has(t) {
			values[col] = UnknownValue
			continue
		}
		if col == "ImageType" {
			values[col] = d.ImageTypeCode()
			continue
		}
		values[col] = d.GetString(t)
	}
	return Info{Path: d.Path, Values: values}
}

// Row renders the info in IndexColumns order, path last.
func (i Info) Row() []string {
	row := make([]string, 0, len(IndexColumns)+1)
	for _, col := range IndexColumns {
		row = append(row, i.Values[col])
	}
	return append(row, i.Path)
}
