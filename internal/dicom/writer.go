package dicom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// SetString replaces the value of an existing element. Datasets without the
// tag are left unchanged; the caller decides whether absence matters.
func (d *Dataset) SetString(t tag.Tag, value string) error {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil {
		return nil
	}

	newValue, err := dicom.NewValue([]string{value})
	if err != nil {
		return fmt.Errorf("could not create value: %w", err)
	}

	newElem := &dicom.Element{
		Tag:                    t,
		ValueRepresentation:    elem.ValueRepresentation,
		RawValueRepresentation: elem.RawValueRepresentation,
		ValueLength:            uint32(len(value)),
		Value:                  newValue,
	}

	for i, e := range d.Data.Elements {
		if e.Tag == t {
			d.Data.Elements[i] = newElem
			return nil
		}
	}
	return nil
}

// SetStringForce sets a string value, appending a new element when the tag
// is absent from the dataset.
func (d *Dataset) SetStringForce(t tag.Tag, value string) error {
	if d.Has(t) {
		return d.SetString(t, value)
	}

	elem, err := dicom.NewElement(t, []string{value})
	if err != nil {
		return fmt.Errorf("could not create element: %w", err)
	}
	d.Data.Elements = append(d.Data.Elements, elem)
	return nil
}

// Clear empties an element's value while keeping the tag present.
func (d *Dataset) Clear(t tag.Tag) {
	d.SetString(t, "")
}

// TruncateDate rewrites a date element so only the year survives, replacing
// the trailing MMDD with 0101.
func (d *Dataset) TruncateDate(t tag.Tag) {
	value := d.GetString(t)
	if value == "" {
		return
	}
	d.SetString(t, YearZero(value))
}

// YearZero replaces the last four characters (MMDD) of a DICOM date with
// "0101". Dates shorter than five characters collapse to "0101".
func YearZero(date string) string {
	if len(date) <= 4 {
		return "0101"
	}
	return date[:len(date)-4] + "0101"
}

// Save writes the dataset to outputPath, creating parent directories as
// needed. Verification is relaxed because real-world DICOM files frequently
// violate strict VR rules.
func (d *Dataset) Save(outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}
	defer file.Close()

	if err := dicom.Write(file, d.Data,
		dicom.SkipVRVerification(),
		dicom.SkipValueTypeVerification(),
		dicom.DefaultMissingTransferSyntax(),
	); err != nil {
		return fmt.Errorf("could not write DICOM: %w", err)
	}
	return nil
}
