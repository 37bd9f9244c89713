// Package dicom wraps the DICOM codec with tag-level accessors used by the
// anonymization pipeline.
package dicom

import (
	"fmt"
	"os"
	"strconv"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Dataset wraps a decoded DICOM dataset together with its source path.
type Dataset struct {
	Data dicom.Dataset
	Path string
}

// Read decodes a full DICOM file.
func Read(path string) (*Dataset, error) {
	return read(path, false)
}

// ReadHeader decodes a DICOM file without its pixel data. Used when only
// tags are needed, e.g. while building a directory index.
func ReadHeader(path string) (*Dataset, error) {
	return read(path, true)
}

func read(path string, skipPixels bool) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat file: %w", err)
	}

	var opts []dicom.ParseOption
	if skipPixels {
		opts = append(opts, dicom.SkipPixelData())
	}

	ds, err := dicom.Parse(file, info.Size(), nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not parse DICOM: %w", err)
	}

	return &Dataset{Data: ds, Path: path}, nil
}

// Has reports whether the dataset contains an element for t.
func (d *Dataset) Has(t tag.Tag) bool {
	_, err := d.Data.FindElementByTag(t)
	return err == nil
}

// GetString returns the first string value for a tag, or "" if the tag is
// absent. Numeric values are rendered in decimal.
func (d *Dataset) GetString(t tag.Tag) string {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return ""
	}

	val := elem.Value.GetValue()
	switch v := val.(type) {
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	case string:
		return v
	case []int:
		if len(v) > 0 {
			return strconv.Itoa(v[0])
		}
		return ""
	case int:
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%v", val)
}

// GetStrings returns every string value for a multi-valued tag.
func (d *Dataset) GetStrings(t tag.Tag) []string {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return nil
	}
	if v, ok := elem.Value.GetValue().([]string); ok {
		return v
	}
	return nil
}

// GetInt returns the first integer value for a tag, parsing string-typed
// elements when needed, or def if the tag is absent or unparsable.
func (d *Dataset) GetInt(t tag.Tag, def int) int {
	elem, err := d.Data.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return def
	}

	switch v := elem.Value.GetValue().(type) {
	case []int:
		if len(v) > 0 {
			return v[0]
		}
	case int:
		return v
	case []string:
		if len(v) > 0 {
			if n, err := strconv.Atoi(v[0]); err == nil {
				return n
			}
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Modality returns the Modality tag value.
func (d *Dataset) Modality() string {
	return d.GetString(tag.Modality)
}

// ImageTypeCode returns the third ImageType component, which identifies the
// image variant (e.g. "SBI"), or "UNK" when the component is missing.
func (d *Dataset) ImageTypeCode() string {
	values := d.GetStrings(tag.ImageType)
	if len(values) > 2 {
		return values[2]
	}
	return "UNK"
}

// Clone returns a dataset with its own element storage. Mutations through
// SetString and Clear replace whole elements, so copying the slice isolates
// the clone from the original.
func (d *Dataset) Clone() *Dataset {
	elems := make([]*dicom.Element, len(d.Data.Elements))
	copy(elems, d.Data.Elements)
	return &Dataset{
		Data: dicom.Dataset{Elements: elems},
		Path: d.Path,
	}
}
