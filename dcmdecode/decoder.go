// Package dcmdecode is the built-in slice decoder, backed by the
// suyashkumar/dicom parser. It reads grouping snapshots with pixel data
// skipped and decodes native (uncompressed) single-frame pixel buffers;
// compressed series must be transcoded to a native syntax first.
package dcmdecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/cocosip/go-dicom-volume/series"
	"github.com/cocosip/go-dicom-volume/volume"
)

// Decoder reads tag snapshots and native pixel frames from DICOM files
type Decoder struct{}

// New creates the default decoder
func New() *Decoder {
	return &Decoder{}
}

// ReadTags parses the file with pixel data skipped and fills a grouping
// snapshot. Absent optional tags leave their Has* flags false, and a
// malformed orientation or position value degrades to absent rather than
// failing the scan; only a parse failure of the file itself is an error.
func (d *Decoder) ReadTags(path string) (series.Snapshot, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return series.Snapshot{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var snap series.Snapshot
	snap.StudyUID, _ = stringValue(ds, tag.StudyInstanceUID)
	snap.SeriesUID, _ = stringValue(ds, tag.SeriesInstanceUID)
	snap.Modality, _ = stringValue(ds, tag.Modality)
	snap.SeriesNumber, _ = stringValue(ds, tag.SeriesNumber)
	snap.InstanceNumber, _ = stringValue(ds, tag.InstanceNumber)
	snap.PhotometricInterpretation, _ = stringValue(ds, tag.PhotometricInterpretation)

	if vals, ok := floatsValue(ds, tag.ImageOrientationPatient); ok && len(vals) == 6 {
		copy(snap.Orientation[:], vals)
		snap.HasOrientation = true
	}
	if vals, ok := floatsValue(ds, tag.ImagePositionPatient); ok && len(vals) == 3 {
		copy(snap.Position[:], vals)
		snap.HasPosition = true
	}
	if vals, ok := floatsValue(ds, tag.SliceLocation); ok && len(vals) > 0 {
		snap.SliceLocation = vals[0]
		snap.HasSliceLocation = true
	}
	if vals, ok := floatsValue(ds, tag.SliceThickness); ok && len(vals) > 0 {
		snap.SliceThickness = vals[0]
		snap.HasSliceThickness = true
	}

	snap.Rows, _ = intValue(ds, tag.Rows)
	snap.Columns, _ = intValue(ds, tag.Columns)
	snap.BitsAllocated, _ = intValue(ds, tag.BitsAllocated)
	snap.PixelRepresentation, _ = intValue(ds, tag.PixelRepresentation)
	snap.SamplesPerPixel = 1
	if v, ok := intValue(ds, tag.SamplesPerPixel); ok && v > 0 {
		snap.SamplesPerPixel = v
	}
	return snap, nil
}

// ReadPixels parses the file and decodes its pixel buffer into a single 2D
// frame. Encapsulated (compressed) pixel data and multi-frame files are
// decode errors.
func (d *Decoder) ReadPixels(path string) (*volume.Frame, error) {
	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPixelData)
	}
	info := dicom.MustGetPixelDataInfo(el.Value)
	if info.IsEncapsulated {
		return nil, fmt.Errorf("%s: %w", path, ErrEncapsulated)
	}
	switch {
	case len(info.Frames) == 0:
		return nil, fmt.Errorf("%s: %w", path, ErrNoPixelData)
	case len(info.Frames) > 1:
		return nil, fmt.Errorf("%s: %d frames: %w", path, len(info.Frames), ErrMultiFrame)
	}

	fr := info.Frames[0]
	native, err := fr.GetNativeFrame()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	pixelRepresentation, _ := intValue(ds, tag.PixelRepresentation)
	out, err := FrameFromNative(native.Data, native.Rows, native.Cols, native.BitsPerSample, pixelRepresentation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// stringValue returns the first string of a tag's value, trimmed of the
// space and NUL padding DICOM allows
func stringValue(ds dicom.Dataset, t tag.Tag) (string, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return "", false
	}
	vals, ok := el.Value.GetValue().([]string)
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimRight(vals[0], " \x00"), true
}

// intValue returns the first integer of a tag's value
func intValue(ds dicom.Dataset, t tag.Tag) (int, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return 0, false
	}
	vals, ok := el.Value.GetValue().([]int)
	if !ok || len(vals) == 0 {
		return 0, false
	}
	return vals[0], true
}

// floatsValue parses a decimal-string tag into floats. A single malformed
// component marks the whole value unusable.
func floatsValue(ds dicom.Dataset, t tag.Tag) ([]float64, bool) {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return nil, false
	}
	vals, ok := el.Value.GetValue().([]string)
	if !ok || len(vals) == 0 {
		return nil, false
	}
	out := make([]float64, len(vals))
	for i, s := range vals {
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimRight(s, "\x00")), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
