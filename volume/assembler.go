package volume

import (
	"fmt"
	"math"

	"github.com/cocosip/go-dicom-volume/reporting"
	"github.com/cocosip/go-dicom-volume/series"
)

// PixelReader decodes the pixel buffer of one slice file
type PixelReader interface {
	// ReadPixels decodes the file's 2D pixel array
	ReadPixels(path string) (*Frame, error)
}

// ProgressLabel is the stage label reported while pixel data loads
const ProgressLabel = "Reading pixel data"

// MsgSettingDatatypeInt8 is the message code emitted when a character
// datatype is stored as Int8
const MsgSettingDatatypeInt8 = "setting-datatype-int8"

// LoadFromStack decodes every slice of a sorted stack into one dense
// volume.
//
// Slice 0 determines the allocation: the buffer shape comes from the first
// snapshot's rows, columns and samples per pixel plus the stack length, and
// the datatype from the first decoded frame (a char frame is stored as
// Int8, announced with an informational message). If slice 0 cannot be
// decoded no buffer is allocated and the returned volume is Empty with a
// nil error; callers check Empty. Any failure on a later slice returns an
// error and no volume, because a partially filled buffer must never escape
// silently. Progress is reported per slice as round(100*i/n).
func LoadFromStack(stack *series.Stack, dec PixelReader, r reporting.Reporter) (*Volume, error) {
	if dec == nil {
		return nil, ErrNoDecoder
	}
	if r == nil {
		r = reporting.Null{}
	}

	r.ShowProgress(ProgressLabel)
	r.UpdateProgress(0)

	items := stack.Items()
	if len(items) == 0 {
		r.CompleteProgress()
		return &Volume{}, nil
	}

	first, err := dec.ReadPixels(items[0].Name)
	if err != nil {
		r.CompleteProgress()
		return &Volume{}, nil
	}

	meta := items[0].Meta
	rows, cols := meta.Rows, meta.Columns
	samples := meta.SamplesPerPixel
	if samples < 1 {
		samples = 1
	}
	if err := checkFrame(first, rows, cols, samples, first.Type); err != nil {
		return nil, fmt.Errorf("slice 0 (%s): %w", items[0].Name, err)
	}

	vtype := first.Type
	if vtype == Char {
		r.ShowMessage(MsgSettingDatatypeInt8, "Changing datatype from char to int8")
		vtype = Int8
	}

	v := newVolume(rows, cols, len(items), samples, vtype)
	v.setSlice(0, first)

	n := len(items)
	for i := 1; i < n; i++ {
		frame, err := dec.ReadPixels(items[i].Name)
		if err != nil {
			return nil, fmt.Errorf("decoding slice %d (%s): %w", i, items[i].Name, err)
		}
		if err := checkFrame(frame, rows, cols, samples, first.Type); err != nil {
			return nil, fmt.Errorf("slice %d (%s): %w", i, items[i].Name, err)
		}
		v.setSlice(i, frame)
		r.UpdateProgress(progressPercent(i, n))
	}

	r.CompleteProgress()
	return v, nil
}

// progressPercent is round(100*i/n) on the slice index
func progressPercent(i, n int) int {
	return int(math.Round(100 * float64(i) / float64(n)))
}
