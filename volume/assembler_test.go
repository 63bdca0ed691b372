package volume_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cocosip/go-dicom-volume/reporting"
	"github.com/cocosip/go-dicom-volume/series"
	"github.com/cocosip/go-dicom-volume/volume"
)

// fakeDecoder serves canned frames (or errors) by path.
type fakeDecoder struct {
	frames map[string]*volume.Frame
	errs   map[string]error
}

func (d *fakeDecoder) ReadPixels(path string) (*volume.Frame, error) {
	if err, ok := d.errs[path]; ok {
		return nil, err
	}
	f, ok := d.frames[path]
	if !ok {
		return nil, fmt.Errorf("no frame for %s", path)
	}
	return f, nil
}

// grayFrame fills a single-sample frame with base+pixelIndex values.
func grayFrame(rows, cols int, t volume.PixelType, base int) *volume.Frame {
	data := make([][]int, rows*cols)
	for i := range data {
		data[i] = []int{base + i}
	}
	return &volume.Frame{Rows: rows, Cols: cols, SamplesPerPixel: 1, Type: t, Data: data}
}

// rgbFrame fills a three-sample frame with base+pixelIndex*10+sample values.
func rgbFrame(rows, cols int, base int) *volume.Frame {
	data := make([][]int, rows*cols)
	for i := range data {
		data[i] = []int{base + i*10, base + i*10 + 1, base + i*10 + 2}
	}
	return &volume.Frame{Rows: rows, Cols: cols, SamplesPerPixel: 3, Type: volume.UInt8, Data: data}
}

// sliceStack builds a sorted-order stack of n slices named slice0..sliceN.
func sliceStack(n, rows, cols, samples int) *series.Stack {
	items := make([]series.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, series.Item{
			Name: fmt.Sprintf("slice%d", i),
			Meta: series.Snapshot{
				SeriesUID:       "1.2.3.1",
				Rows:            rows,
				Columns:         cols,
				SamplesPerPixel: samples,
				BitsAllocated:   16,
			},
		})
	}
	return series.NewStack(items)
}

func TestLoadFromStackGrayscaleShape(t *testing.T) {
	const n, rows, cols = 5, 4, 4
	dec := &fakeDecoder{frames: map[string]*volume.Frame{}}
	for i := 0; i < n; i++ {
		dec.frames[fmt.Sprintf("slice%d", i)] = grayFrame(rows, cols, volume.Int16, -5+i)
	}

	rec := &reporting.Recorder{}
	v, err := volume.LoadFromStack(sliceStack(n, rows, cols, 1), dec, rec)
	if err != nil {
		t.Fatalf("LoadFromStack error: %v", err)
	}
	if v.Empty() {
		t.Fatal("volume is empty")
	}

	want := []int{rows, cols, n}
	shape := v.Shape()
	if len(shape) != len(want) {
		t.Fatalf("Shape() = %v, want %v", shape, want)
	}
	for i := range want {
		if shape[i] != want[i] {
			t.Fatalf("Shape() = %v, want %v", shape, want)
		}
	}
	if v.Type != volume.Int16 {
		t.Errorf("Type = %v, want int16", v.Type)
	}

	// Spot-check voxels, including a negative sample from slice 0.
	if got := v.At(0, 0, 0, 0); got != -5 {
		t.Errorf("At(0,0,0,0) = %d, want -5", got)
	}
	if got := v.At(1, 2, 3, 0); got != -5+3+1*cols+2 {
		t.Errorf("At(1,2,3,0) = %d, want %d", got, -5+3+1*cols+2)
	}
}

func TestLoadFromStackColorShape(t *testing.T) {
	const n, rows, cols = 3, 2, 2
	dec := &fakeDecoder{frames: map[string]*volume.Frame{}}
	for i := 0; i < n; i++ {
		dec.frames[fmt.Sprintf("slice%d", i)] = rgbFrame(rows, cols, i)
	}

	v, err := volume.LoadFromStack(sliceStack(n, rows, cols, 3), dec, &reporting.Recorder{})
	if err != nil {
		t.Fatalf("LoadFromStack error: %v", err)
	}

	want := []int{rows, cols, n, 3}
	shape := v.Shape()
	if len(shape) != len(want) {
		t.Fatalf("Shape() = %v, want %v", shape, want)
	}
	for i := range want {
		if shape[i] != want[i] {
			t.Fatalf("Shape() = %v, want %v", shape, want)
		}
	}
	// Pixel (0,1) of slice 2: index 1, samples base 2+10.
	for s := 0; s < 3; s++ {
		if got, wantV := v.At(0, 1, 2, s), 2+10+s; got != wantV {
			t.Errorf("At(0,1,2,%d) = %d, want %d", s, got, wantV)
		}
	}
}

func TestLoadFromStackFirstSliceSoftFailure(t *testing.T) {
	dec := &fakeDecoder{
		frames: map[string]*volume.Frame{},
		errs:   map[string]error{"slice0": errors.New("corrupt header")},
	}
	for i := 1; i < 5; i++ {
		dec.frames[fmt.Sprintf("slice%d", i)] = grayFrame(4, 4, volume.Int16, 0)
	}

	rec := &reporting.Recorder{}
	v, err := volume.LoadFromStack(sliceStack(5, 4, 4, 1), dec, rec)
	if err != nil {
		t.Fatalf("slice-0 failure must be soft, got error: %v", err)
	}
	if !v.Empty() {
		t.Error("volume not empty after slice-0 decode failure")
	}
	if rec.Completes != 1 {
		t.Errorf("Completes = %d, want 1", rec.Completes)
	}
}

func TestLoadFromStackMidStackFailureIsFatal(t *testing.T) {
	wantErr := errors.New("truncated pixel data")
	dec := &fakeDecoder{
		frames: map[string]*volume.Frame{},
		errs:   map[string]error{"slice3": wantErr},
	}
	for i := 0; i < 5; i++ {
		if i == 3 {
			continue
		}
		dec.frames[fmt.Sprintf("slice%d", i)] = grayFrame(4, 4, volume.Int16, 0)
	}

	v, err := volume.LoadFromStack(sliceStack(5, 4, 4, 1), dec, &reporting.Recorder{})
	if err == nil {
		t.Fatal("slice-3 decode failure did not propagate")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error %v does not wrap the decode failure", err)
	}
	if v != nil {
		t.Errorf("volume = %v, want nil on fatal failure", v)
	}
}

func TestLoadFromStackProgressSequence(t *testing.T) {
	const n = 5
	dec := &fakeDecoder{frames: map[string]*volume.Frame{}}
	for i := 0; i < n; i++ {
		dec.frames[fmt.Sprintf("slice%d", i)] = grayFrame(2, 2, volume.UInt16, 0)
	}

	rec := &reporting.Recorder{}
	if _, err := volume.LoadFromStack(sliceStack(n, 2, 2, 1), dec, rec); err != nil {
		t.Fatalf("LoadFromStack error: %v", err)
	}

	if len(rec.Labels) != 1 || rec.Labels[0] != volume.ProgressLabel {
		t.Errorf("Labels = %v, want [%q]", rec.Labels, volume.ProgressLabel)
	}
	want := []int{0, 20, 40, 60, 80}
	if len(rec.Percents) != len(want) {
		t.Fatalf("Percents = %v, want %v", rec.Percents, want)
	}
	for i := range want {
		if rec.Percents[i] != want[i] {
			t.Errorf("Percents = %v, want %v", rec.Percents, want)
			break
		}
	}
	if rec.Completes != 1 {
		t.Errorf("Completes = %d, want 1", rec.Completes)
	}
}

func TestLoadFromStackCharBecomesInt8(t *testing.T) {
	const n = 2
	dec := &fakeDecoder{frames: map[string]*volume.Frame{}}
	for i := 0; i < n; i++ {
		dec.frames[fmt.Sprintf("slice%d", i)] = grayFrame(2, 2, volume.Char, 60+i)
	}

	rec := &reporting.Recorder{}
	v, err := volume.LoadFromStack(sliceStack(n, 2, 2, 1), dec, rec)
	if err != nil {
		t.Fatalf("LoadFromStack error: %v", err)
	}
	if v.Type != volume.Int8 {
		t.Errorf("Type = %v, want int8", v.Type)
	}
	if !rec.HasMessage(volume.MsgSettingDatatypeInt8) {
		t.Error("missing setting-datatype-int8 message")
	}
	if got := v.At(0, 0, 1, 0); got != 61 {
		t.Errorf("At(0,0,1,0) = %d, want 61", got)
	}
}

func TestLoadFromStackFrameMismatchIsFatal(t *testing.T) {
	dec := &fakeDecoder{frames: map[string]*volume.Frame{
		"slice0": grayFrame(4, 4, volume.Int16, 0),
		"slice1": grayFrame(2, 2, volume.Int16, 0),
	}}

	_, err := volume.LoadFromStack(sliceStack(2, 4, 4, 1), dec, &reporting.Recorder{})
	if !errors.Is(err, volume.ErrFrameMismatch) {
		t.Errorf("error = %v, want ErrFrameMismatch", err)
	}
}

func TestLoadFromStackEmptyStack(t *testing.T) {
	v, err := volume.LoadFromStack(series.NewStack(nil), &fakeDecoder{}, &reporting.Recorder{})
	if err != nil {
		t.Fatalf("LoadFromStack error: %v", err)
	}
	if !v.Empty() {
		t.Error("volume not empty for an empty stack")
	}
}

func TestLoadFromStackNilDecoder(t *testing.T) {
	_, err := volume.LoadFromStack(sliceStack(1, 2, 2, 1), nil, nil)
	if !errors.Is(err, volume.ErrNoDecoder) {
		t.Errorf("error = %v, want ErrNoDecoder", err)
	}
}
