package dcmdecode_test

import (
	"errors"
	"testing"

	"github.com/cocosip/go-dicom-volume/dcmdecode"
	"github.com/cocosip/go-dicom-volume/volume"
)

func TestPixelTypeFor(t *testing.T) {
	tests := []struct {
		name           string
		bits           int
		representation int
		want           volume.PixelType
		wantErr        bool
	}{
		{name: "8-bit unsigned", bits: 8, representation: 0, want: volume.UInt8},
		{name: "8-bit signed", bits: 8, representation: 1, want: volume.Int8},
		{name: "16-bit unsigned", bits: 16, representation: 0, want: volume.UInt16},
		{name: "16-bit signed", bits: 16, representation: 1, want: volume.Int16},
		{name: "32-bit unsigned", bits: 32, representation: 0, want: volume.UInt32},
		{name: "32-bit signed", bits: 32, representation: 1, want: volume.Int32},
		{name: "1-bit", bits: 1, representation: 0, wantErr: true},
		{name: "12-bit", bits: 12, representation: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dcmdecode.PixelTypeFor(tt.bits, tt.representation)
			if tt.wantErr {
				if !errors.Is(err, dcmdecode.ErrUnsupportedBits) {
					t.Errorf("error = %v, want ErrUnsupportedBits", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PixelTypeFor error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PixelTypeFor(%d, %d) = %v, want %v", tt.bits, tt.representation, got, tt.want)
			}
		})
	}
}

func TestFrameFromNative(t *testing.T) {
	data := [][]int{{1}, {2}, {3}, {4}, {5}, {6}}

	f, err := dcmdecode.FrameFromNative(data, 2, 3, 16, 1)
	if err != nil {
		t.Fatalf("FrameFromNative error: %v", err)
	}
	if f.Rows != 2 || f.Cols != 3 {
		t.Errorf("frame is %dx%d, want 2x3", f.Rows, f.Cols)
	}
	if f.SamplesPerPixel != 1 {
		t.Errorf("SamplesPerPixel = %d, want 1", f.SamplesPerPixel)
	}
	if f.Type != volume.Int16 {
		t.Errorf("Type = %v, want int16", f.Type)
	}
	if f.Data[4][0] != 5 {
		t.Errorf("Data[4][0] = %d, want 5", f.Data[4][0])
	}
}

func TestFrameFromNativeColor(t *testing.T) {
	data := [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}

	f, err := dcmdecode.FrameFromNative(data, 2, 2, 8, 0)
	if err != nil {
		t.Fatalf("FrameFromNative error: %v", err)
	}
	if f.SamplesPerPixel != 3 {
		t.Errorf("SamplesPerPixel = %d, want 3", f.SamplesPerPixel)
	}
	if f.Type != volume.UInt8 {
		t.Errorf("Type = %v, want uint8", f.Type)
	}
}

func TestFrameFromNativeMismatch(t *testing.T) {
	if _, err := dcmdecode.FrameFromNative([][]int{{1}, {2}}, 2, 3, 16, 0); err == nil {
		t.Error("pixel count mismatch did not error")
	}
	if _, err := dcmdecode.FrameFromNative(nil, 0, 0, 16, 0); !errors.Is(err, dcmdecode.ErrNoPixelData) {
		t.Errorf("error = %v, want ErrNoPixelData", err)
	}
}
