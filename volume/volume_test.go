package volume_test

import (
	"testing"

	"github.com/cocosip/go-dicom-volume/volume"
)

func TestPixelTypeSize(t *testing.T) {
	tests := []struct {
		t    volume.PixelType
		size int
	}{
		{volume.Int8, 1},
		{volume.UInt8, 1},
		{volume.Char, 1},
		{volume.Int16, 2},
		{volume.UInt16, 2},
		{volume.Int32, 4},
		{volume.UInt32, 4},
		{volume.TypeUnset, 0},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			if got := tt.t.Size(); got != tt.size {
				t.Errorf("%v.Size() = %d, want %d", tt.t, got, tt.size)
			}
		})
	}
}

func TestPixelTypeSigned(t *testing.T) {
	signed := []volume.PixelType{volume.Int8, volume.Int16, volume.Int32}
	unsigned := []volume.PixelType{volume.UInt8, volume.UInt16, volume.UInt32, volume.Char}
	for _, pt := range signed {
		if !pt.Signed() {
			t.Errorf("%v.Signed() = false, want true", pt)
		}
	}
	for _, pt := range unsigned {
		if pt.Signed() {
			t.Errorf("%v.Signed() = true, want false", pt)
		}
	}
}

func TestVolumeEmpty(t *testing.T) {
	var nilVolume *volume.Volume
	if !nilVolume.Empty() {
		t.Error("nil volume Empty() = false, want true")
	}
	if !(&volume.Volume{}).Empty() {
		t.Error("zero volume Empty() = false, want true")
	}
	if (&volume.Volume{}).Shape() != nil {
		t.Error("zero volume Shape() != nil")
	}
}
