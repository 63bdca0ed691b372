package dcmdecode

import (
	"fmt"

	"github.com/cocosip/go-dicom-volume/volume"
)

// PixelTypeFor maps a sample width and pixel representation (0 = unsigned,
// 1 = two's complement) to the corresponding buffer type
func PixelTypeFor(bitsPerSample, pixelRepresentation int) (volume.PixelType, error) {
	signed := pixelRepresentation == 1
	switch bitsPerSample {
	case 8:
		if signed {
			return volume.Int8, nil
		}
		return volume.UInt8, nil
	case 16:
		if signed {
			return volume.Int16, nil
		}
		return volume.UInt16, nil
	case 32:
		if signed {
			return volume.Int32, nil
		}
		return volume.UInt32, nil
	}
	return volume.TypeUnset, fmt.Errorf("%w: %d", ErrUnsupportedBits, bitsPerSample)
}

// FrameFromNative wraps a decoded native frame (pixel-major samples, one
// inner slice per pixel) as an assembler frame. The sample count is taken
// from the data itself.
func FrameFromNative(data [][]int, rows, cols, bitsPerSample, pixelRepresentation int) (*volume.Frame, error) {
	t, err := PixelTypeFor(bitsPerSample, pixelRepresentation)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrNoPixelData
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%d pixels do not fill %dx%d", len(data), rows, cols)
	}
	return &volume.Frame{
		Rows:            rows,
		Cols:            cols,
		SamplesPerPixel: len(data[0]),
		Type:            t,
		Data:            data,
	}, nil
}
