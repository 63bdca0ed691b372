package volume

// Frame is one decoded 2D slice as produced by a pixel decoder. Data is
// pixel-major and row-major: Data[y*Cols+x][s] is sample s of the pixel at
// row y, column x.
type Frame struct {
	Rows            int
	Cols            int
	SamplesPerPixel int
	Type            PixelType
	Data            [][]int
}

// checkFrame verifies that a decoded frame matches the expected geometry
// and datatype, including that the data actually carries the declared
// pixels and samples.
func checkFrame(f *Frame, rows, cols, samples int, want PixelType) error {
	if f == nil {
		return ErrFrameMismatch
	}
	if f.Rows != rows || f.Cols != cols || f.SamplesPerPixel != samples || f.Type != want {
		return ErrFrameMismatch
	}
	if len(f.Data) != rows*cols {
		return ErrFrameMismatch
	}
	for _, px := range f.Data {
		if len(px) < samples {
			return ErrFrameMismatch
		}
	}
	return nil
}
