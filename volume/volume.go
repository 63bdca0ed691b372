package volume

import "encoding/binary"

// Volume is a dense voxel buffer assembled from one sorted stack.
//
// Samples are stored little-endian in Data, slice-contiguous: sample s of
// the voxel at row y, column x, slice k lives at element index
// ((k*Rows+y)*Cols+x)*SamplesPerPixel + s, each element Type.Size() bytes
// wide. The logical shape reported by Shape is (Rows, Cols, Slices) with a
// trailing channel count only when SamplesPerPixel > 1.
type Volume struct {
	Rows            int
	Cols            int
	Slices          int
	SamplesPerPixel int
	Type            PixelType
	Data            []byte
}

// newVolume allocates the buffer for the given geometry in one step
func newVolume(rows, cols, slices, samples int, t PixelType) *Volume {
	return &Volume{
		Rows:            rows,
		Cols:            cols,
		Slices:          slices,
		SamplesPerPixel: samples,
		Type:            t,
		Data:            make([]byte, rows*cols*slices*samples*t.Size()),
	}
}

// Empty reports whether the volume was never allocated, which is how a
// slice-0 decode failure surfaces to callers
func (v *Volume) Empty() bool {
	return v == nil || v.Type == TypeUnset
}

// Shape returns the logical dimensions, or nil for an empty volume
func (v *Volume) Shape() []int {
	if v.Empty() {
		return nil
	}
	if v.SamplesPerPixel > 1 {
		return []int{v.Rows, v.Cols, v.Slices, v.SamplesPerPixel}
	}
	return []int{v.Rows, v.Cols, v.Slices}
}

// offset returns the byte offset of sample s of the voxel at (y, x, k)
func (v *Volume) offset(y, x, k, s int) int {
	return (((k*v.Rows+y)*v.Cols+x)*v.SamplesPerPixel + s) * v.Type.Size()
}

// At returns sample s of the voxel at row y, column x, slice k,
// sign-extended for signed types
func (v *Volume) At(y, x, k, s int) int {
	off := v.offset(y, x, k, s)
	switch v.Type {
	case Int8:
		return int(int8(v.Data[off]))
	case UInt8:
		return int(v.Data[off])
	case Int16:
		return int(int16(binary.LittleEndian.Uint16(v.Data[off:])))
	case UInt16:
		return int(binary.LittleEndian.Uint16(v.Data[off:]))
	case Int32:
		return int(int32(binary.LittleEndian.Uint32(v.Data[off:])))
	case UInt32:
		return int(binary.LittleEndian.Uint32(v.Data[off:]))
	}
	return 0
}

// SetAt stores sample s of the voxel at row y, column x, slice k
func (v *Volume) SetAt(y, x, k, s, value int) {
	off := v.offset(y, x, k, s)
	switch v.Type {
	case Int8, UInt8:
		v.Data[off] = byte(value)
	case Int16, UInt16:
		binary.LittleEndian.PutUint16(v.Data[off:], uint16(value))
	case Int32, UInt32:
		binary.LittleEndian.PutUint32(v.Data[off:], uint32(value))
	}
}

// setSlice copies one decoded frame into slice index k
func (v *Volume) setSlice(k int, f *Frame) {
	for y := 0; y < v.Rows; y++ {
		for x := 0; x < v.Cols; x++ {
			px := f.Data[y*f.Cols+x]
			for s := 0; s < v.SamplesPerPixel; s++ {
				v.SetAt(y, x, k, s, px[s])
			}
		}
	}
}
