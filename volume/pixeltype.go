// Package volume assembles sorted slice stacks into one dense voxel buffer.
package volume

// PixelType identifies the element type of decoded samples and voxel buffers
type PixelType int

const (
	// TypeUnset marks a Volume that was never allocated
	TypeUnset PixelType = iota

	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32

	// Char models a degenerate character datatype reported by a decoder.
	// The assembler never stores it; char volumes become Int8.
	Char
)

// Size returns the storage size of one sample in bytes
func (t PixelType) Size() int {
	switch t {
	case Int8, UInt8, Char:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32:
		return 4
	}
	return 0
}

// Signed reports whether samples are two's-complement
func (t PixelType) Signed() bool {
	switch t {
	case Int8, Int16, Int32:
		return true
	}
	return false
}

func (t PixelType) String() string {
	switch t {
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Char:
		return "char"
	}
	return "unset"
}
