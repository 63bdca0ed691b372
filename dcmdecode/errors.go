package dcmdecode

import "errors"

var (
	// ErrEncapsulated is returned for compressed transfer syntaxes; the
	// file must be transcoded to a native syntax before pixels can be read
	ErrEncapsulated = errors.New("pixel data is encapsulated")

	// ErrMultiFrame is returned for files carrying more than one frame,
	// which cannot stand in for a single 2D slice
	ErrMultiFrame = errors.New("multi-frame files are not supported")

	// ErrNoPixelData is returned when the file has no decodable frame
	ErrNoPixelData = errors.New("no pixel data")

	// ErrUnsupportedBits is returned for sample widths other than 8, 16
	// or 32 bits
	ErrUnsupportedBits = errors.New("unsupported bits per sample")
)
