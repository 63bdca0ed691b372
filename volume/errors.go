package volume

import "errors"

var (
	// ErrFrameMismatch is returned when a decoded slice disagrees with the
	// allocated volume in dimensions, sample count or datatype
	ErrFrameMismatch = errors.New("decoded slice does not match the allocated volume")

	// ErrNoDecoder is returned when LoadFromStack is called without a
	// pixel decoder
	ErrNoDecoder = errors.New("no pixel decoder")
)
