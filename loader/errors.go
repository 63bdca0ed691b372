package loader

import "errors"

var (
	// ErrNoImageFiles is returned when no candidate file survives the
	// signature check, so there is nothing to group or load
	ErrNoImageFiles = errors.New("no DICOM image files found")
)
