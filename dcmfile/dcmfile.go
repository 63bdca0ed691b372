// Package dcmfile provides cheap file-level DICOM checks and the numeric
// filename ordering used before any metadata has been read.
package dcmfile

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// DirectoryIndexName is the well-known name of the media storage directory
// index file. It carries the DICOM signature but is never an image slice.
const DirectoryIndexName = "DICOMDIR"

// The part-10 file signature: 4 magic bytes after the 128-byte preamble.
const magicOffset = 128

var magic = []byte("DICM")

// IsDICOM reports whether the file carries the DICOM magic signature at
// offset 128. Empty or truncated files are simply not DICOM; only genuine
// I/O failures (e.g. the file cannot be opened) return an error.
func IsDICOM(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(magic))
	if _, err := f.ReadAt(buf, magicOffset); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(buf, magic), nil
}

// IsImageFile reports whether the named file is a DICOM image slice
// candidate: it must carry the magic signature and must not be the
// directory index file.
func IsImageFile(path string) (bool, error) {
	if filepath.Base(path) == DirectoryIndexName {
		return false, nil
	}
	return IsDICOM(path)
}
