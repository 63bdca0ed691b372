// Package transcode rewrites DICOM files into the native Explicit VR
// Little Endian transfer syntax, so that downstream pixel decoding never
// meets encapsulated data.
//
// Encapsulated sources (JPEG, JPEG-LS, JPEG 2000, RLE) need their codec
// present in the global registry; codec packs register themselves when
// imported.
package transcode

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/dicom/writer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"

	"github.com/cocosip/go-dicom-volume/dcmfile"
	"github.com/cocosip/go-dicom-volume/reporting"
)

// Target is the transfer syntax every normalized file is written in.
var Target = transfer.ExplicitVRLittleEndian

// ProgressLabel is the stage label reported while a directory normalizes
const ProgressLabel = "Transcoding images"

// WarnTranscodeFailed: a file could not be normalized and was skipped;
// the rest of the directory still processes.
const WarnTranscodeFailed = "transcode-failed"

// Pixel data up to this size is read eagerly during parsing.
const largeObjectSize = 100 * 1024 * 1024

// Needed reports whether a file in the given transfer syntax must be
// transcoded to reach the target syntax.
func Needed(ts *transfer.Syntax) bool {
	return ts.UID().UID() != Target.UID().UID()
}

// TargetPath returns where the normalized copy of srcPath goes: the same
// base name under dstDir.
func TargetPath(dstDir, srcPath string) string {
	return filepath.Join(dstDir, filepath.Base(srcPath))
}

// Normalize rewrites the DICOM file at srcPath to dstPath in the target
// transfer syntax. A file already in the target syntax is rewritten as-is;
// anything else goes through the codec registry.
func Normalize(srcPath, dstPath string) error {
	res, err := parser.ParseFile(srcPath,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(largeObjectSize),
	)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", srcPath, err)
	}

	src := res.TransferSyntax
	if !Needed(src) {
		if err := writer.WriteFile(dstPath, res.Dataset, writer.WithTransferSyntax(src)); err != nil {
			return fmt.Errorf("writing %s: %w", dstPath, err)
		}
		return nil
	}

	tr := codec.NewTranscoder(src, Target, codec.WithCodecRegistry(codec.GetGlobalRegistry()))
	ds, err := tr.Transcode(res.Dataset)
	if err != nil {
		return fmt.Errorf("transcoding %s: %w", srcPath, err)
	}

	if err := writer.WriteFile(dstPath, ds, writer.WithTransferSyntax(Target)); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	return nil
}

// NormalizeDir normalizes every DICOM image file in srcDir into dstDir,
// creating dstDir if needed. Files without the DICOM signature (and the
// DICOMDIR index) are skipped silently; a file that fails to transcode is
// skipped with a warning and does not stop the batch. Returns the number
// of files written.
func NormalizeDir(srcDir, dstDir string, r reporting.Reporter) (int, error) {
	if r == nil {
		r = reporting.Null{}
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", srcDir, err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dstDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sorted := dcmfile.SortNumeric(names)
	n := len(sorted)

	r.ShowProgress(ProgressLabel)
	r.UpdateProgress(0)

	done := 0
	for i, name := range sorted {
		src := filepath.Join(srcDir, name)
		if ok, err := dcmfile.IsImageFile(src); err != nil || !ok {
			r.UpdateProgress(progressPercent(i, n))
			continue
		}
		if err := Normalize(src, TargetPath(dstDir, src)); err != nil {
			r.ShowWarning(WarnTranscodeFailed,
				fmt.Sprintf("The file %s could not be transcoded and was skipped: %v.", src, err))
			r.UpdateProgress(progressPercent(i, n))
			continue
		}
		done++
		r.UpdateProgress(progressPercent(i, n))
	}

	r.CompleteProgress()
	return done, nil
}

// progressPercent is round(100*i/n) on the file index
func progressPercent(i, n int) int {
	return int(math.Round(100 * float64(i) / float64(n)))
}
