// Package loader orchestrates the slice-to-volume pipeline: signature
// checks, metadata grouping, geometric reconstruction and volume assembly.
package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cocosip/go-dicom-volume/dcmdecode"
	"github.com/cocosip/go-dicom-volume/dcmfile"
	"github.com/cocosip/go-dicom-volume/reporting"
	"github.com/cocosip/go-dicom-volume/series"
	"github.com/cocosip/go-dicom-volume/volume"
)

// TagReader extracts the grouping snapshot of one slice file
type TagReader interface {
	// ReadTags parses the file's tag dictionary into a snapshot
	ReadTags(path string) (series.Snapshot, error)
}

// Decoder is the full per-file decoding surface the pipeline needs.
// Passing a nil Decoder to any Load function selects the built-in
// dcmdecode backend.
type Decoder interface {
	TagReader
	volume.PixelReader
}

// ProgressLabel is the stage label reported during the metadata pass
const ProgressLabel = "Reading image metadata"

// Warning codes emitted by the orchestrator.
const (
	// WarnNotADicomFile: a candidate failed the signature check, could not
	// be read, or is the directory index; it was excluded from the series.
	WarnNotADicomFile = "not-a-dicom-file"

	// WarnMultipleGroupings: the files split into more than one coherent
	// series and only the largest contributes to the volume.
	WarnMultipleGroupings = "multiple-groupings"
)

// Result is everything one pipeline run produces.
type Result struct {
	// Volume is the assembled voxel buffer. It is Empty when the first
	// slice failed to decode; callers must check.
	Volume *volume.Volume

	// Meta is the representative snapshot: the first slice in sorted order.
	Meta series.Snapshot

	// SliceThickness, Origin and SortedPositions come from geometric
	// reconstruction of the selected stack.
	SliceThickness  float64
	Origin          [3]float64
	SortedPositions []float64
}

// Load runs the full pipeline over the named files.
//
// Relative names (which may contain sub-paths) are joined to dir, absolute
// names are used verbatim. Files that are not DICOM images are excluded
// with a warning; if the remainder forms more than one coherent series,
// a warning reports that only the largest is loaded. The selected stack is
// sorted geometrically and assembled into a volume.
//
// Warnings never fail the pipeline. The error cases are: no usable input
// file at all, a tag-parse failure on a file that passed the signature
// check, and a pixel decode failure on any slice after the first.
func Load(dir string, names []string, dec Decoder, r reporting.Reporter) (*Result, error) {
	if dec == nil {
		dec = dcmdecode.New()
	}
	if r == nil {
		r = reporting.Null{}
	}

	grouper, err := LoadMetadata(dir, names, dec, r)
	if err != nil {
		return nil, err
	}

	if grouper.NumberOfGroups() > 1 {
		r.ShowWarning(WarnMultipleGroupings,
			"Some images were excluded because the files do not form a single coherent set. "+
				"This can be caused by scout, localizer or dose-report images stored next to the main series. "+
				"The volume was built from the largest coherent set of images in the same orientation.")
	}

	stack := grouper.LargestStack()
	if stack == nil {
		return nil, ErrNoImageFiles
	}

	thickness, origin, positions := stack.SortAndParameters(r)
	meta := stack.Items()[0].Meta

	vol, err := volume.LoadFromStack(stack, dec, r)
	if err != nil {
		return nil, err
	}

	return &Result{
		Volume:          vol,
		Meta:            meta,
		SliceThickness:  thickness,
		Origin:          origin,
		SortedPositions: positions,
	}, nil
}

// LoadFile normalizes the single-filename case into a one-element Load
func LoadFile(path string, dec Decoder, r reporting.Reporter) (*Result, error) {
	return Load(filepath.Dir(path), []string{filepath.Base(path)}, dec, r)
}

// LoadDirectory runs the pipeline over every regular file in dir
// (non-recursive)
func LoadDirectory(dir string, dec Decoder, r reporting.Reporter) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return Load(dir, names, dec, r)
}

// LoadMetadata runs the metadata pass alone: every named file is
// signature-checked and, if it matches, its grouping tags are read and the
// slice is added to the returned Grouper. Non-matching, unreadable and
// directory-index files are excluded with a warning.
//
// Names are processed in numeric filename order. That order is what the
// geometric sort falls back to when position metadata is absent, so it is
// established here, before anything has been read.
func LoadMetadata(dir string, names []string, dec TagReader, r reporting.Reporter) (*series.Grouper, error) {
	if dec == nil {
		dec = dcmdecode.New()
	}
	if r == nil {
		r = reporting.Null{}
	}

	r.ShowProgress(ProgressLabel)
	r.UpdateProgress(0)

	sorted := dcmfile.SortNumeric(names)
	n := len(sorted)
	grouper := series.NewGrouper()

	for i, name := range sorted {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}

		ok, err := dcmfile.IsImageFile(path)
		if err != nil || !ok {
			r.ShowWarning(WarnNotADicomFile,
				fmt.Sprintf("The file %s is not a DICOM image and was removed from this series.", path))
			r.UpdateProgress(progressPercent(i, n))
			continue
		}

		meta, err := dec.ReadTags(path)
		if err != nil {
			return nil, fmt.Errorf("reading tags of %s: %w", path, err)
		}
		grouper.AddItem(path, meta)
		r.UpdateProgress(progressPercent(i, n))
	}

	r.CompleteProgress()
	return grouper, nil
}

// progressPercent is round(100*i/n) on the file index
func progressPercent(i, n int) int {
	return int(math.Round(100 * float64(i) / float64(n)))
}
