// Package series groups 2D slices into coherent stacks and reconstructs
// each stack's geometry (slice order, spacing, origin) from positional
// metadata.
package series

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Snapshot is the per-slice tag snapshot collected during the metadata pass.
// It carries only what grouping, ordering and buffer allocation need; the
// Has* flags distinguish absent optional tags from zero values.
type Snapshot struct {
	StudyUID  string
	SeriesUID string
	Modality  string

	// SeriesNumber and InstanceNumber keep the decimal strings found in the
	// file; they are informational and take no part in grouping.
	SeriesNumber   string
	InstanceNumber string

	PhotometricInterpretation string

	// Orientation holds the row direction cosines in elements 0-2 and the
	// column direction cosines in elements 3-5.
	Orientation    [6]float64
	HasOrientation bool

	// Position locates the first transmitted pixel in patient space (mm).
	Position    [3]float64
	HasPosition bool

	SliceLocation    float64
	HasSliceLocation bool

	// SliceThickness is the nominal tag value; spacing reconstructed from
	// positions is preferred whenever positions are available.
	SliceThickness    float64
	HasSliceThickness bool

	Rows            int
	Columns         int
	SamplesPerPixel int
	BitsAllocated   int

	// PixelRepresentation is 0 for unsigned, 1 for two's-complement samples.
	PixelRepresentation int
}

// SeriesKey is the opaque equality key slices are grouped by. Two snapshots
// with equal keys are assumed to lie in the same coordinate frame.
type SeriesKey string

// Key builds the grouping key: slices group together only when study and
// series identity, pixel layout and (rounded) orientation all agree.
func (s Snapshot) Key() SeriesKey {
	return SeriesKey(fmt.Sprintf("%s|%s|%s|%dx%d|spp%d|bits%d|repr%d|%s",
		s.StudyUID, s.SeriesUID, s.Modality,
		s.Rows, s.Columns, s.SamplesPerPixel, s.BitsAllocated,
		s.PixelRepresentation,
		orientationSignature(s.Orientation, s.HasOrientation)))
}

// orientationSignature formats the direction cosines rounded to 1e-5 so that
// float jitter below scanner precision cannot split a series while genuinely
// different orientations still do.
func orientationSignature(o [6]float64, has bool) string {
	if !has {
		return "none"
	}
	parts := make([]string, len(o))
	for i, v := range o {
		r := math.Round(v*1e5) / 1e5
		if r == 0 {
			r = 0 // collapse negative zero
		}
		parts[i] = strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strings.Join(parts, `\`)
}
