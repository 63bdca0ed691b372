package series

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cocosip/go-dicom-volume/reporting"
)

// ThicknessUnknown is the slice thickness reported when geometric ordering
// is unavailable and no usable spacing could be derived.
const ThicknessUnknown float64 = 0

// Warning codes emitted during geometric reconstruction.
const (
	// WarnNoPositionMetadata: at least one slice has no usable position (or
	// the group has no orientation), so ordering fell back to file order.
	WarnNoPositionMetadata = "no-position-metadata"

	// WarnInconsistentOrientation: slices inside one group disagree on
	// orientation, which indicates a grouping bug upstream.
	WarnInconsistentOrientation = "inconsistent-orientation"
)

// Orientations within a group may differ by float noise but not more.
const orientationTolerance = 1e-4

// Stack is one coherent group of slices plus, once SortAndParameters has
// run, the derived spatial ordering and geometry. Stacks are produced by a
// Grouper or built directly with NewStack.
type Stack struct {
	key   SeriesKey
	items []Item

	sorted    bool
	positions []float64
	thickness float64
	origin    [3]float64
}

// NewStack builds a stack directly from items, for callers that already
// hold a coherent slice list and do not need a Grouper
func NewStack(items []Item) *Stack {
	st := &Stack{items: items}
	if len(items) > 0 {
		st.key = items[0].Meta.Key()
	}
	return st
}

// Key returns the series key shared by the stack's items
func (s *Stack) Key() SeriesKey {
	return s.key
}

// Len returns the number of slices
func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns the stack's (filename, snapshot) pairs. After
// SortAndParameters the slice is in final spatial order, so Items()[0] is
// the representative slice of the series.
func (s *Stack) Items() []Item {
	return s.items
}

// SortedPositions returns the per-slice scalar axis coordinates derived by
// SortAndParameters (or the fallback index sequence).
func (s *Stack) SortedPositions() []float64 {
	return s.positions
}

// SliceThickness returns the spacing derived by SortAndParameters
func (s *Stack) SliceThickness() float64 {
	return s.thickness
}

// Origin returns the patient-space position of the first sorted slice
func (s *Stack) Origin() [3]float64 {
	return s.origin
}

// Sorted reports whether SortAndParameters has run
func (s *Stack) Sorted() bool {
	return s.sorted
}

// SortAndParameters orders the slices along the dominant axis and derives
// the stack geometry.
//
// The dominant axis is the cross product of the group's row and column
// direction cosines. Each slice position is projected onto it and the
// slices are stably sorted by that scalar, ascending, so equal projections
// keep the caller's filename order. The thickness is the median consecutive
// difference of the sorted scalars (exactly the single difference for two
// slices), which one corrupted outlier cannot skew the way a mean would;
// the origin is the 3D position of the first sorted slice.
//
// When any slice lacks a position, or the group has no usable orientation,
// geometric ordering is unavailable: the caller's order is kept, a
// no-position-metadata warning is emitted, the thickness becomes
// ThicknessUnknown and the positions degrade to the index sequence 0..N-1.
//
// Returns (sliceThickness, globalOriginMM, sortedPositions). The same
// values stay readable from the stack afterwards.
func (s *Stack) SortAndParameters(r reporting.Reporter) (float64, [3]float64, []float64) {
	if r == nil {
		r = reporting.Null{}
	}
	s.sorted = true
	s.thickness = ThicknessUnknown
	s.origin = [3]float64{}

	if len(s.items) == 0 {
		s.positions = nil
		return s.thickness, s.origin, s.positions
	}

	s.checkOrientations(r)

	axis, ok := dominantAxis(s.items[0].Meta)
	complete := ok
	if complete {
		for _, it := range s.items {
			if !it.Meta.HasPosition {
				complete = false
				break
			}
		}
	}
	if !complete {
		r.ShowWarning(WarnNoPositionMetadata,
			"Slice positions are missing for this series; keeping the supplied file order and leaving the slice thickness unknown.")
		s.positions = make([]float64, len(s.items))
		for i := range s.positions {
			s.positions[i] = float64(i)
		}
		return s.thickness, s.origin, s.positions
	}

	type projected struct {
		item   Item
		scalar float64
	}
	proj := make([]projected, len(s.items))
	for i, it := range s.items {
		p := it.Meta.Position
		proj[i] = projected{item: it, scalar: floats.Dot(axis[:], p[:])}
	}
	sort.SliceStable(proj, func(i, j int) bool {
		return proj[i].scalar < proj[j].scalar
	})

	s.positions = make([]float64, len(proj))
	for i, p := range proj {
		s.items[i] = p.item
		s.positions[i] = p.scalar
	}
	s.origin = s.items[0].Meta.Position
	s.thickness = s.spacing()
	return s.thickness, s.origin, s.positions
}

// spacing derives the inter-slice distance from the sorted projections
func (s *Stack) spacing() float64 {
	n := len(s.positions)
	switch {
	case n >= 3:
		diffs := make([]float64, n-1)
		for i := 1; i < n; i++ {
			diffs[i-1] = s.positions[i] - s.positions[i-1]
		}
		sort.Float64s(diffs)
		return stat.Quantile(0.5, stat.Empirical, diffs, nil)
	case n == 2:
		return s.positions[1] - s.positions[0]
	}
	// A single slice has no consecutive difference; the nominal tag value
	// is the only spacing information left.
	if s.items[0].Meta.HasSliceThickness {
		return s.items[0].Meta.SliceThickness
	}
	return ThicknessUnknown
}

// checkOrientations reports slices that disagree with the first slice's
// orientation. That violates the grouping precondition, so it is surfaced
// as a warning rather than silently re-grouped; reconstruction continues
// with the first slice's orientation.
func (s *Stack) checkOrientations(r reporting.Reporter) {
	first := s.items[0].Meta
	for _, it := range s.items[1:] {
		if it.Meta.HasOrientation != first.HasOrientation {
			r.ShowWarning(WarnInconsistentOrientation,
				"Slices in this series report different orientations; using the first slice's orientation.")
			return
		}
		if !first.HasOrientation {
			continue
		}
		for k := range first.Orientation {
			if math.Abs(it.Meta.Orientation[k]-first.Orientation[k]) > orientationTolerance {
				r.ShowWarning(WarnInconsistentOrientation,
					"Slices in this series report different orientations; using the first slice's orientation.")
				return
			}
		}
	}
}

// dominantAxis returns the normal of the slice plane: the cross product of
// the row and column direction cosines. Degenerate cosines (zero or
// parallel vectors) yield no axis.
func dominantAxis(meta Snapshot) ([3]float64, bool) {
	if !meta.HasOrientation {
		return [3]float64{}, false
	}
	row := meta.Orientation[:3]
	col := meta.Orientation[3:]
	axis := [3]float64{
		row[1]*col[2] - row[2]*col[1],
		row[2]*col[0] - row[0]*col[2],
		row[0]*col[1] - row[1]*col[0],
	}
	if floats.Norm(axis[:], 2) < 1e-9 {
		return [3]float64{}, false
	}
	return axis, true
}
