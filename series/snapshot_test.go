package series_test

import (
	"testing"

	"github.com/cocosip/go-dicom-volume/series"
)

func TestSeriesKey(t *testing.T) {
	base := axialSnap("1.2.3.1", 0)

	tests := []struct {
		name      string
		mutate    func(*series.Snapshot)
		wantEqual bool
	}{
		{
			name:      "identical snapshots",
			mutate:    func(s *series.Snapshot) {},
			wantEqual: true,
		},
		{
			name:      "different slice position",
			mutate:    func(s *series.Snapshot) { s.Position[2] = 42 },
			wantEqual: true,
		},
		{
			name:      "orientation jitter below rounding",
			mutate:    func(s *series.Snapshot) { s.Orientation[0] += 1e-9 },
			wantEqual: true,
		},
		{
			name:      "different series UID",
			mutate:    func(s *series.Snapshot) { s.SeriesUID = "1.2.3.9" },
			wantEqual: false,
		},
		{
			name:      "different orientation",
			mutate:    func(s *series.Snapshot) { s.Orientation[0] = 0.5 },
			wantEqual: false,
		},
		{
			name:      "different row count",
			mutate:    func(s *series.Snapshot) { s.Rows = 8 },
			wantEqual: false,
		},
		{
			name:      "different samples per pixel",
			mutate:    func(s *series.Snapshot) { s.SamplesPerPixel = 3 },
			wantEqual: false,
		},
		{
			name:      "different pixel representation",
			mutate:    func(s *series.Snapshot) { s.PixelRepresentation = 0 },
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			if got := other.Key() == base.Key(); got != tt.wantEqual {
				t.Errorf("keys equal = %v, want %v (%q vs %q)",
					got, tt.wantEqual, other.Key(), base.Key())
			}
		})
	}
}

func TestSeriesKeyMissingOrientation(t *testing.T) {
	a := axialSnap("1.2.3.1", 0)
	a.HasOrientation = false
	a.Orientation = [6]float64{1, 0, 0, 0, 1, 0}

	b := axialSnap("1.2.3.1", 5)
	b.HasOrientation = false
	b.Orientation = [6]float64{0, 1, 0, 0, 0, 1}

	// Without an orientation flag the cosine values are meaningless and
	// must not split the series.
	if a.Key() != b.Key() {
		t.Errorf("keys differ for absent orientations: %q vs %q", a.Key(), b.Key())
	}
}
