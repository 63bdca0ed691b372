package dcmfile

import (
	"sort"
	"strings"
)

// SortNumeric returns a copy of names ordered so that embedded digit runs
// compare by numeric value ("img2" before "img10") and everything else
// compares case-insensitively. The sort is stable; the input is not modified.
//
// Slice exporters commonly number files without zero padding, so plain
// lexicographic order interleaves slices (img1, img10, img11, img2, ...).
// This ordering is the fallback spatial order when position tags are absent,
// so it must match the acquisition sequence for numbered exports.
func SortNumeric(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareNatural(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// compareNatural compares a and b chunk-wise: runs of digits by numeric
// value, everything else case-insensitively.
func compareNatural(a, b string) int {
	for a != "" && b != "" {
		ca, restA := chunk(a)
		cb, restB := chunk(b)

		var c int
		if isDigit(ca[0]) && isDigit(cb[0]) {
			c = compareNumeric(ca, cb)
		} else {
			c = strings.Compare(strings.ToLower(ca), strings.ToLower(cb))
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}

// chunk splits s into its leading run of digits or non-digits and the rest
func chunk(s string) (string, string) {
	digits := isDigit(s[0])
	for i := 1; i < len(s); i++ {
		if isDigit(s[i]) != digits {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// compareNumeric compares two digit runs by value. Runs may exceed any
// integer type, so the comparison stays on the string form: strip leading
// zeros, compare lengths, then digits. Equal values order the shorter
// (less padded) run first to keep the comparison total.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
