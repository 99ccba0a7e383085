package scan

import (
	"sort"
	"strings"
)

// naturalKey splits name into alternating non-digit / digit runs.
// The first run is always a non-digit run, possibly empty, so runs at the
// same index of two keys always have the same kind.
func naturalKey(name string) []string {
	var parts []string
	start := 0
	digits := false
	for i := 0; i < len(name); i++ {
		d := isDigit(name[i])
		if d != digits {
			parts = append(parts, name[start:i])
			start = i
			digits = d
		}
	}
	return append(parts, name[start:])
}

// compareDigits compares two runs of ASCII digits by numeric value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalCompare orders filenames so that embedded numbers compare by value
// and text compares case-insensitively: "2.jpg" < "10.jpg".
//
// Names with equal keys ("01.jpg" and "1.jpg", "A.jpg" and "a.jpg") fall back
// to byte order, which keeps the ordering total.
func NaturalCompare(a, b string) int {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ka[i], kb[i])
		} else {
			c = strings.Compare(strings.ToLower(ka[i]), strings.ToLower(kb[i]))
		}
		if c != 0 {
			return c
		}
	}
	if len(ka) != len(kb) {
		if len(ka) < len(kb) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalSort sorts names in place using NaturalCompare.
func NaturalSort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return NaturalCompare(names[i], names[j]) < 0
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
