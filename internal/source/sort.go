package source

import (
	"sort"
	"strings"
	"unicode"
)

// Sort orders items the way a person expects a photo set to be ordered:
// case-insensitive lexicographic on name, with runs of digits compared
// numerically ("img2" before "img10"). Ties are broken case-sensitively,
// then by full path, so the ordering is total and stable across runs.
func Sort(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := naturalCompare(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
}

// naturalCompare compares two strings case-insensitively, treating digit
// runs as numbers. Returns -1, 0 or 1.
func naturalCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := rune(a[i]), rune(b[j])

		if isDigit(ca) && isDigit(cb) {
			// Compare the full digit runs numerically. Leading zeros
			// make the runs differ in length without changing the value,
			// so strip them before comparing lengths.
			ia, va := digitRun(a, i)
			jb, vb := digitRun(b, j)
			if c := compareDigits(va, vb); c != 0 {
				return c
			}
			i, j = ia, jb
			continue
		}

		la, lb := unicode.ToLower(ca), unicode.ToLower(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

// digitRun returns the index just past the digit run starting at i and
// the run itself with leading zeros stripped.
func digitRun(s string, i int) (end int, digits string) {
	end = i
	for end < len(s) && isDigit(rune(s[end])) {
		end++
	}
	digits = strings.TrimLeft(s[i:end], "0")
	return end, digits
}

// compareDigits compares two zero-stripped digit strings numerically.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
