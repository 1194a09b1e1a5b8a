package floorplan

import "strings"

// LessBlockName orders block names naturally: the non-digit prefix is
// compared lexicographically, and names sharing a prefix are ordered by
// their digit suffix as a number, so "MM2" sorts before "MM10". Names
// without a digit suffix fall back to plain lexicographic order, and a
// bare prefix sorts before the same prefix with any suffix.
//
// The INL series and the placement output both depend on this order.
func LessBlockName(a, b string) bool {
	pa, sa := splitName(a)
	pb, sb := splitName(b)
	if pa != pb {
		return pa < pb
	}
	if sa == "" || sb == "" {
		return sa == "" && sb != ""
	}
	return lessNumeric(leadingDigits(sa), leadingDigits(sb))
}

// splitName cuts a name at its first digit into (prefix, suffix).
func splitName(name string) (string, string) {
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			return name[:i], name[i:]
		}
	}
	return name, ""
}

// leadingDigits returns the run of digits at the start of s.
func leadingDigits(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s[:i]
		}
	}
	return s
}

// lessNumeric compares two digit strings by numeric value without
// converting, so arbitrarily long suffixes cannot overflow.
func lessNumeric(a, b string) bool {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
