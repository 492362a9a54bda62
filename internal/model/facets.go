package model

import "strings"

// AddFacet unions facet into the comma-joined set, keeping first-seen order.
func AddFacet(joined, facet string) string {
	facet = strings.TrimSpace(facet)
	if facet == "" {
		return joined
	}
	if HasFacet(joined, facet) {
		return joined
	}
	if joined == "" {
		return facet
	}
	return joined + "," + facet
}

// MergeFacets unions every facet of other into joined.
func MergeFacets(joined, other string) string {
	for _, f := range SplitFacets(other) {
		joined = AddFacet(joined, f)
	}
	return joined
}

// HasFacet reports whether facet is a member of the comma-joined set.
func HasFacet(joined, facet string) bool {
	for _, f := range SplitFacets(joined) {
		if f == facet {
			return true
		}
	}
	return false
}

// SplitFacets splits a comma-joined set, dropping blanks.
func SplitFacets(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
