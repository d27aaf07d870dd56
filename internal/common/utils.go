package common

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold normalizes s for case-insensitive comparison. Scripts without case
// (Hangul and friends) pass through unchanged. A fresh Caser per call:
// Casers are stateful and must not be shared between goroutines.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// AnyContainsFold reports whether any of the segments contains substr, ignoring case.
func AnyContainsFold(segments []string, substr string) bool {
	for _, seg := range segments {
		if ContainsFold(seg, substr) {
			return true
		}
	}
	return false
}
