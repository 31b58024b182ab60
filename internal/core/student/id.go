// Package student contains the pure business logic for the student registry.
// This is part of the Functional Core - no I/O, only pure functions.
package student

import (
	"fmt"
	"strings"
)

// GenerateEnrollmentCode builds an enrollment code from an abbreviation and
// the sequence number claimed for it. The format is <ABBREV><N>, e.g. CIE3.
func GenerateEnrollmentCode(abbreviation string, seq int) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(abbreviation), seq)
}

// NormalizeEmail returns the comparison key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CourseChanged reports whether a proposed course differs from the current
// one. Comparison is exact after trimming.
func CourseChanged(current, proposed string) bool {
	return strings.TrimSpace(current) != strings.TrimSpace(proposed)
}
