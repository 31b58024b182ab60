// Package abbrev derives short course codes from free-text course names.
// This is part of the Functional Core - no I/O, only pure functions.
package abbrev

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when no usable letters can be extracted.
const Fallback = "CUR"

// prefixLen is how many letters are kept when the code is derived from
// the course name itself.
const prefixLen = 3

var explicitCode = regexp.MustCompile(`^[A-Z]{2,6}$`)

// Resolve returns the abbreviation for a course name.
// Rules, in priority order:
// - Empty input yields Fallback
// - A trailing "- XYZ" segment of 2-6 letters is used as-is
// - A name that already is 2-6 letters is used as-is
// - Otherwise the first three letters of the accent-stripped name
func Resolve(course string) string {
	if course == "" {
		return Fallback
	}

	upper := strings.ToUpper(strings.TrimSpace(course))

	if i := strings.LastIndex(upper, "-"); i >= 0 {
		tail := strings.TrimSpace(upper[i+1:])
		if explicitCode.MatchString(tail) {
			return tail
		}
	}

	if explicitCode.MatchString(upper) {
		return upper
	}

	letters := asciiLetters(upper)
	if letters == "" {
		return Fallback
	}
	if len(letters) > prefixLen {
		letters = letters[:prefixLen]
	}
	return letters
}

// asciiLetters decomposes s, drops combining marks and keeps only A-Z.
func asciiLetters(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
