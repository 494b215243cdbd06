// Package convention holds the office folder naming grammar:
//
//	<root>/<ccc - Client Name>/<ccc-nnnn>/Rev-<rr>
//
// The patterns are matched bit-exact against existing share trees, so they
// must not be loosened.
package convention

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxSequence is the largest drawing number a 4-digit name can hold
	MaxSequence = 9999
	// MaxRevision is the largest revision number a 2-digit name can hold
	MaxRevision = 99

	// RevisionPrefix starts every revision folder name
	RevisionPrefix = "Rev-"
)

var (
	clientPattern   = regexp.MustCompile(`^\s*(\d{3})\s*-\s*(.+)$`)
	drawingPattern  = regexp.MustCompile(`^\d{3}-\d{4}$`)
	revisionPattern = regexp.MustCompile(`^Rev-\d{2}$`)
	codePattern     = regexp.MustCompile(`^\d{3}$`)
)

// ParseClientName splits a coded client folder name into code and display name.
// "045 - Acme Corp" yields ("045", "Acme Corp", true).
func ParseClientName(name string) (code, displayName string, ok bool) {
	m := clientPattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	displayName = strings.TrimSpace(m[2])
	if displayName == "" {
		return "", "", false
	}
	return m[1], displayName, true
}

// FormatClientName builds the canonical coded folder name
func FormatClientName(code, displayName string) string {
	return fmt.Sprintf("%s - %s", code, displayName)
}

// ParseDrawingName returns the code and sequence of a drawing folder name
func ParseDrawingName(name string) (code string, sequence int, ok bool) {
	if !drawingPattern.MatchString(name) {
		return "", 0, false
	}
	// Grammar guarantees "ddd-dddd".
	sequence, err := strconv.Atoi(name[4:])
	if err != nil {
		return "", 0, false
	}
	return name[:3], sequence, true
}

// FormatDrawingName builds "<code>-<sequence:04d>"
func FormatDrawingName(code string, sequence int) string {
	return fmt.Sprintf("%s-%04d", code, sequence)
}

// ParseRevisionName returns the number of a "Rev-NN" folder name
func ParseRevisionName(name string) (int, bool) {
	if !revisionPattern.MatchString(name) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, RevisionPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatRevisionName builds "Rev-<number:02d>"
func FormatRevisionName(number int) string {
	return fmt.Sprintf("%s%02d", RevisionPrefix, number)
}

// IsClientCode reports whether code is exactly three digits
func IsClientCode(code string) bool {
	return codePattern.MatchString(code)
}

// ValidSequence reports whether n fits in a drawing folder name
func ValidSequence(n int) bool {
	return n >= 0 && n <= MaxSequence
}
