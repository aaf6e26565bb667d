package directory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalName collapses whitespace and title-cases an employee display
// name so snapshot comparisons are not tripped by formatting-only edits.
// A fresh caser per call; cases.Caser is stateful and not goroutine-safe.
func CanonicalName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(fields, " "))
}
