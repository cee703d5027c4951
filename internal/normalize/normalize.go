// Package normalize contains the pure canonicalization helpers used by the
// CSV ingest pipeline and the summary filters: header normalization, date
// normalization, and strict ISO date coercion. All functions are total; bad
// input degrades to pass-through rather than an error.
package normalize

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Header normalizes a raw CSV column header to the canonical key form:
// diacritics stripped, lower-cased, trimmed, internal spaces replaced with
// underscores. Idempotent; empty input yields "".
func Header(header string) string {
	if header == "" {
		return ""
	}
	// Decompose and drop combining marks ("Ubicación" -> "Ubicacion").
	// The transformer carries state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, header); err == nil {
		header = stripped
	}
	header = strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(header, " ", "_")
}

// isoLayouts covers ISO-8601 dates and date-times, with or without seconds,
// fractional seconds (accepted implicitly after seconds), and timezone.
var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// datePatterns are tried in order after the ISO parse; the position of
// DD/MM/YYYY before MM/DD/YYYY resolves two-digit day/month ambiguity in
// favor of day-first. Keep the order stable: changing it reinterprets
// historical ambiguous values.
var datePatterns = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
	"01-02-2006",
}

// Date normalizes a raw date-ish string to canonical YYYY-MM-DD form.
// Unsupported formats are returned unchanged (pass-through); empty or
// whitespace-only input yields "".
func Date(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	candidates := []string{value}
	// A timestamp like "2025-04-03 10:15:00" also contributes its date head.
	for _, sep := range []string{" ", "T"} {
		if i := strings.Index(value, sep); i >= 0 {
			if head := strings.TrimSpace(value[:i]); head != "" {
				candidates = append(candidates, head)
			}
		}
	}
	// A candidate with trailing junk after a date prefix contributes its
	// first ten characters when they look date-shaped.
	for _, c := range append([]string(nil), candidates...) {
		r := []rune(c)
		if len(r) >= 10 {
			s := string(r[:10])
			switch r[4] {
			case '-', '/', '.':
				candidates = append(candidates, s)
			}
		}
	}

	unique := candidates[:0:0]
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	for _, c := range unique {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	for _, c := range unique {
		for _, layout := range datePatterns {
			if t, err := time.Parse(layout, c); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return value
}

// CoerceISODate normalizes value and validates the result is strictly
// YYYY-MM-DD. Returns "" otherwise, so pass-through non-dates never leak
// into range comparisons.
func CoerceISODate(value string) string {
	if value == "" {
		return ""
	}
	normalized := Date(value)
	if normalized != "" && isoDatePattern.MatchString(normalized) {
		return normalized
	}
	return ""
}
