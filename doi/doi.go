// Package doi canonicalizes Digital Object Identifiers used as the
// grouping key for publications.
package doi

import (
	"regexp"
	"strings"
)

// resolver prefixes are stripped once, from the left, in this order.
var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"doi.org/",
	"DOI:",
	"doi:",
}

var (
	registrantPattern = regexp.MustCompile(`^10\.\d+/`)
	doiPattern        = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Z0-9]+\b`)
)

// Normalize returns the canonical form of a raw identifier, or empty if the
// value fails the structural check (numeric registrant prefix, a slash).
// Normalize is idempotent: a normalized identifier passes through unchanged.
func Normalize(raw string) string {
	v := strings.TrimSpace(raw)
	for _, prefix := range resolverPrefixes {
		if strings.HasPrefix(v, prefix) {
			v = v[len(prefix):]
			break
		}
	}
	v = strings.TrimSpace(v)
	if !strings.Contains(v, "/") {
		return ""
	}
	if !registrantPattern.MatchString(v) {
		return ""
	}
	return v
}

// Extract returns the first DOI shaped token found in free text, or empty.
// Used as fallback when a message carries no DO field.
func Extract(text string) string {
	return doiPattern.FindString(text)
}
