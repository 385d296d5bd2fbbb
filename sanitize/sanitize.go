// Package sanitize normalizes raw field values scraped from email bodies:
// markup is removed, legitimate hyperlinks survive, placeholder and
// template leftovers are rejected.
package sanitize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	anchorPattern      = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["'][^"']*["'][^>]*>.*?</a>`)
	tagPattern         = regexp.MustCompile(`(?s)</?[A-Za-z][^>]*>|<!--.*?-->`)
	bareURLPattern     = regexp.MustCompile(`https?://[^\s<>"']+`)
	placeholderPattern = regexp.MustCompile(`^\s*\[.*\]\s*$`)
)

// sentinel wraps a protected anchor index so the markup removal and
// escaping steps cannot touch it. NUL never occurs in mail text.
func sentinel(i int) string { return fmt.Sprintf("\x00%d\x00", i) }

// Clean turns a raw value into a display and storage safe value. Well
// formed anchors are kept verbatim, any other markup is removed, leftover
// markup significant characters are escaped and bare URLs become links.
// The second return is false for values that are rejected entirely (empty,
// bracketed placeholder, transport artifact). Clean is pure and idempotent:
// cleaning a cleaned value returns it unchanged.
func Clean(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	var anchors []string
	v = anchorPattern.ReplaceAllStringFunc(v, func(m string) string {
		anchors = append(anchors, m)
		return sentinel(len(anchors) - 1)
	})
	v = tagPattern.ReplaceAllString(v, "")
	// unescape first, so that already escaped input is not escaped twice
	v = html.EscapeString(html.UnescapeString(v))
	v = bareURLPattern.ReplaceAllStringFunc(v, func(u string) string {
		return fmt.Sprintf(`<a href="%s">%s</a>`, u, u)
	})
	for i, a := range anchors {
		v = strings.Replace(v, sentinel(i), a, 1)
	}
	v = strings.TrimSpace(v)
	if Reject(v) {
		return "", false
	}
	return v, true
}

// Reject reports whether a value must be treated as absent: empty after
// trimming, a single bracketed placeholder token (unfilled template text
// like "[insert abstract here]"), or a transport artifact leaking from a
// mail template. The exporter runs this check again on stored values,
// export correctness is stricter than display tolerance.
func Reject(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	if placeholderPattern.MatchString(v) {
		return true
	}
	lower := strings.ToLower(v)
	for _, artifact := range []string{"mailto:", "href="} {
		if strings.HasPrefix(lower, artifact) {
			return true
		}
	}
	return false
}
