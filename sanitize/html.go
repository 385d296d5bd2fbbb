package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</tr>|</li>`)

// HTMLText renders an HTML document to plain text, keeping line structure
// where block elements end. Used for messages that only carry an HTML body.
func HTMLText(markup string) string {
	if markup == "" {
		return ""
	}
	markup = lineBreakPattern.ReplaceAllString(markup, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// fall back to plain tag removal
		return strings.TrimSpace(tagPattern.ReplaceAllString(markup, " "))
	}
	doc.Find("script, style").Remove()
	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
