package ris

import (
	"regexp"
	"strings"
)

// Field is one observed tag/value pair, in source order.
type Field struct {
	Tag   Tag    `json:"tag"`
	Value string `json:"value"`
}

var (
	// fieldStart matches the begin of a tagged line, e.g. "TI  - Some title".
	fieldStart = regexp.MustCompile(`^([A-Z0-9]{2,3})\s*-\s*(.+)$`)
	// fieldEmpty matches a tagged line without content, e.g. the "ER  -"
	// end of record sentinel. It terminates a pending field.
	fieldEmpty = regexp.MustCompile(`^([A-Z0-9]{2,3})\s*-\s*$`)
)

// ScanFields extracts tagged fields from a block of text, line by line. A
// non-matching, non-blank line continues the pending field; blank lines are
// ignored but do not terminate a pending field. Fields that end up with an
// empty value are dropped. A line with a tag shaped prefix that is not
// actually a field (e.g. inside quoted reply text) yields a false positive,
// callers can use Tag.Known to filter those out.
func ScanFields(text string) []Field {
	var (
		fields  []Field
		tag     Tag
		value   strings.Builder
		pending bool
	)
	flush := func() {
		if !pending {
			return
		}
		if v := strings.TrimSpace(value.String()); v != "" {
			fields = append(fields, Field{Tag: tag, Value: v})
		}
		pending = false
		value.Reset()
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := fieldStart.FindStringSubmatch(line); m != nil {
			flush()
			tag, pending = Tag(m[1]), true
			value.WriteString(m[2])
			continue
		}
		if fieldEmpty.MatchString(line) {
			flush()
			continue
		}
		if pending && line != "" {
			value.WriteString(" ")
			value.WriteString(line)
		}
	}
	flush()
	return fields
}

// ScanBody scans both renderings of a message body and concatenates the
// results, plain text first. Which of two values for the same tag wins is
// decided during aggregation, never by scan order alone.
func ScanBody(text, html string) []Field {
	fields := ScanFields(text)
	if html != "" && html != text {
		fields = append(fields, ScanFields(html)...)
	}
	return fields
}

// First returns the first value for a tag, or empty.
func First(fields []Field, tag Tag) string {
	for _, f := range fields {
		if f.Tag == tag {
			return f.Value
		}
	}
	return ""
}
