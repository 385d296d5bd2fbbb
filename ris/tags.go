package ris

import "strings"

// Tag is a two or three character RIS field code, e.g. "TI" or "AU".
type Tag string

const (
	TagType          Tag = "TY" // reference type
	TagWorkType      Tag = "M3" // type of work, preferred over TY when present
	TagTitle         Tag = "TI"
	TagAuthor        Tag = "AU"
	TagPrimaryAuthor Tag = "A1"
	TagSecondAuthor  Tag = "A2"
	TagThirdAuthor   Tag = "A3"
	TagYear          Tag = "PY"
	TagDOI           Tag = "DO"
	TagAbstract      Tag = "AB"
	TagKeyword       Tag = "KW"
	TagAuthorKeyword Tag = "DE"
	TagJournal       Tag = "T2" // secondary title, i.e. journal name
	TagVolume        Tag = "VL"
	TagIssue         Tag = "IS"
	TagStartPage     Tag = "SP"
	TagEndPage       Tag = "EP"
	TagPublisher     Tag = "PB"
	TagPlace         Tag = "CY"
	TagNotes         Tag = "N2"
	TagAnnotation    Tag = "PA" // free-form notes added by correspondents
	TagCitation      Tag = "CR"
	TagURL           Tag = "UR"
	TagPDFLink       Tag = "L1"
	TagFullTextLink  Tag = "L2"
	TagEndOfRecord   Tag = "ER"
)

// Vocabulary maps known tags to a short description. Scanning accepts any
// tag shaped prefix, lookups against the vocabulary decide whether a field
// takes part in aggregation.
var Vocabulary = map[Tag]string{
	TagType:          "Type of reference",
	TagWorkType:      "Type of work",
	TagTitle:         "Title",
	TagAuthor:        "Author",
	TagPrimaryAuthor: "Primary author",
	TagSecondAuthor:  "Secondary author",
	TagThirdAuthor:   "Tertiary author",
	TagYear:          "Publication year",
	TagDOI:           "DOI",
	TagAbstract:      "Abstract",
	TagKeyword:       "Keyword",
	TagAuthorKeyword: "Author keyword",
	TagJournal:       "Secondary title (journal)",
	TagVolume:        "Volume",
	TagIssue:         "Issue",
	TagStartPage:     "Start page",
	TagEndPage:       "End page",
	TagPublisher:     "Publisher",
	TagPlace:         "Place of publication",
	TagNotes:         "Notes",
	TagAnnotation:    "Annotations",
	TagCitation:      "Cited reference",
	TagURL:           "URL",
	TagPDFLink:       "Link to PDF",
	TagFullTextLink:  "Link to full-text",
	TagEndOfRecord:   "End of reference",
}

// repeatable tags accumulate values, all other tags are scalar.
var repeatable = map[Tag]struct{}{
	TagAuthor:        {},
	TagPrimaryAuthor: {},
	TagSecondAuthor:  {},
	TagThirdAuthor:   {},
	TagKeyword:       {},
	TagAuthorKeyword: {},
	TagCitation:      {},
	TagNotes:         {},
	TagAnnotation:    {},
}

// Known returns true if the tag is part of the vocabulary.
func (t Tag) Known() bool {
	_, ok := Vocabulary[t]
	return ok
}

// Repeatable returns true if the tag may carry more than one value per
// publication.
func (t Tag) Repeatable() bool {
	_, ok := repeatable[t]
	return ok
}

// names resolves the friendly field names used by callers (filters, export
// columns) to their canonical tag, one name per tag.
var names = map[string]Tag{
	"type":     TagWorkType,
	"title":    TagTitle,
	"author":   TagAuthor,
	"year":     TagYear,
	"doi":      TagDOI,
	"abstract": TagAbstract,
	"keyword":  TagKeyword,
	"journal":  TagJournal,
	"volume":   TagVolume,
	"issue":    TagIssue,
	"pages":    TagStartPage,
	"notes":    TagNotes,
	"url":      TagURL,
	"pdf":      TagPDFLink,
}

// TagForName resolves a friendly field name or a literal tag code to a
// tag. Friendly names match case-insensitively, codes are uppercased.
func TagForName(name string) (Tag, bool) {
	if t, ok := names[strings.ToLower(name)]; ok {
		return t, true
	}
	t := Tag(strings.ToUpper(name))
	if t.Known() {
		return t, true
	}
	return "", false
}
