// Package bib holds the aggregation core: per-message records fold into
// one publication per normalized DOI, with deterministic field precedence.
package bib

import (
	"time"

	"github.com/scinet/mailris/ris"
)

// RawField is one observed tag/value pair after sanitization, annotated
// with its order in the fold and the timestamp of the contributing
// message. Immutable once produced.
type RawField struct {
	Tag   ris.Tag   `json:"tag"`
	Value string    `json:"value"`
	Index int       `json:"index"`
	Date  time.Time `json:"date,omitempty"`
}

// Attachment carries metadata of a binary attachment on a source message.
// Payloads stay with the feed layer.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// SourceMessage is one email as produced by the retrieval boundary:
// envelope metadata plus the scanned, unsanitized field sequence. Consumed
// read-only by the aggregator.
type SourceMessage struct {
	UID         string       `json:"uid"`
	Folder      string       `json:"folder,omitempty"`
	From        string       `json:"from,omitempty"`
	Subject     string       `json:"subject,omitempty"`
	Date        time.Time    `json:"date,omitempty"`
	DOI         string       `json:"doi,omitempty"` // normalized grouping key, empty if none found
	Fields      []ris.Field  `json:"fields,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Publication is the aggregated entity for one normalized DOI. Scalar
// fields resolve to at most one value, multi-valued fields accumulate in
// first-seen order without duplicates. Messages and Fields retain the full
// provenance for detail views and re-serialization. A publication is
// rebuilt wholesale on every aggregation run, never patched across runs.
type Publication struct {
	DOI      string `json:"doi"`
	Title    string `json:"title,omitempty"`
	Type     string `json:"type,omitempty"`
	Year     string `json:"year,omitempty"`
	Journal  string `json:"journal,omitempty"`
	Volume   string `json:"volume,omitempty"`
	Issue    string `json:"issue,omitempty"`
	Pages    string `json:"pages,omitempty"`
	Abstract string `json:"abstract,omitempty"`
	URL      string `json:"url,omitempty"`
	PDFLink  string `json:"pdf_link,omitempty"`

	Authors  []string `json:"authors,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Notes    []string `json:"notes,omitempty"`

	Messages []SourceMessage `json:"messages,omitempty"`
	Fields   []RawField      `json:"fields,omitempty"`

	// an M3 value may replace a type taken from TY, once
	typeFromTY bool
	seen       map[string]struct{}
}

// NewPublication creates an empty publication for a normalized DOI.
func NewPublication(id string) *Publication {
	return &Publication{
		DOI:  id,
		seen: make(map[string]struct{}),
	}
}

// FirstAuthor returns the first folded author, or empty.
func (p *Publication) FirstAuthor() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0]
}

// LastAuthor returns the last author if there is more than one, or empty.
// Derived lazily, so it stays correct as more authors fold in.
func (p *Publication) LastAuthor() string {
	if len(p.Authors) < 2 {
		return ""
	}
	return p.Authors[len(p.Authors)-1]
}

// Values returns the merged values for a canonical tag: the resolved
// scalar, or the accumulated collection for repeatable tags. This is the
// single lookup the presentation layer uses, there is no alternate
// friendly-name access path on the record itself.
func (p *Publication) Values(tag ris.Tag) []string {
	wrap := func(v string) []string {
		if v == "" {
			return nil
		}
		return []string{v}
	}
	switch tag {
	case ris.TagDOI:
		return wrap(p.DOI)
	case ris.TagTitle:
		return wrap(p.Title)
	case ris.TagType, ris.TagWorkType:
		return wrap(p.Type)
	case ris.TagYear:
		return wrap(p.Year)
	case ris.TagJournal:
		return wrap(p.Journal)
	case ris.TagVolume:
		return wrap(p.Volume)
	case ris.TagIssue:
		return wrap(p.Issue)
	case ris.TagStartPage:
		return wrap(p.Pages)
	case ris.TagAbstract:
		return wrap(p.Abstract)
	case ris.TagURL:
		return wrap(p.URL)
	case ris.TagPDFLink:
		return wrap(p.PDFLink)
	case ris.TagAuthor, ris.TagPrimaryAuthor, ris.TagSecondAuthor, ris.TagThirdAuthor:
		return p.Authors
	case ris.TagKeyword, ris.TagAuthorKeyword:
		return p.Keywords
	case ris.TagNotes, ris.TagAnnotation:
		return p.Notes
	}
	var out []string
	for _, f := range p.Fields {
		if f.Tag == tag {
			out = append(out, f.Value)
		}
	}
	return out
}

// Stats summarizes provenance for the detail view.
type Stats struct {
	Folders map[string]int `json:"folders"`
	Senders map[string]int `json:"senders"`
	First   time.Time      `json:"first,omitempty"`
	Last    time.Time      `json:"last,omitempty"`
}

// Stats computes folder and sender histograms and the correspondence date
// range over the contributing messages.
func (p *Publication) Stats() Stats {
	s := Stats{
		Folders: make(map[string]int),
		Senders: make(map[string]int),
	}
	for _, m := range p.Messages {
		if m.Folder != "" {
			s.Folders[m.Folder]++
		}
		if m.From != "" {
			s.Senders[m.From]++
		}
		if m.Date.IsZero() {
			continue
		}
		if s.First.IsZero() || m.Date.Before(s.First) {
			s.First = m.Date
		}
		if s.Last.IsZero() || m.Date.After(s.Last) {
			s.Last = m.Date
		}
	}
	return s
}
