package bib

import (
	"strconv"
	"time"

	"github.com/scinet/mailris/ris"
	"github.com/scinet/mailris/sanitize"
)

// publication years outside this window count as rejected values
const (
	yearMin       = 1500
	yearLookahead = 5
)

func validYear(v string) bool {
	y, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	return y >= yearMin && y <= time.Now().Year()+yearLookahead
}

// Fold merges one source message into the publication. Scalar fields keep
// the first accepted value, repeatable fields accumulate unique values in
// first-seen order. The message is always recorded as provenance, a
// message without usable fields is a no-op fold, never an error.
func (p *Publication) Fold(msg SourceMessage) {
	p.Messages = append(p.Messages, msg)
	for _, f := range msg.Fields {
		if f.Tag == ris.TagEndOfRecord {
			continue
		}
		v, ok := sanitize.Clean(f.Value)
		if !ok {
			continue
		}
		p.Fields = append(p.Fields, RawField{
			Tag:   f.Tag,
			Value: v,
			Index: len(p.Fields),
			Date:  msg.Date,
		})
		if !f.Tag.Known() {
			// retained for detail views, no merged slot
			continue
		}
		switch f.Tag {
		case ris.TagTitle:
			setScalar(&p.Title, v)
		case ris.TagWorkType:
			// M3 is the preferred type source and may replace a value
			// that came from TY
			if p.Type == "" || p.typeFromTY {
				p.Type, p.typeFromTY = v, false
			}
		case ris.TagType:
			if p.Type == "" {
				p.Type, p.typeFromTY = v, true
			}
		case ris.TagYear:
			if p.Year == "" && validYear(v) {
				p.Year = v
			}
		case ris.TagJournal:
			setScalar(&p.Journal, v)
		case ris.TagVolume:
			setScalar(&p.Volume, v)
		case ris.TagIssue:
			setScalar(&p.Issue, v)
		case ris.TagStartPage:
			setScalar(&p.Pages, v)
		case ris.TagAbstract:
			setScalar(&p.Abstract, v)
		case ris.TagURL:
			setScalar(&p.URL, v)
		case ris.TagPDFLink:
			setScalar(&p.PDFLink, v)
		case ris.TagAuthor, ris.TagPrimaryAuthor, ris.TagSecondAuthor, ris.TagThirdAuthor:
			p.Authors = p.appendUnique("au", p.Authors, v)
		case ris.TagKeyword, ris.TagAuthorKeyword:
			p.Keywords = p.appendUnique("kw", p.Keywords, v)
		case ris.TagNotes, ris.TagAnnotation:
			p.Notes = p.appendUnique("nt", p.Notes, v)
		}
	}
}

func setScalar(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// appendUnique keeps first-seen order and suppresses exact duplicates,
// namespaced per collection.
func (p *Publication) appendUnique(ns string, list []string, v string) []string {
	if p.seen == nil {
		p.seen = make(map[string]struct{})
	}
	key := ns + "\x00" + v
	if _, ok := p.seen[key]; ok {
		return list
	}
	p.seen[key] = struct{}{}
	return append(list, v)
}
