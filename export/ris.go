// Package export re-emits aggregated publications as RIS tag lines or
// tabular rows. Export is stricter than display: values failing the
// sanitizer rejection check are dropped again here, even if they slipped
// into a stored record.
package export

import (
	"fmt"
	"io"

	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/ris"
	"github.com/scinet/mailris/sanitize"
)

// defaultType is emitted when a publication carries no type of its own.
const defaultType = "JOUR"

// WriteRIS renders publications as RIS records: one "TAG  - value" line
// per retained value, repeatable tags repeated, each record closed by an
// "ER  - " sentinel and a blank line. Publications violating the
// serialization contract abort the export.
func WriteRIS(w io.Writer, pubs []*bib.Publication) error {
	for _, pub := range pubs {
		if err := bib.Validate(pub); err != nil {
			return err
		}
		if err := writeRISRecord(w, pub); err != nil {
			return err
		}
	}
	return nil
}

func writeRISRecord(w io.Writer, pub *bib.Publication) error {
	typ := pub.Type
	if typ == "" || sanitize.Reject(typ) {
		typ = defaultType
	}
	if err := writeLine(w, ris.TagType, typ); err != nil {
		return err
	}
	scalars := []struct {
		tag   ris.Tag
		value string
	}{
		{ris.TagDOI, pub.DOI},
		{ris.TagTitle, pub.Title},
		{ris.TagYear, pub.Year},
		{ris.TagJournal, pub.Journal},
		{ris.TagVolume, pub.Volume},
		{ris.TagIssue, pub.Issue},
		{ris.TagStartPage, pub.Pages},
		{ris.TagAbstract, pub.Abstract},
		{ris.TagURL, pub.URL},
		{ris.TagPDFLink, pub.PDFLink},
	}
	for _, s := range scalars {
		if s.value == "" || sanitize.Reject(s.value) {
			continue
		}
		if err := writeLine(w, s.tag, s.value); err != nil {
			return err
		}
	}
	repeated := []struct {
		tag    ris.Tag
		values []string
	}{
		{ris.TagAuthor, pub.Authors},
		{ris.TagKeyword, pub.Keywords},
		{ris.TagNotes, pub.Notes},
	}
	for _, r := range repeated {
		for _, v := range r.values {
			if sanitize.Reject(v) {
				continue
			}
			if err := writeLine(w, r.tag, v); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s  - \n\n", ris.TagEndOfRecord)
	return err
}

func writeLine(w io.Writer, tag ris.Tag, value string) error {
	_, err := fmt.Fprintf(w, "%s  - %s\n", tag, value)
	return err
}
