// Package mailfeed decodes already-fetched email envelopes into source
// messages ready for aggregation. Mail transport (IMAP, folder listing,
// fetching) lives outside this module, we only consume its output.
package mailfeed

import (
	"errors"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/doi"
	"github.com/scinet/mailris/ris"
	"github.com/scinet/mailris/sanitize"
)

// Skip wraps data-quality conditions that exclude a message from
// aggregation without being an error.
type Skip struct {
	err error
}

func (s Skip) Error() string { return s.err.Error() }

var (
	ErrSkipNoDOI     = Skip{err: errors.New("no doi")}
	ErrSkipEmptyBody = Skip{err: errors.New("empty body")}
)

// Envelope is one fetched mail message as delivered by the retrieval
// service, JSONL-serialized.
type Envelope struct {
	UID         string       `json:"uid"`
	Folder      string       `json:"folder"`
	From        string       `json:"from"`
	To          string       `json:"to,omitempty"`
	Subject     string       `json:"subject"`
	Date        string       `json:"date"`
	Text        string       `json:"text"`
	HTML        string       `json:"html,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a binary attachment with its payload still attached.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

// Prepare scans one envelope into a source message: pick a text rendering,
// scan both renderings for tagged fields, and resolve the grouping key
// from the DO field or, failing that, from the first DOI shaped token in
// the body. Messages without a usable identifier are skipped with a Skip
// error, they may still be listed individually upstream.
func Prepare(env *Envelope) (*bib.SourceMessage, error) {
	text := env.Text
	if text == "" && env.HTML != "" {
		text = sanitize.HTMLText(env.HTML)
	}
	if text == "" {
		return nil, ErrSkipEmptyBody
	}
	fields := ris.ScanBody(text, env.HTML)
	raw := ris.First(fields, ris.TagDOI)
	if raw == "" {
		raw = doi.Extract(text)
	}
	key := doi.Normalize(raw)
	if key == "" {
		return nil, ErrSkipNoDOI
	}
	msg := &bib.SourceMessage{
		UID:     env.UID,
		Folder:  env.Folder,
		From:    env.From,
		Subject: env.Subject,
		DOI:     key,
		Fields:  fields,
	}
	if msg.UID == "" {
		// deterministic substitute, stable across re-parses
		msg.UID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(env.Folder+"\x00"+env.From+"\x00"+env.Date+"\x00"+env.Subject)).String()
	}
	if env.Date != "" {
		if t, err := dateparse.ParseAny(env.Date); err == nil {
			msg.Date = t
		}
	}
	for _, att := range env.Attachments {
		size := att.Size
		if size == 0 {
			size = int64(len(att.Data))
		}
		msg.Attachments = append(msg.Attachments, bib.Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Size:        size,
		})
	}
	return msg, nil
}
