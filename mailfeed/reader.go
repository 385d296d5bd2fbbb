package mailfeed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/config"
	"github.com/segmentio/encoding/json"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
)

const maxLineSize = 1 << 24 // 16MB, a message body with inline HTML can be large

// Open returns a reader over a local file or an http(s) URL, transparently
// decompressing ".gz" and ".zst" suffixes. "-" reads from stdin. HTTP
// fetches take their retry count and timeout from cfg, nil means defaults.
func Open(location string, cfg *config.Config) (io.ReadCloser, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var rc io.ReadCloser
	switch {
	case location == "-":
		rc = io.NopCloser(os.Stdin)
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		client := pester.New()
		client.Backoff = pester.ExponentialBackoff
		client.MaxRetries = cfg.MaxRetries
		client.Timeout = cfg.Timeout
		client.RetryOnHTTP429 = true
		resp, err := client.Get(location)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != 200 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: got HTTP %d", location, resp.StatusCode)
		}
		rc = resp.Body
	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		rc = f
	}
	switch {
	case strings.HasSuffix(location, ".gz"):
		gr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &stackedReadCloser{r: gr, under: rc}, nil
	case strings.HasSuffix(location, ".zst"):
		zr, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &stackedReadCloser{r: zr.IOReadCloser(), under: rc}, nil
	default:
		return rc, nil
	}
}

type stackedReadCloser struct {
	r     io.ReadCloser
	under io.ReadCloser
}

func (s *stackedReadCloser) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *stackedReadCloser) Close() error {
	if err := s.r.Close(); err != nil {
		s.under.Close()
		return err
	}
	return s.under.Close()
}

// Options narrows which messages a read takes in.
type Options struct {
	Since   time.Time // zero means open start
	Until   time.Time // zero means open end
	Folders []string  // empty means all folders
}

// Window parses free form date strings and pads them to day bounds:
// since to the beginning of its day, until to the end of its day.
func Window(since, until string) (Options, error) {
	var opts Options
	if since != "" {
		t, err := dateparse.ParseStrict(since)
		if err != nil {
			return opts, fmt.Errorf("since: %w", err)
		}
		opts.Since = now.With(t).BeginningOfDay()
	}
	if until != "" {
		t, err := dateparse.ParseStrict(until)
		if err != nil {
			return opts, fmt.Errorf("until: %w", err)
		}
		opts.Until = now.With(t).EndOfDay()
	}
	return opts, nil
}

func (o Options) keep(msg *bib.SourceMessage) bool {
	if !o.Since.IsZero() && (msg.Date.IsZero() || msg.Date.Before(o.Since)) {
		return false
	}
	if !o.Until.IsZero() && (msg.Date.IsZero() || msg.Date.After(o.Until)) {
		return false
	}
	if len(o.Folders) == 0 {
		return true
	}
	for _, f := range o.Folders {
		if f == msg.Folder {
			return true
		}
	}
	return false
}

// ReadMessages decodes a JSONL stream of envelopes into source messages.
// Undecodable lines and skippable messages are logged and dropped, only
// stream errors propagate.
func ReadMessages(r io.Reader, opts Options) ([]bib.SourceMessage, error) {
	var (
		msgs    []bib.SourceMessage
		skipped int
		lineno  int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineSize)
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			log.WithField("line", lineno).Warnf("skipping undecodable envelope: %v", err)
			skipped++
			continue
		}
		msg, err := Prepare(&env)
		if err != nil {
			if _, ok := err.(Skip); ok {
				skipped++
				continue
			}
			return nil, err
		}
		if !opts.keep(msg) {
			continue
		}
		msgs = append(msgs, *msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Infof("skipped %d of %d envelopes", skipped, lineno)
	}
	return msgs, nil
}
