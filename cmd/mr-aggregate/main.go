// mr-aggregate groups scanned messages into one record per DOI 🗃️
//
// $ cat messages.jsonl | mr-aggregate > publications.jsonl
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scinet/mailris"
	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/config"
	"github.com/scinet/mailris/export"
	"github.com/scinet/mailris/mailfeed"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# mr-aggregate - fold messages into publications

Reads mail envelopes as JSONL, scans each body for tagged fields,
normalizes the DOI and folds all messages sharing an identifier into a
single publication record: scalar fields keep the first accepted value,
authors and keywords accumulate in first-seen order without duplicates.
Every run rebuilds the mapping from scratch.

Output is one JSON document per publication, including the provenance
message list and the contributing field pairs.

$ mr-aggregate -i messages.jsonl -o publications.jsonl
$ mr-aggregate -i messages.jsonl -since 2023-01-01 -folder INBOX

## flags

`, "\n")

var (
	input       = flag.String("i", "-", "input location: path, URL or - for stdin")
	output      = flag.String("o", "-", "output path (.gz/.zst compress), - for stdout")
	since       = flag.String("since", "", "keep messages from this day on (YYYY-MM-DD)")
	until       = flag.String("until", "", "keep messages up to this day (YYYY-MM-DD)")
	folders     = flag.String("folder", "", "comma separated folder names to keep, empty for all")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(mailris.Version)
		os.Exit(0)
	}
	cfg := config.Default()
	opts, err := mailfeed.Window(*since, *until)
	if err != nil {
		log.Fatal(err)
	}
	switch {
	case *folders != "":
		for _, f := range strings.Split(*folders, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.Folders = append(opts.Folders, f)
			}
		}
	default:
		opts.Folders = cfg.Folders
	}
	r, err := mailfeed.Open(*input, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	msgs, err := mailfeed.ReadMessages(r, opts)
	if err != nil {
		log.Fatal(err)
	}
	result := bib.Aggregate(msgs)
	log.WithFields(log.Fields{
		"messages":     len(msgs),
		"publications": result.Len(),
	}).Info("aggregated")
	w, err := export.OpenWriter(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	enc := json.NewEncoder(bw)
	for _, pub := range result.Publications() {
		if err := enc.Encode(pub); err != nil {
			log.Fatal(err)
		}
	}
}
