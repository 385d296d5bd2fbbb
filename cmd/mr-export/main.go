// mr-export renders aggregated publications as RIS, CSV or XLSX 📚
//
// $ cat publications.jsonl | mr-export -t ris > library.ris
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/scinet/mailris"
	"github.com/scinet/mailris/bib"
	"github.com/scinet/mailris/config"
	"github.com/scinet/mailris/export"
	"github.com/scinet/mailris/mailfeed"
	"github.com/scinet/mailris/ris"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# mr-export - serialize aggregated publications

Reads publication JSONL as written by mr-aggregate and renders it in one
of the supported export formats. Values that carry unfilled template
placeholders or transport artifacts are dropped again at export time.
Without -o, output goes to a dated file under the export directory.

## formats

ris    one "TAG  - value" line per field, records end with "ER  - "
csv    one row per publication, multi-valued fields joined with "; "
xlsx   the csv table as a workbook

## filters

-f takes name=substring pairs, repeatable, matched case-insensitively
against the merged fields, e.g. -f title=cancer -f keyword=mri

$ mr-export -i publications.jsonl -t ris -o library.ris
$ mr-export -i publications.jsonl -t csv -o table.csv.gz
$ mr-export -i publications.jsonl -t xlsx -o table.xlsx

## flags

`, "\n")

type filterFlags map[ris.Tag]string

func (f filterFlags) String() string { return fmt.Sprintf("%v", map[ris.Tag]string(f)) }

func (f filterFlags) Set(value string) error {
	name, want, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("filter must be name=substring: %s", value)
	}
	tag, ok := ris.TagForName(strings.TrimSpace(name))
	if !ok {
		return fmt.Errorf("unknown field name: %s", name)
	}
	f[tag] = strings.TrimSpace(want)
	return nil
}

var (
	input       = flag.String("i", "-", "input location: path, URL or - for stdin")
	output      = flag.String("o", "", "output path (.gz/.zst compress), - for stdout, empty for the export dir")
	format      = flag.String("t", "ris", "target format: ris, csv, xlsx")
	showVersion = flag.Bool("version", false, "show version")
	filters     = make(filterFlags)
)

func main() {
	flag.Var(filters, "f", "field filter as name=substring, repeatable")
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
	if *output == "" {
		if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
			log.Fatal(err)
		}
		*output = path.Join(cfg.ExportDir, fmt.Sprintf("publications-%s.%s", time.Now().Format("2006-01-02"), *format))
	}
	r, err := mailfeed.Open(*input, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	pubs, err := readPublications(r)
	if err != nil {
		log.Fatal(err)
	}
	if len(filters) > 0 {
		var kept []*bib.Publication
		for _, pub := range pubs {
			if bib.Matches(pub, filters) {
				kept = append(kept, pub)
			}
		}
		pubs = kept
	}
	w, err := export.OpenWriter(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	switch *format {
	case "ris":
		err = export.WriteRIS(bw, pubs)
	case "csv":
		err = export.WriteCSV(bw, pubs)
	case "xlsx":
		err = export.WriteXLSX(bw, pubs)
	default:
		log.Fatalf("unknown format: %s", *format)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"publications": len(pubs), "format": *format, "output": *output}).Info("exported")
}

func readPublications(r io.Reader) ([]*bib.Publication, error) {
	var pubs []*bib.Publication
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<26)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var pub bib.Publication
		if err := json.Unmarshal(line, &pub); err != nil {
			return nil, err
		}
		pubs = append(pubs, &pub)
	}
	return pubs, scanner.Err()
}
