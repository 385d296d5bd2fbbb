// mr-scan extracts tagged fields from raw message bodies 📧
//
// $ cat messages.jsonl | mr-scan > fields.jsonl
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/scinet/mailris"
	"github.com/scinet/mailris/config"
	"github.com/scinet/mailris/mailfeed"
	"github.com/scinet/mailris/pproc"
	"github.com/segmentio/encoding/json"
)

var docs = strings.TrimLeft(`
# mr-scan - scan message bodies for tagged fields

Reads mail envelopes as JSONL (uid, folder, from, subject, date, text,
html) and emits one JSON document per usable message: the normalized DOI
and the ordered tag/value pairs found in the body. Messages without an
identifier or body are dropped. Plain and gzip/zstd compressed inputs
work, as do http(s) locations.

$ mr-scan -i messages.jsonl.zst -o fields.jsonl
$ cat messages.jsonl | mr-scan | jq .doi

## flags

`, "\n")

var (
	input       = flag.String("i", "-", "input location: path, URL or - for stdin")
	output      = flag.String("o", "-", "output path, - for stdout")
	numWorkers  = flag.Int("w", runtime.NumCPU(), "number of workers")
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
	r, err := mailfeed.Open(*input, config.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	var w io.WriteCloser = os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	proc := pproc.New(func(p []byte) ([]byte, error) {
		var env mailfeed.Envelope
		if err := json.Unmarshal(p, &env); err != nil {
			log.Printf("skipping undecodable envelope: %v", err)
			return nil, nil
		}
		msg, err := mailfeed.Prepare(&env)
		if err != nil {
			if _, ok := err.(mailfeed.Skip); ok {
				return nil, nil
			}
			return nil, err
		}
		b, err := json.Marshal(msg)
		b = append(b, '\n')
		return b, err
	}, pproc.WithWorkers(*numWorkers))
	if err := proc.Process(context.Background(), r, w); err != nil {
		log.Fatal(err)
	}
}
