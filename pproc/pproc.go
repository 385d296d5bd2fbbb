// Package pproc runs a transform over every line of a stream on a pool of
// workers. Output order is unspecified, suitable for JSONL to JSONL
// transforms where each line stands alone.
package pproc

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxLineSize = 1 << 24 // 16MB hard limit per line
)

// TransformFunc turns one input line into one output chunk. Returning nil
// output drops the line.
type TransformFunc func([]byte) ([]byte, error)

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.numWorkers = n
		}
	}
}

// WithMaxLineSize sets the per-line size limit.
func WithMaxLineSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.maxLineSize = size
		}
	}
}

// Processor fans lines out to workers and funnels results into a single
// writer.
type Processor struct {
	transform   TransformFunc
	numWorkers  int
	maxLineSize int
}

// New creates a line processor with one worker per CPU by default.
func New(transform TransformFunc, opts ...Option) *Processor {
	p := &Processor{
		transform:   transform,
		numWorkers:  runtime.NumCPU(),
		maxLineSize: defaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process reads lines from r, transforms them in parallel and writes
// results to w. The first transform or stream error cancels the run.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	scanner := bufio.NewScanner(bufio.NewReader(r))
	scanner.Buffer(make([]byte, 0, 1<<20), p.maxLineSize)
	var (
		writeMu  sync.Mutex
		workChan = make(chan []byte, p.numWorkers*2)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(workChan)
		for scanner.Scan() {
			token := scanner.Bytes()
			if len(token) == 0 {
				continue
			}
			data := make([]byte, len(token))
			copy(data, token)
			select {
			case workChan <- data:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	for i := 0; i < p.numWorkers; i++ {
		g.Go(func() error {
			for data := range workChan {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				result, err := p.transform(data)
				if err != nil {
					return err
				}
				if result == nil {
					continue
				}
				writeMu.Lock()
				_, err = bw.Write(result)
				writeMu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
