package export

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
)

// OpenWriter opens a destination for writing, compressing transparently
// by suffix: ".gz" via pgzip, ".zst" via zstd. "-" writes to stdout.
// Closing the returned writer flushes the compressor and the file.
func OpenWriter(path string) (io.WriteCloser, error) {
	var (
		f   *os.File
		err error
	)
	if path == "-" {
		f = os.Stdout
	} else {
		f, err = os.Create(path)
		if err != nil {
			return nil, err
		}
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		return &stackedWriteCloser{w: gzip.NewWriter(f), under: f}, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &stackedWriteCloser{w: zw, under: f}, nil
	case path == "-":
		return nopCloser{f}, nil
	default:
		return f, nil
	}
}

type stackedWriteCloser struct {
	w     io.WriteCloser
	under *os.File
}

func (s *stackedWriteCloser) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *stackedWriteCloser) Close() error {
	if err := s.w.Close(); err != nil {
		s.under.Close()
		return err
	}
	if s.under == os.Stdout {
		return nil
	}
	return s.under.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
