// Package corpus loads the input files of a run. Files are read
// concurrently but handed back in the order they were given, each carrying
// its own read error.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/metrics"
)

// Document is one input file. Err is non-nil when the file could not be
// opened, read or decoded; Text is empty in that case.
type Document struct {
	Path string
	Text string
	Err  error
}

// Reader loads files with bounded concurrency.
type Reader struct {
	concurrency int
	decoder     encoding.Encoding
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewReader builds a Reader. encodingName "utf-8" (or "") demands valid
// UTF-8 input; any other name known to the WHATWG encoding registry decodes
// files from that charset.
func NewReader(concurrency int, encodingName string, m *metrics.Metrics) (*Reader, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	r := &Reader{
		concurrency: concurrency,
		metrics:     m,
		logger:      slog.Default().With("component", "corpus-reader"),
	}
	if encodingName != "" {
		enc, name := charset.Lookup(encodingName)
		if enc == nil {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, 2, "unknown input encoding %q", encodingName)
		}
		if name != "utf-8" {
			r.decoder = enc
		}
	}
	return r, nil
}

// ReadAll reads every path. Per-file failures are stored on the returned
// documents; the error is non-nil only when ctx is cancelled.
func (r *Reader) ReadAll(ctx context.Context, paths []string) ([]Document, error) {
	docs := make([]Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = r.read(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return docs, nil
}

func (r *Reader) read(path string) Document {
	doc := Document{Path: path}
	f, err := os.Open(path)
	if err != nil {
		doc.Err = fmt.Errorf("%w %s: %w", apperrors.ErrFileOpen, path, err)
		r.count("open_error")
		return doc
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		doc.Err = fmt.Errorf("%w %s: %w", apperrors.ErrFileRead, path, err)
		r.count("read_error")
		return doc
	}
	text, err := r.decode(data)
	if err != nil {
		doc.Err = fmt.Errorf("%w %s: %w", apperrors.ErrFileRead, path, err)
		r.count("read_error")
		return doc
	}
	doc.Text = text
	r.count("ok")
	if r.metrics != nil {
		r.metrics.FileSizeBytes.Observe(float64(len(data)))
	}
	r.logger.Debug("file loaded", "path", path, "bytes", len(data))
	return doc
}

func (r *Reader) decode(data []byte) (string, error) {
	if r.decoder == nil {
		if !utf8.Valid(data) {
			return "", errors.New("stream did not contain valid UTF-8")
		}
		return string(data), nil
	}
	out, err := r.decoder.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding: %w", err)
	}
	return string(out), nil
}

func (r *Reader) count(status string) {
	if r.metrics != nil {
		r.metrics.FilesTotal.WithLabelValues(status).Inc()
	}
}
