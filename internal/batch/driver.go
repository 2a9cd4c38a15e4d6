// Package batch runs the transform and output steps once per input URL.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/roach88/trurl/internal/edit"
	"github.com/roach88/trurl/internal/output"
	"github.com/roach88/trurl/internal/transform"
	"github.com/roach88/trurl/internal/urlengine"
)

// maxLineSize bounds a single line of a URL source. Longer lines are
// skipped with a warning.
const maxLineSize = 1 << 20

// Source lists the input URLs. When Lines is set it wins and URLs is ignored.
type Source struct {
	// Lines yields one URL per line. Line endings (LF or CRLF) are stripped
	// and empty lines are skipped, as are lines over maxLineSize.
	Lines io.Reader

	// URLs are the URLs given on the command line.
	URLs []string
}

// Config wires a Driver.
type Config struct {
	Pipeline  *transform.Pipeline
	Formatter *output.Formatter

	// Logger receives per-cycle debug records. Nil discards them.
	Logger *slog.Logger

	// IDs tags each cycle. Nil defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Driver iterates over a Source.
//
// Cycles run strictly one after another. Each one gets a fresh URL handle
// that is closed before the next cycle starts, whatever the outcome.
type Driver struct {
	pipeline  *transform.Pipeline
	formatter *output.Formatter
	logger    *slog.Logger
	ids       IDGenerator
}

// New creates a driver from cfg.
func New(cfg Config) *Driver {
	d := &Driver{
		pipeline:  cfg.Pipeline,
		formatter: cfg.Formatter,
		logger:    cfg.Logger,
		ids:       cfg.IDs,
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	if d.ids == nil {
		d.ids = UUIDv7Generator{}
	}
	return d
}

// Run processes every URL of src and returns the number of cycles run.
//
// With neither lines nor URLs, Run performs exactly one cycle without a base
// URL, which builds a URL from the edits alone. The first terminal error
// stops the batch; URLs already processed have been written.
func (d *Driver) Run(ctx context.Context, src Source) (int, error) {
	if src.Lines != nil {
		return d.runLines(ctx, src.Lines)
	}
	if len(src.URLs) == 0 {
		if err := d.cycle(ctx, ""); err != nil {
			return 0, err
		}
		return 1, nil
	}
	for i, u := range src.URLs {
		if err := d.cycle(ctx, u); err != nil {
			return i, err
		}
	}
	return len(src.URLs), nil
}

func (d *Driver) runLines(ctx context.Context, r io.Reader) (int, error) {
	br := bufio.NewReader(r)

	n := 0
	for {
		line, tooLong, err := readLine(br, maxLineSize)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, edit.Errorf(edit.CategoryFile, "reading URLs: %v", err)
		}
		if tooLong {
			d.logger.Warn("skipping over-long URL line", "limit", maxLineSize)
			continue
		}
		if len(line) == 0 {
			continue
		}
		if err := d.cycle(ctx, string(line)); err != nil {
			return n, err
		}
		n++
	}
}

// readLine returns the next line without its LF or CRLF ending. A line longer
// than limit is consumed without being buffered and reported as tooLong.
// io.EOF is only returned when no bytes are left.
func readLine(br *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	got := false
	for {
		chunk, rerr := br.ReadSlice('\n')
		got = got || len(chunk) > 0
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > limit+2 {
				tooLong, line = true, nil
			}
		}
		if errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}
		if rerr != nil && (!errors.Is(rerr, io.EOF) || !got) {
			return nil, false, rerr
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > limit {
			tooLong, line = true, nil
		}
		return line, tooLong, nil
	}
}

func (d *Driver) cycle(ctx context.Context, base string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := d.ids.Generate()
	d.logger.Debug("cycle start", "cycle", id, "url", base)

	h := urlengine.New()
	defer h.Close()

	if err := d.pipeline.Apply(h, base); err != nil {
		d.logger.Debug("cycle failed", "cycle", id, "error", err)
		return err
	}
	if err := d.formatter.Write(h); err != nil {
		d.logger.Debug("cycle failed", "cycle", id, "error", err)
		return err
	}
	d.logger.Debug("cycle done", "cycle", id)
	return nil
}
