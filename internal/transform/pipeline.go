// Package transform applies an EditSet to one URL.
//
// Phases run in a fixed order so that later phases see the effect of earlier
// ones:
//
//  1. Seed: parse the base URL, guessing a scheme when there is none.
//  2. Redirect: resolve the redirect target against the seeded URL.
//  3. Set: replace components, each at most once.
//  4. Path append: add encoded segments, one '/' between them.
//  5. Query append: add encoded pairs, joined with '&'.
//
// Only the Set phase can fail terminally (unknown or repeated component).
// Everything else is local: the failure is logged as a warning and the
// operation is skipped, so one bad component never takes down a batch.
package transform

import (
	"log/slog"
	"strings"

	"github.com/roach88/trurl/internal/edit"
	"github.com/roach88/trurl/internal/urlengine"
)

// parseFlags are used for both the base URL and the redirect target.
const parseFlags = urlengine.GuessScheme | urlengine.NonSupportScheme

// Pipeline applies a fixed EditSet to one handle per call.
//
// Thread-safety: a Pipeline only reads its EditSet and may be shared, but each
// handle must be used by one goroutine at a time.
type Pipeline struct {
	edits  edit.EditSet
	logger *slog.Logger
}

// New creates a pipeline for edits. A nil logger discards warnings.
func New(edits edit.EditSet, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{edits: edits, logger: logger}
}

// Apply runs all phases on h. An empty base starts from an empty handle,
// which is how a URL is built from --set alone.
//
// The returned error is always an *edit.Error and ends the batch.
func (p *Pipeline) Apply(h *urlengine.Handle, base string) error {
	p.seed(h, base)
	p.redirect(h)
	if err := p.set(h); err != nil {
		return err
	}
	p.appendPath(h)
	p.appendQuery(h)
	return nil
}

func (p *Pipeline) seed(h *urlengine.Handle, base string) {
	if base == "" {
		return
	}
	if err := h.Parse(base, parseFlags); err != nil {
		p.logger.Warn("ignoring URL that does not parse", "url", base, "error", err)
	}
}

func (p *Pipeline) redirect(h *urlengine.Handle) {
	if !p.edits.HasRedirect {
		return
	}
	if err := h.Parse(p.edits.Redirect, parseFlags); err != nil {
		p.logger.Warn("ignoring redirect that does not resolve", "redirect", p.edits.Redirect, "error", err)
	}
}

func (p *Pipeline) set(h *urlengine.Handle) error {
	seen := make(map[string]bool, len(p.edits.Sets))
	for _, s := range p.edits.Sets {
		c, ok := edit.Lookup(s.Component)
		if !ok {
			return edit.Errorf(edit.CategorySet, "Set unknown component: %s", s.Raw)
		}
		if seen[c.Name] {
			return edit.Errorf(edit.CategorySet, "A component can only be set once per URL (%s)", c.Name)
		}
		seen[c.Name] = true

		flags := urlengine.NonSupportScheme
		if s.Encode {
			flags |= urlengine.Encode
		}
		if err := h.Set(c.Part, s.Value, flags); err != nil {
			p.logger.Warn("cannot set component", "component", c.Name, "value", s.Value, "error", err)
		}
	}
	return nil
}

func (p *Pipeline) appendPath(h *urlengine.Handle) {
	for _, op := range p.edits.PathAppends {
		current, ok := p.current(h, urlengine.PartPath)
		if !ok {
			continue
		}
		sep := ""
		if current != "" && !strings.HasSuffix(current, "/") {
			sep = "/"
		}
		if err := h.Set(urlengine.PartPath, current+sep+op.Value, 0); err != nil {
			p.logger.Warn("cannot append to path", "segment", op.Value, "error", err)
		}
	}
}

// appendQuery joins pairs with '&'. An absent or empty query takes the pair
// as is, so no leading '&' is produced.
func (p *Pipeline) appendQuery(h *urlengine.Handle) {
	for _, op := range p.edits.QueryAppends {
		current, ok := p.current(h, urlengine.PartQuery)
		if !ok {
			continue
		}
		next := op.Value
		if current != "" {
			next = current + "&" + op.Value
		}
		if err := h.Set(urlengine.PartQuery, next, 0); err != nil {
			p.logger.Warn("cannot append to query", "pair", op.Value, "error", err)
		}
	}
}

// current reads a component for appending. Absent counts as empty; any other
// failure is logged and reported as not ok.
func (p *Pipeline) current(h *urlengine.Handle, part urlengine.Part) (string, bool) {
	value, err := h.Get(part, 0)
	switch {
	case err == nil:
		return value, true
	case urlengine.IsAbsent(err):
		return "", true
	default:
		p.logger.Warn("cannot read component", "component", part.String(), "error", err)
		return "", false
	}
}
