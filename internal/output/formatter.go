// Package output renders a transformed URL as one line of text.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/trurl/internal/edit"
	"github.com/roach88/trurl/internal/urlengine"
)

// Spec selects what is written for each URL.
type Spec struct {
	// Template is a --get format string, used when HasTemplate is set.
	// Without one the full URL is written.
	Template    string
	HasTemplate bool

	// Decode percent-decodes every value before it is written.
	Decode bool

	// JSON writes one JSON object per URL instead of text.
	JSON bool
}

// Formatter writes one line per handle to an output stream.
type Formatter struct {
	spec   Spec
	w      io.Writer
	logger *slog.Logger
}

// NewFormatter creates a formatter writing to w. A nil logger discards
// warnings.
func NewFormatter(spec Spec, w io.Writer, logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Formatter{spec: spec, w: w, logger: logger}
}

// Write renders h and writes it, newline-terminated.
//
// Without a template the URL must compose; if it does not, Write returns a
// terminal *edit.Error of CategoryURL and writes nothing.
func (f *Formatter) Write(h *urlengine.Handle) error {
	var line []byte
	switch {
	case f.spec.JSON:
		b, err := f.renderJSON(h)
		if err != nil {
			return err
		}
		line = b
	case f.spec.HasTemplate:
		var b strings.Builder
		f.renderTemplate(&b, h)
		b.WriteByte('\n')
		line = []byte(b.String())
	default:
		u, err := h.Compose(f.flags())
		if err != nil {
			return edit.Errorf(edit.CategoryURL, "not enough input for a URL")
		}
		line = []byte(u + "\n")
	}

	if _, err := f.w.Write(line); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (f *Formatter) flags() urlengine.Flags {
	if f.spec.Decode {
		return urlengine.Decode
	}
	return 0
}

// renderTemplate expands the template:
//
//	{name}   component value, nothing when absent or unknown
//	{{ }}    literal braces
//	\n \r \t control characters; any other backslash pair is copied
//
// A '{' without a closing '}' ends the output.
func (f *Formatter) renderTemplate(b *strings.Builder, h *urlengine.Handle) {
	t := f.spec.Template
	for i := 0; i < len(t); {
		c := t[i]
		switch {
		case c == '{' && i+1 < len(t) && t[i+1] == '{':
			b.WriteByte('{')
			i += 2
		// "}}" pairs with "{{" so that "{{literal}}" renders as "{literal}".
		case c == '}' && i+1 < len(t) && t[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(t[i+1:], '}')
			if end < 0 {
				return
			}
			f.writeComponent(b, h, t[i+1:i+1+end])
			i += end + 2
		case c == '\\' && i+1 < len(t):
			switch t[i+1] {
			case 'r':
				b.WriteByte('\r')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(c)
				b.WriteByte(t[i+1])
			}
			i += 2
		default:
			b.WriteByte(c)
			i++
		}
	}
}

func (f *Formatter) writeComponent(b *strings.Builder, h *urlengine.Handle, name string) {
	c, ok := edit.Lookup(name)
	if !ok {
		return
	}
	value, err := h.Get(c.Part, f.flags()|urlengine.DefaultPort)
	switch {
	case err == nil:
		b.WriteString(value)
	case urlengine.IsAbsent(err):
	default:
		f.logger.Warn("cannot get component", "component", c.Name, "error", err)
	}
}

// jsonRecord is the --json rendering of one URL. Absent parts are omitted.
type jsonRecord struct {
	URL   string    `json:"url,omitempty"`
	Parts jsonParts `json:"parts"`
}

type jsonParts struct {
	Scheme   string `json:"scheme,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Options  string `json:"options,omitempty"`
	Host     string `json:"host,omitempty"`
	Port     string `json:"port,omitempty"`
	Path     string `json:"path,omitempty"`
	Query    string `json:"query,omitempty"`
	Fragment string `json:"fragment,omitempty"`
	ZoneID   string `json:"zoneid,omitempty"`
}

func (f *Formatter) renderJSON(h *urlengine.Handle) ([]byte, error) {
	var rec jsonRecord
	if u, err := h.Compose(f.flags()); err == nil {
		rec.URL = u
	}

	fields := map[urlengine.Part]*string{
		urlengine.PartScheme:   &rec.Parts.Scheme,
		urlengine.PartUser:     &rec.Parts.User,
		urlengine.PartPassword: &rec.Parts.Password,
		urlengine.PartOptions:  &rec.Parts.Options,
		urlengine.PartHost:     &rec.Parts.Host,
		urlengine.PartPort:     &rec.Parts.Port,
		urlengine.PartPath:     &rec.Parts.Path,
		urlengine.PartQuery:    &rec.Parts.Query,
		urlengine.PartFragment: &rec.Parts.Fragment,
		urlengine.PartZoneID:   &rec.Parts.ZoneID,
	}
	for _, c := range edit.Components() {
		field, ok := fields[c.Part]
		if !ok {
			continue
		}
		value, err := h.Get(c.Part, f.flags()|urlengine.DefaultPort)
		switch {
		case err == nil:
			*field = value
		case urlengine.IsAbsent(err):
		default:
			f.logger.Warn("cannot get component", "component", c.Name, "error", err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encoding JSON output: %w", err)
	}
	return buf.Bytes(), nil
}
