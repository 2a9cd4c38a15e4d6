package edit

import (
	"strings"

	"github.com/roach88/trurl/internal/urlengine"
)

// SetAssignment replaces one component with a value.
type SetAssignment struct {
	// Component is the name as given, not yet checked against the catalog.
	Component string

	// Value is the new component value.
	Value string

	// Encode is false when the name was written as "component:=value".
	Encode bool

	// Raw is the original "component=value" argument, kept for messages.
	Raw string
}

// AppendKind tells which component an AppendOp extends.
type AppendKind int

const (
	AppendPath AppendKind = iota
	AppendQuery
)

func (k AppendKind) String() string {
	if k == AppendQuery {
		return "query"
	}
	return "path"
}

// AppendOp adds a path segment or a query pair. Value is already
// percent-encoded.
type AppendOp struct {
	Kind  AppendKind
	Value string
}

// EditSet is the ordered collection of edits applied to every input URL.
// It is built once and must not be modified afterwards.
type EditSet struct {
	Sets         []SetAssignment
	PathAppends  []AppendOp
	QueryAppends []AppendOp

	// Redirect is only meaningful when HasRedirect is set.
	Redirect    string
	HasRedirect bool
}

// Empty reports whether the set holds no edits at all.
func (e EditSet) Empty() bool {
	return len(e.Sets) == 0 && len(e.PathAppends) == 0 && len(e.QueryAppends) == 0 && !e.HasRedirect
}

// ParseSet parses "component=value" or "component:=value".
//
// The component name is not checked here; unknown names are reported when
// the set is applied.
func ParseSet(raw string) (SetAssignment, error) {
	eq := strings.IndexByte(raw, '=')
	if eq <= 0 {
		return SetAssignment{}, Errorf(CategorySet, "invalid --set syntax: %s", raw)
	}
	name := raw[:eq]
	encode := true
	if strings.HasSuffix(name, ":") {
		name = name[:len(name)-1]
		encode = false
	}
	return SetAssignment{
		Component: name,
		Value:     raw[eq+1:],
		Encode:    encode,
		Raw:       raw,
	}, nil
}

// ParseAppend parses "path=segment" or "query=name=value".
//
// A path segment is percent-encoded as a whole. A query entry has both sides
// of its first '=' encoded separately; an entry without '=' is encoded as a
// whole.
func ParseAppend(raw string) (AppendOp, error) {
	switch {
	case hasPrefixFold(raw, "path="):
		return AppendOp{Kind: AppendPath, Value: urlengine.Escape(raw[len("path="):])}, nil
	case hasPrefixFold(raw, "query="):
		entry := raw[len("query="):]
		if name, value, ok := strings.Cut(entry, "="); ok {
			return AppendOp{Kind: AppendQuery, Value: urlengine.Escape(name) + "=" + urlengine.Escape(value)}, nil
		}
		return AppendOp{Kind: AppendQuery, Value: urlengine.Escape(entry)}, nil
	default:
		return AppendOp{}, Errorf(CategoryAppend, "--append unsupported component: %s", raw)
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// Builder accumulates edits in input order.
type Builder struct {
	edits EditSet
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSet records a --set argument.
func (b *Builder) AddSet(raw string) error {
	s, err := ParseSet(raw)
	if err != nil {
		return err
	}
	b.edits.Sets = append(b.edits.Sets, s)
	return nil
}

// AddAppend records an --append argument.
func (b *Builder) AddAppend(raw string) error {
	op, err := ParseAppend(raw)
	if err != nil {
		return err
	}
	if op.Kind == AppendPath {
		b.edits.PathAppends = append(b.edits.PathAppends, op)
	} else {
		b.edits.QueryAppends = append(b.edits.QueryAppends, op)
	}
	return nil
}

// AddRedirect records the redirect target. Only one is allowed.
func (b *Builder) AddRedirect(target string) error {
	if b.edits.HasRedirect {
		return Errorf(CategoryFlag, "only one --redirect is supported")
	}
	b.edits.Redirect = target
	b.edits.HasRedirect = true
	return nil
}

// Build returns the accumulated edits. The result does not share storage
// with the builder, so later Add calls leave it untouched.
func (b *Builder) Build() EditSet {
	out := b.edits
	out.Sets = append([]SetAssignment(nil), b.edits.Sets...)
	out.PathAppends = append([]AppendOp(nil), b.edits.PathAppends...)
	out.QueryAppends = append([]AppendOp(nil), b.edits.QueryAppends...)
	return out
}
