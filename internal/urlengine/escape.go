package urlengine

import (
	"fmt"
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes every byte of text except the RFC 3986 unreserved
// characters (ALPHA, DIGIT, "-", ".", "_", "~").
func Escape(text string) string {
	return escape(text, "", false)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// escape encodes text, leaving unreserved characters and the bytes in keep
// alone. With plus set a space becomes '+' instead of "%20".
func escape(text, keep string, plus bool) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case isUnreserved(c), strings.IndexByte(keep, c) >= 0:
			b.WriteByte(c)
		case c == ' ' && plus:
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

// encodePart applies the encoding rules of Set for one component.
func encodePart(part Part, value string) string {
	switch part {
	case PartPath:
		return escape(value, "/", false)
	case PartQuery:
		return escape(value, "=&", true)
	default:
		return escape(value, "", false)
	}
}

// decodePart undoes percent-encoding for the components that carry it.
// Scheme, host, port and zone ID are returned unchanged.
func decodePart(part Part, value string) (string, error) {
	var (
		out string
		err error
	)
	switch part {
	case PartQuery:
		out, err = url.QueryUnescape(value)
	case PartUser, PartPassword, PartOptions, PartPath, PartFragment:
		out, err = url.PathUnescape(value)
	default:
		return value, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadDecode, err)
	}
	return out, nil
}
