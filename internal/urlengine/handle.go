package urlengine

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// state is the set of components held by a handle, in encoded form.
type state struct {
	values  [numParts]string
	present [numParts]bool
}

func (s *state) put(part Part, value string) {
	s.values[part] = value
	s.present[part] = true
}

func (s *state) clear(part Part) {
	s.values[part] = ""
	s.present[part] = false
}

func (s *state) get(part Part) (string, bool) {
	return s.values[part], s.present[part]
}

// Handle holds the components of one URL.
//
// A Handle is acquired with New and released with Close. A closed handle
// rejects every call with ErrClosed.
type Handle struct {
	st     state
	closed bool
}

// New returns an empty handle with no components set.
func New() *Handle {
	return &Handle{}
}

// Close releases the handle. Closing twice is a no-op.
func (h *Handle) Close() {
	h.st = state{}
	h.closed = true
}

// Parse loads text into the handle.
//
// An absolute URL ("scheme://...") replaces the whole handle. Anything else is
// a reference resolved against the URL already held, or, on an empty handle,
// a URL whose scheme is guessed when GuessScheme is set. On error the handle
// is left unchanged.
func (h *Handle) Parse(text string, flags Flags) error {
	if h.closed {
		return ErrClosed
	}
	if text == "" || strings.ContainsFunc(text, badURLRune) {
		return fmt.Errorf("%w: %q", ErrMalformedInput, text)
	}

	var (
		st  state
		err error
	)
	if scheme, ok := splitScheme(text); ok {
		if !knownScheme(scheme) && flags&NonSupportScheme == 0 {
			return fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
		}
		st, err = parseAbsolute(text)
	} else if h.st.present[PartScheme] {
		st, err = h.resolve(text)
	} else if flags&GuessScheme != 0 {
		rest := strings.TrimPrefix(text, "//")
		st, err = parseAbsolute(guessScheme(rest) + "://" + rest)
	} else {
		return fmt.Errorf("%w: no scheme in %q", ErrMalformedInput, text)
	}
	if err != nil {
		return err
	}
	h.st = st
	return nil
}

func badURLRune(r rune) bool {
	return r == ' ' || unicode.IsControl(r)
}

// resolve merges ref into the current URL following RFC 3986 section 5.
func (h *Handle) resolve(ref string) (state, error) {
	baseText, err := h.compose(DefaultPort)
	if err != nil {
		return state{}, err
	}
	base, err := url.Parse(baseText)
	if err != nil {
		return state{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return state{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	// The target always takes the reference's fragment, even an empty one.
	return fromURL(base.ResolveReference(r), strings.Contains(ref, "#"))
}

func parseAbsolute(text string) (state, error) {
	u, err := url.Parse(text)
	if err != nil {
		return state{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	// Resolving against an empty base removes dot segments from the path.
	return fromURL(new(url.URL).ResolveReference(u), strings.Contains(text, "#"))
}

// fromURL converts a parsed URL. url.URL cannot tell "#" from no fragment,
// so hasFragment carries that from the input text.
func fromURL(u *url.URL, hasFragment bool) (state, error) {
	var st state
	scheme := strings.ToLower(u.Scheme)
	st.put(PartScheme, scheme)

	if u.User != nil {
		user, password, hasPassword := strings.Cut(u.User.String(), ":")
		if optionSchemes[scheme] {
			if name, options, ok := strings.Cut(user, ";"); ok {
				user = name
				st.put(PartOptions, options)
			}
		}
		st.put(PartUser, user)
		if hasPassword {
			st.put(PartPassword, password)
		}
	}

	host := u.Hostname()
	switch {
	case host != "":
		if strings.Contains(host, ":") {
			if addr, zone, ok := strings.Cut(host, "%"); ok {
				host = addr
				st.put(PartZoneID, zone)
			}
			host = "[" + host + "]"
		}
		st.put(PartHost, host)
		if port := u.Port(); port != "" {
			n, err := parsePort(port)
			if err != nil {
				return state{}, err
			}
			st.put(PartPort, n)
		}
	case scheme != "file" && knownScheme(scheme):
		return state{}, fmt.Errorf("%w: no host in %s URL", ErrMalformedInput, scheme)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	st.put(PartPath, path)

	if u.ForceQuery || u.RawQuery != "" {
		st.put(PartQuery, u.RawQuery)
	}
	if hasFragment || u.Fragment != "" {
		st.put(PartFragment, u.EscapedFragment())
	}
	return st, nil
}

func parsePort(text string) (string, error) {
	if text == "" || len(text) > 5 {
		return "", fmt.Errorf("%w: %q", ErrBadPort, text)
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrBadPort, text)
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil || n > 65535 {
		return "", fmt.Errorf("%w: %q", ErrBadPort, text)
	}
	return strconv.Itoa(n), nil
}

func normalizeHost(host string) (string, error) {
	if strings.ContainsAny(host, " /?#@\\") || strings.ContainsFunc(host, unicode.IsControl) {
		return "", fmt.Errorf("%w: %q", ErrBadHostname, host)
	}
	if strings.HasPrefix(host, "[") != strings.HasSuffix(host, "]") {
		return "", fmt.Errorf("%w: %q", ErrBadHostname, host)
	}
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}
	return host, nil
}

// Set replaces one component. An empty value removes the component.
//
// Setting PartURL is the same as Parse. Encode percent-encodes user, password,
// options, path, query and fragment values; host, port, scheme and zone ID
// are validated instead.
func (h *Handle) Set(part Part, value string, flags Flags) error {
	if h.closed {
		return ErrClosed
	}
	if part < 0 || part >= numParts {
		return fmt.Errorf("unknown URL part %d", int(part))
	}
	if part == PartURL {
		return h.Parse(value, flags)
	}
	if value == "" {
		h.st.clear(part)
		return nil
	}

	switch part {
	case PartScheme:
		if !validScheme(value) {
			return fmt.Errorf("%w: %q", ErrBadScheme, value)
		}
		value = strings.ToLower(value)
		if !knownScheme(value) && flags&NonSupportScheme == 0 {
			return fmt.Errorf("%w: %s", ErrUnsupportedScheme, value)
		}
	case PartPort:
		n, err := parsePort(value)
		if err != nil {
			return err
		}
		value = n
	case PartHost:
		host, err := normalizeHost(value)
		if err != nil {
			return err
		}
		value = host
	case PartZoneID:
	default:
		if flags&Encode != 0 {
			value = encodePart(part, value)
		}
	}
	h.st.put(part, value)
	return nil
}

// Get returns one component.
//
// A component that is not set yields an *AbsentError, except the port when
// DefaultPort is given and the scheme has a default. Getting PartURL is the
// same as Compose.
func (h *Handle) Get(part Part, flags Flags) (string, error) {
	if h.closed {
		return "", ErrClosed
	}
	if part < 0 || part >= numParts {
		return "", fmt.Errorf("unknown URL part %d", int(part))
	}
	if part == PartURL {
		return h.compose(flags)
	}
	value, ok := h.st.get(part)
	if !ok {
		if part == PartPort && flags&DefaultPort != 0 {
			if scheme, ok := h.st.get(PartScheme); ok {
				if port, ok := defaultPortOf(scheme); ok {
					return strconv.Itoa(port), nil
				}
			}
		}
		return "", &AbsentError{Part: part}
	}
	if flags&Decode != 0 {
		return decodePart(part, value)
	}
	return value, nil
}

// Compose builds the full URL from the components held.
//
// A scheme is always required and a host is required for every scheme but
// file. Otherwise the error wraps both ErrInsufficient and the AbsentError of
// the missing part. A port equal to the scheme default is left out unless
// DefaultPort is given.
func (h *Handle) Compose(flags Flags) (string, error) {
	if h.closed {
		return "", ErrClosed
	}
	return h.compose(flags)
}

func (h *Handle) compose(flags Flags) (string, error) {
	scheme, ok := h.st.get(PartScheme)
	if !ok {
		return "", fmt.Errorf("%w: %w", ErrInsufficient, &AbsentError{Part: PartScheme})
	}
	host, hasHost := h.st.get(PartHost)
	if !hasHost && scheme != "file" {
		return "", fmt.Errorf("%w: %w", ErrInsufficient, &AbsentError{Part: PartHost})
	}

	pieces := make(map[Part]string, numParts)
	for _, part := range []Part{PartUser, PartPassword, PartOptions, PartPath, PartQuery, PartFragment} {
		value, ok := h.st.get(part)
		if !ok {
			continue
		}
		if flags&Decode != 0 {
			decoded, err := decodePart(part, value)
			if err != nil {
				return "", err
			}
			value = decoded
		}
		pieces[part] = value
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")

	user, hasUser := pieces[PartUser]
	password, hasPassword := pieces[PartPassword]
	if hasUser || hasPassword {
		b.WriteString(user)
		if options, ok := pieces[PartOptions]; ok && hasUser {
			b.WriteByte(';')
			b.WriteString(options)
		}
		if hasPassword {
			b.WriteByte(':')
			b.WriteString(password)
		}
		b.WriteByte('@')
	}

	if hasHost {
		if zone, ok := h.st.get(PartZoneID); ok && strings.HasSuffix(host, "]") {
			host = host[:len(host)-1] + "%25" + zone + "]"
		}
		b.WriteString(host)
		if port, ok := h.st.get(PartPort); ok {
			def, known := defaultPortOf(scheme)
			if flags&DefaultPort != 0 || !known || strconv.Itoa(def) != port {
				b.WriteByte(':')
				b.WriteString(port)
			}
		}
	}

	path := pieces[PartPath]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	b.WriteString(path)

	if query, ok := pieces[PartQuery]; ok {
		b.WriteByte('?')
		b.WriteString(query)
	}
	if fragment, ok := pieces[PartFragment]; ok {
		b.WriteByte('#')
		b.WriteString(fragment)
	}
	return b.String(), nil
}
