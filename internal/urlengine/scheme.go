package urlengine

import "strings"

// defaultPorts lists the schemes the engine knows and their default port.
// A zero port means the scheme is known but has no network port.
var defaultPorts = map[string]int{
	"dict":    2628,
	"file":    0,
	"ftp":     21,
	"ftps":    990,
	"gopher":  70,
	"gophers": 70,
	"http":    80,
	"https":   443,
	"imap":    143,
	"imaps":   993,
	"ldap":    389,
	"ldaps":   636,
	"mqtt":    1883,
	"pop3":    110,
	"pop3s":   995,
	"rtmp":    1935,
	"rtsp":    554,
	"scp":     22,
	"sftp":    22,
	"smb":     445,
	"smbs":    445,
	"smtp":    25,
	"smtps":   465,
	"telnet":  23,
	"tftp":    69,
	"ws":      80,
	"wss":     443,
}

// optionSchemes carry login options after a ';' in the userinfo.
var optionSchemes = map[string]bool{
	"imap":  true,
	"imaps": true,
	"pop3":  true,
	"pop3s": true,
	"smtp":  true,
	"smtps": true,
}

// guessPrefixes map host prefixes to the scheme guessed for them.
// Hosts that match none of them are guessed to be http.
var guessPrefixes = []struct {
	prefix string
	scheme string
}{
	{"ftp.", "ftp"},
	{"dict.", "dict"},
	{"ldap.", "ldap"},
	{"imap.", "imap"},
	{"smtp.", "smtp"},
	{"pop3.", "pop3"},
}

func knownScheme(scheme string) bool {
	_, ok := defaultPorts[scheme]
	return ok
}

// defaultPortOf returns the default port of scheme, if it has one.
func defaultPortOf(scheme string) (int, bool) {
	port, ok := defaultPorts[strings.ToLower(scheme)]
	if !ok || port == 0 {
		return 0, false
	}
	return port, true
}

func guessScheme(hostStart string) string {
	lower := strings.ToLower(hostStart)
	for _, g := range guessPrefixes {
		if strings.HasPrefix(lower, g.prefix) {
			return g.scheme
		}
	}
	return "http"
}

// validScheme checks the RFC 3986 scheme syntax: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func validScheme(s string) bool {
	if s == "" || len(s) > 40 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// splitScheme returns the scheme of text when it starts with "scheme://".
// A bare "scheme:" is not treated as absolute, so "localhost:8080/x" is
// still a host and port.
func splitScheme(text string) (string, bool) {
	i := strings.Index(text, "://")
	if i <= 0 {
		return "", false
	}
	scheme := text[:i]
	if !validScheme(scheme) {
		return "", false
	}
	return strings.ToLower(scheme), true
}
