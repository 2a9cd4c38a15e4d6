// Package urlengine parses, edits and recomposes URLs one component at a time.
//
// A Handle holds the components of a single URL. Callers seed it with Parse,
// read and replace individual parts with Get and Set, and turn it back into a
// URL string with Compose. Every call takes explicit Flags; nothing is implied
// by earlier calls.
//
// Components are stored in their encoded form, as they appear inside a URL.
// The Decode flag percent-decodes on the way out and the Encode flag
// percent-encodes on the way in.
//
// Parsing itself is delegated to net/url. This package adds what the transform
// tooling needs on top of it:
//
//   - scheme guessing for bare "host/path" input
//   - per-component presence (a URL without a fragment has no fragment,
//     which is different from an empty one)
//   - default ports per scheme
//   - user options (";opt" in the userinfo of IMAP, POP3 and SMTP URLs)
//   - IPv6 zone IDs as their own component
//
// A Handle is owned by one caller at a time and is not safe for concurrent use.
package urlengine
