package urlengine

// Part identifies one component of a URL.
type Part int

const (
	PartURL Part = iota
	PartScheme
	PartUser
	PartPassword
	PartOptions
	PartHost
	PartPort
	PartPath
	PartQuery
	PartFragment
	PartZoneID

	numParts
)

var partNames = [numParts]string{
	PartURL:      "url",
	PartScheme:   "scheme",
	PartUser:     "user",
	PartPassword: "password",
	PartOptions:  "options",
	PartHost:     "host",
	PartPort:     "port",
	PartPath:     "path",
	PartQuery:    "query",
	PartFragment: "fragment",
	PartZoneID:   "zoneid",
}

func (p Part) String() string {
	if p < 0 || p >= numParts {
		return "unknown"
	}
	return partNames[p]
}

// Flags select optional behavior for a single engine call.
type Flags uint

const (
	// GuessScheme lets Parse accept "host/path" and pick a scheme from the host.
	GuessScheme Flags = 1 << iota

	// NonSupportScheme accepts schemes the engine has no knowledge of.
	NonSupportScheme

	// Encode percent-encodes the value given to Set.
	Encode

	// Decode percent-decodes values returned by Get and Compose.
	Decode

	// DefaultPort makes Get return the scheme's default port when none is set,
	// and Compose keep a port equal to the default.
	DefaultPort
)
