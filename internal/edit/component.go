package edit

import (
	"strings"

	"github.com/roach88/trurl/internal/urlengine"
)

// Component is one named, independently addressable part of a URL.
type Component struct {
	Name string
	Part urlengine.Part
}

// catalog is the fixed, ordered list of components. "url" names the whole URL.
var catalog = [...]Component{
	{Name: "url", Part: urlengine.PartURL},
	{Name: "scheme", Part: urlengine.PartScheme},
	{Name: "user", Part: urlengine.PartUser},
	{Name: "password", Part: urlengine.PartPassword},
	{Name: "options", Part: urlengine.PartOptions},
	{Name: "host", Part: urlengine.PartHost},
	{Name: "port", Part: urlengine.PartPort},
	{Name: "path", Part: urlengine.PartPath},
	{Name: "query", Part: urlengine.PartQuery},
	{Name: "fragment", Part: urlengine.PartFragment},
	{Name: "zoneid", Part: urlengine.PartZoneID},
}

// Components returns the catalog in order.
func Components() []Component {
	out := make([]Component, len(catalog))
	copy(out, catalog[:])
	return out
}

// Names returns the component names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a component by name. The match is case-insensitive and must
// cover the whole name: "hos" and "hosts" both fail.
func Lookup(name string) (Component, bool) {
	for _, c := range catalog {
		// The length check keeps Unicode case folding ("ſcheme") from matching.
		if len(c.Name) == len(name) && strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Component{}, false
}
