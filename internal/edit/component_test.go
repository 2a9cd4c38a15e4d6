package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trurl/internal/urlengine"
)

func TestLookup_AllNamesAnyCase(t *testing.T) {
	for _, name := range Names() {
		for _, variant := range []string{name, strings.ToUpper(name), strings.ToUpper(name[:1]) + name[1:]} {
			c, ok := Lookup(variant)
			require.True(t, ok, variant)
			assert.Equal(t, name, c.Name)
		}
	}
}

func TestLookup_Injective(t *testing.T) {
	seen := make(map[urlengine.Part]string)
	for _, c := range Components() {
		found, ok := Lookup(c.Name)
		require.True(t, ok)
		assert.Equal(t, c, found)

		prev, dup := seen[c.Part]
		assert.False(t, dup, "%s and %s share a part", prev, c.Name)
		seen[c.Part] = c.Name
	}
	assert.Len(t, seen, 11)
}

func TestLookup_ExactLengthOnly(t *testing.T) {
	for _, name := range []string{"", "hos", "hosts", "schem", "urls", "ſcheme", "zone"} {
		_, ok := Lookup(name)
		assert.False(t, ok, name)
	}
}

func TestComponents_Order(t *testing.T) {
	assert.Equal(t,
		[]string{"url", "scheme", "user", "password", "options", "host", "port", "path", "query", "fragment", "zoneid"},
		Names())
}

func TestComponents_ReturnsCopy(t *testing.T) {
	list := Components()
	list[0].Name = "changed"

	c, ok := Lookup("url")
	require.True(t, ok)
	assert.Equal(t, "url", c.Name)
}
