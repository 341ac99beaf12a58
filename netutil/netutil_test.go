package netutil

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefixes(t *testing.T) {
	set, err := ParsePrefixes("10.0.0.0/8", "192.168.1.0/24", "2001:db8::/32")
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	assert.True(t, set.Contains(netip.MustParseAddr("10.1.2.3")))
	assert.True(t, set.Contains(netip.MustParseAddr("192.168.1.77")))
	assert.True(t, set.Contains(netip.MustParseAddr("2001:db8::1")))
	assert.False(t, set.Contains(netip.MustParseAddr("192.168.2.1")))
	assert.False(t, set.Contains(netip.MustParseAddr("11.0.0.1")))
}

func TestParsePrefixesBareAddress(t *testing.T) {
	set, err := ParsePrefixes("10.0.0.1")
	require.NoError(t, err)

	assert.True(t, set.Contains(netip.MustParseAddr("10.0.0.1")))
	assert.False(t, set.Contains(netip.MustParseAddr("10.0.0.2")))
}

func TestParsePrefixesInvalid(t *testing.T) {
	_, err := ParsePrefixes("10.0.0.0/8", "not-a-cidr")
	assert.Error(t, err)
}

func TestContainsString(t *testing.T) {
	set, err := ParsePrefixes("10.0.0.0/8")
	require.NoError(t, err)

	assert.True(t, set.ContainsString("10.200.0.1"))
	assert.False(t, set.ContainsString("172.16.0.1"))
	assert.False(t, set.ContainsString("garbage"))
}

func TestUnmaskedPrefixIsNormalized(t *testing.T) {
	set, err := ParsePrefixes("10.1.2.3/8")
	require.NoError(t, err)
	assert.True(t, set.Contains(netip.MustParseAddr("10.9.9.9")))
}
