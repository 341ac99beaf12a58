package versionrange

import (
	"testing"

	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareVersionIsMinimum(t *testing.T) {
	r, err := Parse("1.2")
	require.NoError(t, err)

	assert.True(t, r.ContainsString("1.2"))
	assert.True(t, r.ContainsString("1.2.0"))
	assert.True(t, r.ContainsString("99.0"))
	assert.False(t, r.ContainsString("1.1.9"))
}

func TestParseIntervalBounds(t *testing.T) {
	r, err := Parse("[1.2,2.0)")
	require.NoError(t, err)

	assert.True(t, r.ContainsString("1.2"), "inclusive lower bound")
	assert.True(t, r.ContainsString("1.9.9"))
	assert.False(t, r.ContainsString("2.0"), "exclusive upper bound")
	assert.False(t, r.ContainsString("1.1"))

	r, err = Parse("(1.2,2.0]")
	require.NoError(t, err)
	assert.False(t, r.ContainsString("1.2"), "exclusive lower bound")
	assert.True(t, r.ContainsString("2.0"), "inclusive upper bound")
}

func TestParseUnboundedSides(t *testing.T) {
	r, err := Parse("(,2.0]")
	require.NoError(t, err)
	assert.True(t, r.ContainsString("0.0.1"))
	assert.True(t, r.ContainsString("2.0"))
	assert.False(t, r.ContainsString("2.0.1"))

	r, err = Parse("[1.0,)")
	require.NoError(t, err)
	assert.True(t, r.ContainsString("1.0"))
	assert.True(t, r.ContainsString("3.7"))
	assert.False(t, r.ContainsString("0.9"))
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"[1.0",
		"1.0)",
		"[1.0]",
		"[1.0,2.0,3.0]",
		"[,]",
		"[2.0,1.0]",
		"[not-a-version,2.0]",
	} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrMalformedRange, "input %q", input)
	}
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("[1.0,2.0]") })
	assert.Panics(t, func() { MustParse("oops[") })
}

func TestContains(t *testing.T) {
	r := MustParse("[1.0,2.0]")

	v := goversion.Must(goversion.NewVersion("1.5"))
	assert.True(t, r.Contains(v))
	assert.False(t, r.Contains(nil))
	assert.False(t, r.ContainsString("not a version"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "[1.0,2.0)", MustParse("[1.0,2.0)").String())
}
