package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenderWhole(t *testing.T) {
	tpl, err := Parse("{}")
	require.NoError(t, err)
	out, err := tpl.Render("hello world", " ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestParseRenderField(t *testing.T) {
	tpl, err := Parse("{1}")
	require.NoError(t, err)
	out, err := tpl.Render("a b c", " ")
	require.NoError(t, err)
	assert.Equal(t, "b", out)
}

func TestParseRenderNegativeField(t *testing.T) {
	tpl, err := Parse("{-1}")
	require.NoError(t, err)
	out, err := tpl.Render("a b c", " ")
	require.NoError(t, err)
	assert.Equal(t, "c", out)
}

func TestParseRenderFieldOutOfRangeFails(t *testing.T) {
	tpl, err := Parse("{5}")
	require.NoError(t, err)
	_, err = tpl.Render("a b", " ")
	assert.Error(t, err)
}

func TestParseRenderOps(t *testing.T) {
	tpl, err := Parse("{upper}")
	require.NoError(t, err)
	out, err := tpl.Render("shout", " ")
	require.NoError(t, err)
	assert.Equal(t, "SHOUT", out)
}

func TestParseRenderSplit(t *testing.T) {
	tpl, err := Parse("{split:,:1}")
	require.NoError(t, err)
	out, err := tpl.Render("a,b,c", " ")
	require.NoError(t, err)
	assert.Equal(t, "b", out)
}

func TestParseUnknownOpFails(t *testing.T) {
	_, err := Parse("{bogus}")
	assert.Error(t, err)
}

func TestRenderMultiSpaceJoins(t *testing.T) {
	tpl, err := Parse("{}")
	require.NoError(t, err)
	out, err := tpl.RenderMulti([]string{"a", "b", "c"}, " ")
	require.NoError(t, err)
	assert.Equal(t, "a b c", out)
}

func TestParseRenderIdentityRoundTrip(t *testing.T) {
	src := "prefix {} suffix {} tail"
	tpl, err := Parse(src)
	require.NoError(t, err)
	// Rendering with the identity map over {} (i.e. substituting "{}" for
	// each whole-entry hole) reconstructs the original template verbatim
	// for templates without transformation ops.
	out, err := tpl.Render("{}", "")
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestParseEscapedBrace(t *testing.T) {
	tpl, err := Parse(`\{}literal`)
	require.NoError(t, err)
	out, err := tpl.Render("x", " ")
	require.NoError(t, err)
	assert.Equal(t, "{}literal", out)
}
