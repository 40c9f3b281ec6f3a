package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyMatchBasic(t *testing.T) {
	r := FuzzyMatch([]rune("fooBarBaz"), []rune("fbb"), false)
	require.True(t, r.Matched)
	assert.Greater(t, r.Score, 0)
}

func TestFuzzyMatchNoSubsequence(t *testing.T) {
	r := FuzzyMatch([]rune("hello"), []rune("xyz"), false)
	assert.False(t, r.Matched)
}

func TestFuzzyMatchCaseInsensitiveByDefault(t *testing.T) {
	r := FuzzyMatch([]rune("HELLO"), []rune("hel"), false)
	assert.True(t, r.Matched)
}

func TestFuzzyMatchCaseSensitive(t *testing.T) {
	r := FuzzyMatch([]rune("HELLO"), []rune("hel"), true)
	assert.False(t, r.Matched)
}

func TestFuzzyMatchPrefersConsecutive(t *testing.T) {
	consec := FuzzyMatch([]rune("foobar"), []rune("foo"), false)
	gapped := FuzzyMatch([]rune("f-o-o-bar"), []rune("foo"), false)
	require.True(t, consec.Matched)
	require.True(t, gapped.Matched)
	assert.Greater(t, consec.Score, gapped.Score)
}

func TestSubstringMatch(t *testing.T) {
	r := SubstringMatch([]rune("hello world"), []rune("world"), false)
	require.True(t, r.Matched)
	require.Len(t, r.Ranges, 1)
	assert.Equal(t, int32(6), r.Ranges[0][0])
	assert.Equal(t, int32(11), r.Ranges[0][1])
}

func TestSubstringMatchMiss(t *testing.T) {
	r := SubstringMatch([]rune("hello"), []rune("zz"), false)
	assert.False(t, r.Matched)
}

func TestSubstringMatchEmptyTermMatchesEverything(t *testing.T) {
	r := SubstringMatch([]rune("anything"), []rune{}, false)
	assert.True(t, r.Matched)
}
