package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryNameResolves(t *testing.T) {
	require.Len(t, scales, len(Names))
	for _, n := range Names {
		s, ok := Lookup(n)
		require.True(t, ok, n)
		require.Equal(t, 0, s[0], n)
		require.LessOrEqual(t, len(s), 12, n)
	}
}

func TestLookupIsForgiving(t *testing.T) {
	for _, n := range []string{"major", "MAJOR", "Harmonic Minor", "harmonic-minor", "in_sen"} {
		assert.True(t, Valid(n), n)
	}
	assert.False(t, Valid("klingon"))
}

func TestDegree(t *testing.T) {
	major, _ := Lookup("Major")
	tests := []struct{ n, want int }{
		{0, 0}, {1, 2}, {2, 4}, {6, 11}, {7, 12}, {8, 14}, {9, 16}, {-1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, major.Degree(tt.n), "degree %d", tt.n)
	}

	penta, _ := Lookup("pentatonic")
	assert.Equal(t, 24, penta.Degree(10))
	assert.Equal(t, 0, Scale(nil).Degree(3))
}

func TestNext(t *testing.T) {
	assert.Equal(t, "Major", Next("Chromatic", 1))
	assert.Equal(t, "Chromatic", Next("Bhairavi", 1))
	assert.Equal(t, "Bhairavi", Next("chromatic", -1))
	assert.Equal(t, "Chromatic", Next("nope", 1))
}
