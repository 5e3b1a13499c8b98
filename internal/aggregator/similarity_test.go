package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityIdentical(t *testing.T) {
	require.Equal(t, 1.0, Similarity("hall.dwg", "hall.dwg"))
}

func TestSimilarityBothEmpty(t *testing.T) {
	// Two title-less events are indistinguishable
	require.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarityOneEmpty(t *testing.T) {
	require.Equal(t, 0.0, Similarity("hall.dwg", ""))
	require.Equal(t, 0.0, Similarity("", "hall.dwg"))
}

func TestSimilarityDisjoint(t *testing.T) {
	require.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"hall.dwg", "halle.dwg"},
		{"projekt-x", "projekt-y"},
		{"invoice march", "invoice april"},
		{"", "foo"},
		{"a", "ab"},
	}
	for _, p := range pairs {
		require.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %q/%q", p[0], p[1])
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// "ab" vs "abcd": LCS=2, ratio = 2*2/(2+4)
	require.InDelta(t, 2.0/3.0, Similarity("ab", "abcd"), 1e-9)

	score := Similarity("hall.dwg", "halle.dwg")
	require.Greater(t, score, 0.65)
	require.Less(t, score, 1.0)
}
