package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentical(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("audio issues", "audio issues"))
	assert.Equal(t, 1.0, Similarity("Audio Issues", "audio issues"))
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "audio issues"))
	assert.Equal(t, 0.0, Similarity("audio issues", ""))
}

func TestSimilarityNearDuplicates(t *testing.T) {
	assert.GreaterOrEqual(t, Similarity("audio issues", "audio problems"), 0.35)
	assert.GreaterOrEqual(t, Similarity("venue too cold", "cold venue"), 0.35)
}

func TestSimilarityUnrelated(t *testing.T) {
	assert.Less(t, Similarity("catering quality", "wifi speed"), 0.35)
}

func TestSequenceRatio(t *testing.T) {
	assert.InDelta(t, 1.0, sequenceRatio("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, sequenceRatio("abc", "xyz"), 1e-9)
	// LCS("abcd", "abxd") = "abd" -> 2*3/8.
	assert.InDelta(t, 0.75, sequenceRatio("abcd", "abxd"), 1e-9)
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"audio issues", "audio problems"},
		{"long lines", "registration lines too long"},
		{"speakers", "speaker quality"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), 1e-9)
	}
}
