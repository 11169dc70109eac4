package textprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedsight/feedsight/internal/models"
)

func TestQualityCheckAcceptsRealFeedback(t *testing.T) {
	texts := []string{
		"The venue was great but the audio in the main hall kept cutting out.",
		"I liked the keynote, the speaker was really good and the food was great too.",
	}
	for _, text := range texts {
		assert.Equal(t, models.QualityAccept, QualityCheck(text), text)
	}
}

func TestQualityCheckRejectsTooShort(t *testing.T) {
	assert.Equal(t, models.QualityReject, QualityCheck("ok"))
	assert.Equal(t, models.QualityReject, QualityCheck("   hi   "))
}

func TestQualityCheckRejectsKeyboardMash(t *testing.T) {
	assert.Equal(t, models.QualityReject, QualityCheck("aaaaaaaaaaaaaaaaaaaa"))
	assert.Equal(t, models.QualityReject, QualityCheck("asdf jkl qwerty zxcv mnbv"))
}

func TestQualityCheckRejectsRepetition(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("great ", 12))
	assert.Equal(t, models.QualityReject, QualityCheck(text))
}

func TestQualityCheckFlagsFiller(t *testing.T) {
	assert.Equal(t, models.QualityFlagged, QualityCheck("um like basically yeah whatever stuff it was"))
}

func TestCharEntropy(t *testing.T) {
	assert.InDelta(t, 0.0, charEntropy("aaaa"), 1e-9)
	assert.Greater(t, charEntropy("the quick brown fox jumps over the lazy dog"), 3.0)
}

func TestRepetitionRatio(t *testing.T) {
	assert.InDelta(t, 0.75, repetitionRatio("great great great great"), 1e-9)
	assert.Less(t, repetitionRatio("the talk was good and the venue was fine"), 0.3)
}
