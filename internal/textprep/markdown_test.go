package textprep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedsight/feedsight/internal/models"
)

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "see the schedule ", RemoveLinks("see the [schedule](https://example.com/s) https://example.com"))
	assert.Equal(t, "plain text", RemoveLinks("plain text"))
}

func TestMarkdownToText(t *testing.T) {
	input := "# Feedback\n\nThe **audio** was *terrible* in [hall B](https://example.com/b)."
	out := MarkdownToText(input)
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "audio")
	assert.Contains(t, out, "hall B")
}

func TestVaderSentimentBands(t *testing.T) {
	_, label := VaderSentiment("This was an absolutely amazing, wonderful event. Loved it!")
	assert.Equal(t, models.SentimentPositive, label)

	_, label = VaderSentiment("Terrible experience, awful venue, horrible food. Hated it.")
	assert.Equal(t, models.SentimentNegative, label)
}

func TestSentimentAgrees(t *testing.T) {
	assert.True(t, SentimentAgrees(models.SentimentPositive, "Amazing event, loved every minute!"))
	assert.False(t, SentimentAgrees(models.SentimentPositive, "Terrible experience, awful venue, horrible food. Hated it."))
	// Neutral never disagrees.
	assert.True(t, SentimentAgrees(models.SentimentNeutral, "Terrible experience, awful."))
}
