package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsight/feedsight/internal/models"
)

func weightedItem(id, theme string, weight float64) WeightedItem {
	return WeightedItem{
		ClassifiedItem: models.ClassifiedItem{ID: id, Theme: theme, Text: "text for " + id},
		Weight:         weight,
	}
}

func TestClusterThemesMergesNearDuplicates(t *testing.T) {
	items := []WeightedItem{
		weightedItem("1", "audio issues", 1.5),
		weightedItem("2", "audio problems", 1.2),
		weightedItem("3", "catering quality", 1.0),
	}
	clusters := ClusterThemes(items, 0.35, 0)
	require.Len(t, clusters, 2)

	var audio *ThemeCluster
	for i := range clusters {
		if clusters[i].Label == "audio issues" {
			audio = &clusters[i]
		}
	}
	require.NotNil(t, audio, "heaviest theme should name the merged cluster")
	assert.Len(t, audio.Items, 2)
}

func TestClusterThemesDeterministic(t *testing.T) {
	items := []WeightedItem{
		weightedItem("1", "wifi speed", 0.8),
		weightedItem("2", "audio issues", 1.5),
		weightedItem("3", "audio problems", 1.2),
		weightedItem("4", "wifi too slow", 0.9),
		weightedItem("5", "catering", 1.1),
	}
	first := ClusterThemes(items, 0.35, 0)
	second := ClusterThemes(items, 0.35, 0)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].ClusterID, second[i].ClusterID)
		require.Equal(t, len(first[i].Items), len(second[i].Items))
		for j := range first[i].Items {
			assert.Equal(t, first[i].Items[j].ID, second[i].Items[j].ID)
		}
	}
}

func TestClusterLabelWeightedVote(t *testing.T) {
	// "audio problems" carries more total weight than "audio issues", so it
	// wins the label vote even though "audio issues" was seen first.
	items := []WeightedItem{
		weightedItem("1", "audio issues", 1.0),
		weightedItem("2", "audio problems", 1.4),
		weightedItem("3", "audio problems", 0.8),
	}
	clusters := ClusterThemes(items, 0.35, 0)
	require.Len(t, clusters, 1)
	assert.Equal(t, "audio problems", clusters[0].Label)
	assert.Len(t, clusters[0].Items, 3)
}

func TestClusterLabelTieBreaks(t *testing.T) {
	// Equal weight, equal count: longer string wins.
	items := []WeightedItem{
		weightedItem("1", "audio", 1.0),
		weightedItem("2", "audio gear", 1.0),
	}
	clusters := ClusterThemes(items, 0.35, 0)
	require.Len(t, clusters, 1)
	assert.Equal(t, "audio gear", clusters[0].Label)
}

func TestClusterTopK(t *testing.T) {
	items := []WeightedItem{
		weightedItem("1", "audio issues", 2.0),
		weightedItem("2", "catering quality", 1.5),
		weightedItem("3", "parking situation", 0.5),
	}
	clusters := ClusterThemes(items, 0.35, 2)
	require.Len(t, clusters, 2)
	labels := []string{clusters[0].Label, clusters[1].Label}
	assert.Contains(t, labels, "audio issues")
	assert.Contains(t, labels, "catering quality")
}

func TestClusterThemesEmptyInput(t *testing.T) {
	assert.Nil(t, ClusterThemes(nil, 0.35, 0))
}
