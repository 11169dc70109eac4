package summarize

import (
	"fmt"
	"strings"

	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/models"
)

// FallbackSummary builds a templated summary straight from the aggregates
// when the summarization capability fails. Organizers always get something.
func FallbackSummary(result consensus.Result) models.Summary {
	var main strings.Builder
	fmt.Fprintf(&main, "Aggregated %d feedback items across %d themes.", result.ItemCount, len(result.Clusters))
	if len(result.Bullets.Agree) > 0 {
		fmt.Fprintf(&main, " Strongest agreement: %s.", result.Bullets.Agree[0].Label)
	}
	if len(result.Boards.Themes) > 0 {
		top := result.Boards.Themes[0]
		fmt.Fprintf(&main, " Most discussed theme: %s (consensus %d).", top.Label, top.Consensus)
	}

	conflicting := "No significant splits were detected."
	if len(result.Bullets.Disagree) > 0 {
		labels := make([]string, 0, len(result.Bullets.Disagree))
		for _, b := range result.Bullets.Disagree {
			labels = append(labels, b.Label)
		}
		conflicting = fmt.Sprintf("Opinions split on: %s.", strings.Join(labels, ", "))
	}

	points := make([]string, 0, 5)
	for _, e := range result.Boards.Evidence {
		points = append(points, e.Text)
		if len(points) == 5 {
			break
		}
	}

	return models.Summary{
		MainSummary:          main.String(),
		ConflictingStatement: conflicting,
		TopWeightedPoints:    points,
	}
}
