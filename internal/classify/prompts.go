package classify

import (
	"fmt"
	"strings"

	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/models"
)

var categoryGuidance = map[models.Category]string{
	models.CategoryBinaryProposal:        "The feedback responds to a yes/no proposal. Judge whether the author agrees with it.",
	models.CategoryPrioritizationRanking: "The feedback ranks work items. Assign a MoSCoW priority class reflecting the author's view.",
	models.CategoryBrainstormingIdeation: "The feedback proposes or reacts to ideas. Judge how actionable the idea is.",
	models.CategoryFeedbackRetrospective: "The feedback reflects on a past event. Judge whether the aspect discussed helped or hurt the experience.",
	models.CategoryForecastingPlanning:   "The feedback assesses planned or in-flight work. Judge its delivery status.",
}

func classificationInstructions(cat models.Category, field consensus.CategoryField, topic string) string {
	var b strings.Builder
	b.WriteString("You classify one piece of attendee feedback into structured labels.\n\n")
	if topic != "" {
		fmt.Fprintf(&b, "Context: the feedback concerns %q.\n", topic)
	}
	if guidance, ok := categoryGuidance[cat]; ok {
		b.WriteString(guidance)
		b.WriteString("\n\n")
	}
	b.WriteString("Rules:\n")
	b.WriteString("- theme: 1-4 words naming the aspect discussed, lowercase.\n")
	b.WriteString("- sentiment: POSITIVE, NEUTRAL, or NEGATIVE.\n")
	b.WriteString("- emotion: the dominant emotion, or an empty string if none stands out.\n")
	b.WriteString("- is_critical_opinion: true when the author raises a substantive critique.\n")
	b.WriteString("- risk_flag: true for abusive, harmful, or personal-data content.\n")
	b.WriteString("- confidence: your confidence in this classification, 0 to 1.\n")
	b.WriteString("- relevancy: 0-100, how on-topic the feedback is.\n")
	b.WriteString("- is_against: YES if the author opposes the subject, NO if supportive, MIXED otherwise.\n")
	b.WriteString("- evidence_type: how the claim is substantiated (DATA, BENCHMARK, CITATION, EXPERT_OPINION, ANECDOTE, ASSUMPTION).\n")
	fmt.Fprintf(&b, "- %s: one of %s.\n", field.FieldName, strings.Join(field.Options, ", "))
	return b.String()
}
