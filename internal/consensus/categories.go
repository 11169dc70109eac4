package consensus

import "github.com/feedsight/feedsight/internal/models"

// CategoryField describes the categorical dimension used for consensus math
// in one category: the field name and its allowed values in declared order.
// Declared order breaks exact share ties, first occurring wins.
type CategoryField struct {
	FieldName string
	Options   []string
}

var categoryFields = map[models.Category]CategoryField{
	models.CategoryBinaryProposal: {
		FieldName: "is_agreeing",
		Options:   []string{models.AgreeYes, models.AgreeNo, models.AgreeMaybe},
	},
	models.CategoryPrioritizationRanking: {
		FieldName: "priority_class",
		Options:   []string{models.PriorityMust, models.PriorityShould, models.PriorityCould, models.PriorityWont},
	},
	models.CategoryBrainstormingIdeation: {
		FieldName: "actionability",
		Options:   []string{models.ActionQuickWin, models.ActionNeedsResearch, models.ActionBigBet, models.ActionNotUseful},
	},
	models.CategoryFeedbackRetrospective: {
		FieldName: "impact_direction",
		Options:   []string{models.ImpactHelped, models.ImpactNeutral, models.ImpactHurt},
	},
	models.CategoryForecastingPlanning: {
		FieldName: "delivery_status",
		Options:   []string{models.DeliveryAhead, models.DeliveryOnTrack, models.DeliveryAtRisk, models.DeliveryBlocked},
	},
}

var favorableOptions = map[models.Category][]string{
	models.CategoryBinaryProposal:        {models.AgreeYes},
	models.CategoryPrioritizationRanking: {models.PriorityMust, models.PriorityShould},
	models.CategoryBrainstormingIdeation: {models.ActionQuickWin, models.ActionBigBet},
	models.CategoryFeedbackRetrospective: {models.ImpactHelped},
	models.CategoryForecastingPlanning:   {models.DeliveryAhead, models.DeliveryOnTrack},
}

// FieldForCategory returns the categorical field used for consensus math in
// the given category. ok is false for unknown categories.
func FieldForCategory(cat models.Category) (CategoryField, bool) {
	f, ok := categoryFields[cat]
	return f, ok
}

// IsFavorable reports whether an option counts as a positive outcome for its
// category, used when selecting agree bullets.
func IsFavorable(cat models.Category, option string) bool {
	for _, o := range favorableOptions[cat] {
		if o == option {
			return true
		}
	}
	return false
}

// ValidOption reports whether option belongs to the category's declared set.
func ValidOption(cat models.Category, option string) bool {
	f, ok := categoryFields[cat]
	if !ok {
		return false
	}
	for _, o := range f.Options {
		if o == option {
			return true
		}
	}
	return false
}
