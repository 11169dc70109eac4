package textprep

import (
	"math"
	"strings"

	"github.com/feedsight/feedsight/internal/models"
)

const (
	minTextLength      = 10
	minEntropy         = 2.0
	minWordRatio       = 0.35
	maxRepetitionRatio = 0.6
	maxFillerRatio     = 0.5
)

// Common short words used as a crude English-likeness signal. A real
// dictionary is overkill for catching keyboard mash.
var commonWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "it": {},
	"was": {}, "is": {}, "are": {}, "were": {}, "be": {}, "to": {}, "of": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "i": {}, "we": {},
	"you": {}, "they": {}, "this": {}, "that": {}, "not": {}, "very": {},
	"good": {}, "bad": {}, "great": {}, "too": {}, "so": {}, "really": {},
	"event": {}, "talk": {}, "session": {}, "venue": {}, "food": {},
	"speaker": {}, "audio": {}, "time": {}, "more": {}, "less": {},
	"would": {}, "could": {}, "should": {}, "had": {}, "have": {}, "has": {},
	"my": {}, "our": {}, "there": {}, "no": {}, "yes": {}, "like": {},
	"liked": {}, "loved": {}, "hated": {}, "think": {}, "felt": {}, "feel": {},
}

var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "like": {}, "basically": {}, "literally": {},
	"actually": {}, "stuff": {}, "things": {}, "whatever": {}, "idk": {},
	"lol": {}, "hmm": {}, "yeah": {}, "ok": {}, "okay": {},
}

// QualityCheck classifies raw feedback text as acceptable, flagged for
// review, or rejected outright. Rejected text never reaches classification.
func QualityCheck(text string) models.QualityDecision {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minTextLength {
		return models.QualityReject
	}

	entropy := charEntropy(trimmed)
	wordRatio := englishWordRatio(trimmed)
	repetition := repetitionRatio(trimmed)

	// Keyboard mash: low character variety or no recognizable words.
	if entropy < minEntropy || (wordRatio == 0 && len(strings.Fields(trimmed)) >= 3) {
		return models.QualityReject
	}
	if repetition > maxRepetitionRatio {
		return models.QualityReject
	}

	if wordRatio < minWordRatio || fillerRatio(trimmed) > maxFillerRatio {
		return models.QualityFlagged
	}
	return models.QualityAccept
}

// charEntropy is the Shannon entropy of the character distribution in bits.
// English prose lands around 4; "aaaaaaa" lands near 0.
func charEntropy(s string) float64 {
	counts := make(map[rune]int)
	total := 0
	for _, r := range strings.ToLower(s) {
		counts[r]++
		total++
	}
	if total == 0 {
		return 0
	}
	var entropy float64
	for _, n := range counts {
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func englishWordRatio(s string) float64 {
	words := tokenize(s)
	if len(words) == 0 {
		return 0
	}
	known := 0
	for _, w := range words {
		if _, ok := commonWords[w]; ok {
			known++
		}
	}
	return float64(known) / float64(len(words))
}

// repetitionRatio is the share of words beyond the first occurrence of the
// most repeated word: "great great great great" scores 0.75.
func repetitionRatio(s string) float64 {
	words := tokenize(s)
	if len(words) < 4 {
		return 0
	}
	counts := make(map[string]int)
	maxCount := 0
	for _, w := range words {
		counts[w]++
		if counts[w] > maxCount {
			maxCount = counts[w]
		}
	}
	return float64(maxCount-1) / float64(len(words))
}

func fillerRatio(s string) float64 {
	words := tokenize(s)
	if len(words) == 0 {
		return 0
	}
	filler := 0
	for _, w := range words {
		if _, ok := fillerWords[w]; ok {
			filler++
		}
	}
	return float64(filler) / float64(len(words))
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	})
}
