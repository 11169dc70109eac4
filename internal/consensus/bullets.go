package consensus

import (
	"fmt"
	"sort"

	"github.com/feedsight/feedsight/internal/models"
)

// BuildBullets selects the three executive-summary lists from scored panels
// and dissent records.
func BuildBullets(panels []SignalPanel, dissent []DissentRecord, cat models.Category, cfg Config) Bullets {
	byCluster := make(map[int]DissentRecord, len(dissent))
	for _, d := range dissent {
		byCluster[d.ClusterID] = d
	}
	return Bullets{
		Agree:    agreeBullets(panels, cat, cfg),
		Disagree: disagreeBullets(panels, byCluster, cfg),
		Next:     nextBullets(panels, cfg),
	}
}

func agreeBullets(panels []SignalPanel, cat models.Category, cfg Config) []Bullet {
	var selected []SignalPanel
	for _, p := range panels {
		if p.Consensus >= cfg.AgreeConsensus && IsFavorable(cat, p.DominantOption) {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Consensus != selected[j].Consensus {
			return selected[i].Consensus > selected[j].Consensus
		}
		return selected[i].TotalWeight > selected[j].TotalWeight
	})
	if len(selected) > cfg.AgreeCap {
		selected = selected[:cfg.AgreeCap]
	}

	bullets := make([]Bullet, 0, len(selected))
	for _, p := range selected {
		b := bulletFromPanel(p)
		b.Text = fmt.Sprintf("%s: %s (%.0f%% share, consensus %d, polarity %+.2f, confidence %.2f)",
			p.Label, p.DominantOption, b.DominantShare*100, p.Consensus, p.Polarity, p.AvgConfidence)
		bullets = append(bullets, b)
	}
	return bullets
}

func disagreeBullets(panels []SignalPanel, dissent map[int]DissentRecord, cfg Config) []Bullet {
	var selected []SignalPanel
	for _, p := range panels {
		if d, ok := dissent[p.ClusterID]; ok && d.Dissent {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Consensus != selected[j].Consensus {
			return selected[i].Consensus < selected[j].Consensus
		}
		return selected[i].TotalWeight > selected[j].TotalWeight
	})
	if len(selected) > cfg.DisagreeCap {
		selected = selected[:cfg.DisagreeCap]
	}

	bullets := make([]Bullet, 0, len(selected))
	for _, p := range selected {
		b := bulletFromPanel(p)
		reasons := dissent[p.ClusterID].Reasons
		if len(reasons) > 3 {
			reasons = reasons[:3]
		}
		b.Reasons = reasons
		b.Text = fmt.Sprintf("%s: split on %s (%.0f%% share, consensus %d)",
			p.Label, p.DominantOption, b.DominantShare*100, p.Consensus)
		bullets = append(bullets, b)
	}
	return bullets
}

func nextBullets(panels []SignalPanel, cfg Config) []Bullet {
	var selected []SignalPanel
	for _, p := range panels {
		nearMiss := p.Consensus >= cfg.NextConsensusFloor && p.Consensus < cfg.AgreeConsensus
		shaky := p.HasConfidence && p.AvgConfidence < cfg.LowConfidence
		if nearMiss || shaky {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].AvgConfidence != selected[j].AvgConfidence {
			return selected[i].AvgConfidence < selected[j].AvgConfidence
		}
		return selected[i].Consensus < selected[j].Consensus
	})
	if len(selected) > cfg.NextCap {
		selected = selected[:cfg.NextCap]
	}

	bullets := make([]Bullet, 0, len(selected))
	for _, p := range selected {
		b := bulletFromPanel(p)
		b.Action = nextAction(p, cfg)
		b.Text = fmt.Sprintf("%s: %s (consensus %d, confidence %.2f)",
			p.Label, b.Action, p.Consensus, p.AvgConfidence)
		bullets = append(bullets, b)
	}
	return bullets
}

// nextAction picks the wording for a next-decision bullet: weakly-evidenced
// or low-confidence clusters need clarification first, the rest just need a
// call made.
func nextAction(p SignalPanel, cfg Config) string {
	weak := 0
	top := p.TopEvidence
	if len(top) > 3 {
		top = top[:3]
	}
	for _, e := range top {
		if e.EvidenceType == models.EvidenceAssumption || e.EvidenceType == models.EvidenceAnecdote {
			weak++
		}
	}
	if weak >= 2 || (p.HasConfidence && p.AvgConfidence < cfg.LowConfidence) {
		return "clarify before deciding"
	}
	return "finalize decision"
}

func bulletFromPanel(p SignalPanel) Bullet {
	return Bullet{
		Label:          p.Label,
		DominantOption: p.DominantOption,
		DominantShare:  p.OptionShares[p.DominantOption],
		Consensus:      p.Consensus,
		Polarity:       p.Polarity,
		AvgConfidence:  p.AvgConfidence,
	}
}
