package consensus

import "sort"

// BuildBoards derives the theme leaderboard, global evidence board, and the
// sentiment/emotion tables from scored panels.
func BuildBoards(panels []SignalPanel, cfg Config) Boards {
	return Boards{
		Themes:         themeLeaderboard(panels, cfg.ThemeBoardTopK),
		Evidence:       evidenceBoard(panels, cfg.EvidenceBoardCap),
		SentimentTable: sentimentTable(panels),
		EmotionTables:  emotionTables(panels),
	}
}

func themeLeaderboard(panels []SignalPanel, topK int) []ThemeRow {
	rows := make([]ThemeRow, 0, len(panels))
	for _, p := range panels {
		rows = append(rows, ThemeRow{
			Label:         p.Label,
			TotalWeight:   p.TotalWeight,
			Consensus:     p.Consensus,
			DominantShare: p.OptionShares[p.DominantOption],
			ItemCount:     p.ItemCount,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalWeight != rows[j].TotalWeight {
			return rows[i].TotalWeight > rows[j].TotalWeight
		}
		return rows[i].Consensus > rows[j].Consensus
	})
	if topK > 0 && len(rows) > topK {
		rows = rows[:topK]
	}
	return rows
}

func evidenceBoard(panels []SignalPanel, limit int) []EvidenceEntry {
	var entries []EvidenceEntry
	for _, p := range panels {
		entries = append(entries, p.TopEvidence...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Weight > entries[j].Weight
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// sentimentTable bands each cluster's polarity into a one-hot sentiment row,
// one row per theme, mirroring the emotion tables.
func sentimentTable(panels []SignalPanel) map[string]map[string]float64 {
	table := make(map[string]map[string]float64, len(panels))
	for _, p := range panels {
		band := "NEUTRAL"
		switch {
		case p.Polarity <= -0.25:
			band = "NEGATIVE"
		case p.Polarity >= 0.25:
			band = "POSITIVE"
		}
		table[p.Label] = map[string]float64{band: 1.0}
	}
	return table
}

func emotionTables(panels []SignalPanel) map[string]map[string]float64 {
	tables := make(map[string]map[string]float64, len(panels))
	for _, p := range panels {
		if len(p.EmotionDistribution) == 0 {
			continue
		}
		dist := make(map[string]float64, len(p.EmotionDistribution))
		var total float64
		for _, share := range p.EmotionDistribution {
			total += share
		}
		for emotion, share := range p.EmotionDistribution {
			dist[emotion] = share / total
		}
		tables[p.Label] = dist
	}
	return tables
}
