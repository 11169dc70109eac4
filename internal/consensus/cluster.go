package consensus

import "sort"

type themeGroup struct {
	theme       string
	totalWeight float64
	count       int
	items       []WeightedItem
}

// ClusterThemes merges near-duplicate theme strings into clusters with a
// greedy single pass. Heaviest themes seed clusters first; every later theme
// either joins its best-matching cluster or starts a new one. Deterministic
// for a given input order.
func ClusterThemes(items []WeightedItem, threshold float64, topK int) []ThemeCluster {
	if len(items) == 0 {
		return nil
	}

	byTheme := make(map[string]*themeGroup)
	order := make([]string, 0)
	for _, it := range items {
		g, ok := byTheme[it.Theme]
		if !ok {
			g = &themeGroup{theme: it.Theme}
			byTheme[it.Theme] = g
			order = append(order, it.Theme)
		}
		g.totalWeight += it.Weight
		g.count++
		g.items = append(g.items, it)
	}

	groups := make([]*themeGroup, 0, len(order))
	for _, theme := range order {
		groups = append(groups, byTheme[theme])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].totalWeight != groups[j].totalWeight {
			return groups[i].totalWeight > groups[j].totalWeight
		}
		return groups[i].theme < groups[j].theme
	})

	type protoCluster struct {
		representative string
		groups         []*themeGroup
	}
	var protos []*protoCluster
	for _, g := range groups {
		bestIdx := -1
		bestScore := 0.0
		for i, pc := range protos {
			score := Similarity(g.theme, pc.representative)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx >= 0 && bestScore >= threshold {
			protos[bestIdx].groups = append(protos[bestIdx].groups, g)
		} else {
			protos = append(protos, &protoCluster{representative: g.theme, groups: []*themeGroup{g}})
		}
	}

	clusters := make([]ThemeCluster, 0, len(protos))
	for id, pc := range protos {
		c := ThemeCluster{ClusterID: id, Label: clusterLabel(pc.groups)}
		for _, g := range pc.groups {
			c.Items = append(c.Items, g.items...)
		}
		clusters = append(clusters, c)
	}

	if topK > 0 && len(clusters) > topK {
		sort.SliceStable(clusters, func(i, j int) bool {
			return clusters[i].TotalWeight() > clusters[j].TotalWeight()
		})
		clusters = clusters[:topK]
	}
	return clusters
}

// clusterLabel picks the cluster's representative theme by weighted vote:
// highest summed weight, then higher occurrence count, then longer string.
func clusterLabel(groups []*themeGroup) string {
	best := groups[0]
	for _, g := range groups[1:] {
		switch {
		case g.totalWeight > best.totalWeight:
			best = g
		case g.totalWeight == best.totalWeight && g.count > best.count:
			best = g
		case g.totalWeight == best.totalWeight && g.count == best.count && len(g.theme) > len(best.theme):
			best = g
		}
	}
	return best.theme
}
