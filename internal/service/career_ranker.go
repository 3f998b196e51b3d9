package service

import "sort"

const DefaultTopN = 5

// RankResults 按分数降序排序，同分按职业 id 升序，截取前 n 条。不修改入参
func RankResults(results []MatchResult, n int) []MatchResult {
	ranked := make([]MatchResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].CareerID < ranked[j].CareerID
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
