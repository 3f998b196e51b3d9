package service

import "testing"

func TestRankResultsTopFive(t *testing.T) {
	var results []MatchResult
	scores := []float64{10, 80, 40, 100, 0, 60, 80, 20}
	for i, s := range scores {
		results = append(results, MatchResult{CareerID: uint(i + 1), MatchScore: s})
	}

	ranked := RankResults(results, DefaultTopN)
	if len(ranked) != 5 {
		t.Fatalf("expected 5 results, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].MatchScore > ranked[i-1].MatchScore {
			t.Fatalf("scores not non-increasing at %d: %v", i, ranked)
		}
	}

	wantIDs := []uint{4, 2, 7, 6, 3}
	for i, id := range wantIDs {
		if ranked[i].CareerID != id {
			t.Fatalf("position %d: expected career %d, got %d", i, id, ranked[i].CareerID)
		}
	}

	// 入参不被修改
	if results[0].CareerID != 1 || results[3].CareerID != 4 {
		t.Fatalf("input slice was reordered")
	}
}

func TestRankResultsTieBreakByID(t *testing.T) {
	results := []MatchResult{
		{CareerID: 9, MatchScore: 50},
		{CareerID: 3, MatchScore: 50},
		{CareerID: 5, MatchScore: 50},
	}
	ranked := RankResults(results, 5)
	for i, id := range []uint{3, 5, 9} {
		if ranked[i].CareerID != id {
			t.Fatalf("expected ascending ids on ties, got %v", ranked)
		}
	}
}

func TestRankResultsShortInput(t *testing.T) {
	if got := RankResults(nil, 5); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	two := []MatchResult{{CareerID: 1, MatchScore: 1}, {CareerID: 2, MatchScore: 2}}
	if got := RankResults(two, 5); len(got) != 2 || got[0].CareerID != 2 {
		t.Fatalf("unexpected ranking %v", got)
	}
}
