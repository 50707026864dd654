package recommend

import "testing"

func contribution(id int64, base, increment float64, reason string, source Source) Contribution {
	return Contribution{
		Movie:     MovieSummary{ID: id, Title: "Movie"},
		Base:      base,
		Increment: increment,
		Reason:    reason,
		Source:    source,
	}
}

func TestAggregatorMergesByLabel(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(10, 85, 0, "Same Film Series", SourceFranchise))
	agg.add(contribution(10, 65, 24, "Same Director", SourceDirector))

	candidate := agg.pool[10]
	if candidate == nil {
		t.Fatalf("candidate 10 missing")
	}
	if candidate.Score != 109 {
		t.Fatalf("unexpected merged score: got %v want 109", candidate.Score)
	}
	if candidate.Source != SourceFranchise {
		t.Fatalf("source must stay with the first writer, got %q", candidate.Source)
	}
	if len(candidate.MatchReasons) != 2 {
		t.Fatalf("expected 2 reasons, got %v", candidate.MatchReasons)
	}
}

func TestAggregatorDuplicateLabelIsNoOp(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(10, 55, 18, "Same Actor (Maya)", SourceCast))
	agg.add(contribution(10, 55, 18, "Same Actor (Maya)", SourceCast))

	candidate := agg.pool[10]
	if candidate.Score != 55 {
		t.Fatalf("duplicate label must not change the score: got %v want 55", candidate.Score)
	}
	if len(candidate.MatchReasons) != 1 {
		t.Fatalf("duplicate label must not repeat: %v", candidate.MatchReasons)
	}
}

func TestAggregatorSkipsSeedAndZeroIDs(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(1, 85, 0, "Same Film Series", SourceFranchise))
	agg.add(contribution(0, 85, 0, "Same Film Series", SourceFranchise))

	if len(agg.pool) != 0 {
		t.Fatalf("expected empty pool, got %d entries", len(agg.pool))
	}
}

func TestFinalizeAppliesBonusCapAndSmoothing(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(10, 60, 0, "Genre Match", SourceGenre))
	agg.add(contribution(10, 0, 10, "Same Era", SourceEra))

	ranked := agg.finalize(DefaultWeights(), Preferences{}, zeroRand{})
	if len(ranked) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(ranked))
	}

	// 60 + 10 + bonus (2-1)*5*1.2 = 76; smoothed round(76*0.8).
	if ranked[0].FinalScore != 61 {
		t.Fatalf("unexpected final score: got %d want 61", ranked[0].FinalScore)
	}
}

func TestFinalizeCapsAtNinetyFive(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(10, 200, 0, "Same Film Series", SourceFranchise))

	ranked := agg.finalize(DefaultWeights(), Preferences{}, zeroRand{})
	if ranked[0].FinalScore != 76 {
		t.Fatalf("expected capped-then-smoothed score 76, got %d", ranked[0].FinalScore)
	}
}

func TestFinalizeSmoothingStaysBounded(t *testing.T) {
	t.Parallel()

	agg := newAggregator(1)
	agg.add(contribution(10, 80, 0, "Same Film Series", SourceFranchise))

	// With the default randomness the smoothed score lands inside
	// [round(64), round(69)] for a pre-smoothing score of 80.
	for i := 0; i < 50; i++ {
		ranked := agg.finalize(DefaultWeights(), Preferences{}, defaultRand{})
		got := ranked[0].FinalScore
		if got < 64 || got > 69 {
			t.Fatalf("smoothed score %d outside [64, 69]", got)
		}
	}
}

func TestQualityRankRecencyBoost(t *testing.T) {
	t.Parallel()

	recent := MovieSummary{ReleaseDate: "2026-03-01", VoteAverage: 7, VoteCount: 100, Popularity: 10}

	plain := qualityRank(recent, Preferences{}, 2026)
	boosted := qualityRank(recent, Preferences{PreferNewReleases: true}, 2026)
	if boosted <= plain {
		t.Fatalf("expected recency boost: plain %v boosted %v", plain, boosted)
	}

	old := MovieSummary{ReleaseDate: "2010-03-01", VoteAverage: 7, VoteCount: 100, Popularity: 10}
	if got := qualityRank(old, Preferences{PreferNewReleases: true}, 2026); got != qualityRank(old, Preferences{}, 2026) {
		t.Fatalf("old release must not be boosted")
	}
}

func TestQualityRankFloorsVotesAndPopularity(t *testing.T) {
	t.Parallel()

	unknown := MovieSummary{VoteAverage: 7, VoteCount: 0, Popularity: 0}
	if got := qualityRank(unknown, Preferences{}, 2026); got != 0 {
		t.Fatalf("log10(1) floor should zero the rank, got %v", got)
	}
}
