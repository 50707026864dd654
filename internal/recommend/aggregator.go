package recommend

import (
	"math"
	"sort"

	"reelrank/internal/globaltime"
)

const (
	// scoreCap is the hard ceiling; no candidate is ever presented as a
	// perfect match.
	scoreCap = 95

	multiFactorStep  = 5
	smoothingScale   = 0.8
	smoothingSpread  = 5
	recentYearWindow = 2
	recencyBoost     = 1.15
)

// aggregator merges signal contributions keyed by candidate movie id. The
// source tag is first-writer-wins; reason labels accumulate as an ordered,
// deduplicated set; a duplicate label is a no-op.
type aggregator struct {
	seedID int64
	pool   map[int64]*Candidate
	order  []int64
}

func newAggregator(seedID int64) *aggregator {
	return &aggregator{
		seedID: seedID,
		pool:   make(map[int64]*Candidate),
	}
}

func (a *aggregator) add(contribution Contribution) {
	id := contribution.Movie.ID
	if id == 0 || id == a.seedID {
		return
	}

	if existing, ok := a.pool[id]; ok {
		if existing.hasReason(contribution.Reason) {
			return
		}
		existing.MatchReasons = append(existing.MatchReasons, contribution.Reason)
		existing.Score += contribution.Increment
		return
	}

	a.pool[id] = &Candidate{
		Movie:        contribution.Movie,
		Score:        contribution.Base,
		MatchReasons: []string{contribution.Reason},
		Source:       contribution.Source,
	}
	a.order = append(a.order, id)
}

func (a *aggregator) addAll(contributions []Contribution) {
	for _, contribution := range contributions {
		a.add(contribution)
	}
}

// finalize applies the multi-match bonus, caps the score, smooths it with a
// bounded random perturbation, and returns the ranked candidates. Callers
// must treat the ordering as approximately score-sorted: the smoothing step
// is intentionally non-deterministic.
func (a *aggregator) finalize(weights Weights, prefs Preferences, rng Rand) []Candidate {
	ranked := make([]Candidate, 0, len(a.pool))
	for _, id := range a.order {
		candidate := *a.pool[id]

		bonus := 0.0
		if len(candidate.MatchReasons) > 1 {
			bonus = float64(len(candidate.MatchReasons)-1) * multiFactorStep * weights.CombinedBonus
		}
		capped := math.Min(candidate.Score+bonus, scoreCap)
		candidate.FinalScore = int(math.Round(capped*smoothingScale + rng.Float64()*smoothingSpread))
		ranked = append(ranked, candidate)
	}

	nowYear := globaltime.UTC().Year()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return qualityRank(ranked[i].Movie, prefs, nowYear) > qualityRank(ranked[j].Movie, prefs, nowYear)
	})
	return ranked
}

// qualityRank is the quality-weighted popularity tie-break. The vote-count
// floor is 1 everywhere (log10 of anything below stays 0); when the caller
// prefers new releases, recent movies get a small multiplicative edge.
func qualityRank(movie MovieSummary, prefs Preferences, nowYear int) float64 {
	votes := movie.VoteCount
	if votes < 1 {
		votes = 1
	}
	popularity := movie.Popularity
	if popularity < 1 {
		popularity = 1
	}

	rank := movie.VoteAverage * math.Log10(float64(votes)) * popularity
	if prefs.PreferNewReleases {
		if year := movie.ReleaseYear(); year != 0 && nowYear-year <= recentYearWindow {
			rank *= recencyBoost
		}
	}
	return rank
}
