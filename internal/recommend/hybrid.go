package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"reelrank/internal/globaltime"
)

const (
	maxSeeds           = 5
	combinedResultSize = 50
	positionDecay      = 0.5
	orderJitterSpread  = 0.05
)

// HybridRecommendations blends the single-seed pipeline across 2-5 seed
// movies, rewarding candidates that surface for more than one seed. A single
// seed short-circuits to the single-seed pipeline; no seeds yields an empty
// result.
func (s *Service) HybridRecommendations(ctx context.Context, seedIDs []int64) ([]Candidate, error) {
	if s == nil || s.catalog == nil {
		return nil, fmt.Errorf("recommend service is not initialized")
	}

	seeds := dedupeIDs(seedIDs, maxSeeds)
	switch len(seeds) {
	case 0:
		return []Candidate{}, nil
	case 1:
		return s.SimilarMovies(ctx, seeds[0], Preferences{})
	}

	lists := s.runSeedPipelines(ctx, seeds, func(int64) Weights { return s.weights })

	seedSet := make(map[int64]struct{}, len(seeds))
	for _, id := range seeds {
		seedSet[id] = struct{}{}
	}

	type hybridEntry struct {
		candidate   Candidate
		total       float64
		occurrences int
	}
	entries := make(map[int64]*hybridEntry)
	var order []int64

	for i, list := range lists {
		listLen := len(list)
		for position, candidate := range list {
			if _, isSeed := seedSet[candidate.Movie.ID]; isSeed {
				continue
			}
			// Earlier positions in a seed's list carry more weight.
			positionWeight := 1 - (float64(position)/float64(listLen))*positionDecay
			weighted := float64(candidate.FinalScore) * positionWeight

			if entry, ok := entries[candidate.Movie.ID]; ok {
				entry.total += weighted
				entry.occurrences++
				mergeReasons(&entry.candidate, candidate.MatchReasons)
				entry.candidate.SeedIDs = append(entry.candidate.SeedIDs, seeds[i])
				continue
			}
			fresh := candidate
			fresh.SeedIDs = []int64{seeds[i]}
			entries[candidate.Movie.ID] = &hybridEntry{
				candidate:   fresh,
				total:       weighted,
				occurrences: 1,
			}
			order = append(order, candidate.Movie.ID)
		}
	}

	seedCount := float64(len(seeds))
	merged := make([]Candidate, 0, len(order))
	for _, id := range order {
		entry := entries[id]
		average := entry.total / float64(entry.occurrences)
		score := math.Min(average*(1+float64(entry.occurrences)/seedCount), scoreCap)
		entry.candidate.Score = score
		entry.candidate.FinalScore = int(math.Round(score))
		merged = append(merged, entry.candidate)
	}

	s.sortWithJitter(merged)
	return truncate(merged, combinedResultSize), nil
}

// runSeedPipelines runs the single-seed pipeline concurrently for each seed.
// Pipelines share no mutable state: each writes into its own slot.
func (s *Service) runSeedPipelines(ctx context.Context, seeds []int64, weightsFor func(int64) Weights) [][]Candidate {
	lists := make([][]Candidate, len(seeds))
	var wg sync.WaitGroup
	for i, seedID := range seeds {
		wg.Add(1)
		go func(slot int, seedID int64) {
			defer wg.Done()
			lists[slot] = s.runPipeline(ctx, seedID, weightsFor(seedID), Preferences{})
		}(i, seedID)
	}
	wg.Wait()
	return lists
}

// sortWithJitter orders candidates by final score with a bounded ±5%
// multiplicative jitter, so near-ties do not always render in the same order.
// The jittered key is computed once per candidate to keep the sort itself
// consistent.
func (s *Service) sortWithJitter(candidates []Candidate) {
	keys := make(map[int64]float64, len(candidates))
	for _, candidate := range candidates {
		jitter := 1 + (s.rng.Float64()*2-1)*orderJitterSpread
		keys[candidate.Movie.ID] = float64(candidate.FinalScore) * jitter
	}

	nowYear := globaltime.UTC().Year()
	sort.SliceStable(candidates, func(i, j int) bool {
		left, right := keys[candidates[i].Movie.ID], keys[candidates[j].Movie.ID]
		if left != right {
			return left > right
		}
		return qualityRank(candidates[i].Movie, Preferences{}, nowYear) > qualityRank(candidates[j].Movie, Preferences{}, nowYear)
	})
}

func mergeReasons(candidate *Candidate, reasons []string) {
	for _, reason := range reasons {
		if !candidate.hasReason(reason) {
			candidate.MatchReasons = append(candidate.MatchReasons, reason)
		}
	}
}

func dedupeIDs(ids []int64, limit int) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func truncate(candidates []Candidate, n int) []Candidate {
	if len(candidates) <= n {
		return candidates
	}
	return candidates[:n]
}
