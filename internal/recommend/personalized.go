package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
)

const (
	defaultHistoryRating = 5.0
	stackDamping         = 0.8
	historyPositionFloor = 0.5
)

type ratedSeed struct {
	id     int64
	weight float64
}

// PersonalizedRecommendations derives seeds from a rating-weighted watch
// history: the five highest-rated movies drive the single-seed pipeline with
// their content weights scaled by the normalized rating. Candidates the user
// has already watched are excluded.
func (s *Service) PersonalizedRecommendations(ctx context.Context, history []int64, ratings map[int64]float64) ([]Candidate, error) {
	if s == nil || s.catalog == nil {
		return nil, fmt.Errorf("recommend service is not initialized")
	}

	watched := dedupeIDs(history, len(history))
	if len(watched) == 0 {
		return []Candidate{}, nil
	}

	rated := make([]ratedSeed, 0, len(watched))
	for _, id := range watched {
		rating, ok := ratings[id]
		if !ok {
			rating = defaultHistoryRating
		}
		rating = math.Min(math.Max(rating, 0), 10)
		rated = append(rated, ratedSeed{id: id, weight: rating / 10})
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].weight > rated[j].weight
	})
	if len(rated) > maxSeeds {
		rated = rated[:maxSeeds]
	}

	seedWeights := make(map[int64]float64, len(rated))
	seeds := make([]int64, 0, len(rated))
	for _, seed := range rated {
		seeds = append(seeds, seed.id)
		seedWeights[seed.id] = seed.weight
	}

	lists := s.runSeedPipelines(ctx, seeds, func(seedID int64) Weights {
		return s.weights.scaleContent(seedWeights[seedID])
	})

	watchedSet := make(map[int64]struct{}, len(watched))
	for _, id := range watched {
		watchedSet[id] = struct{}{}
	}

	entries := make(map[int64]*Candidate)
	var order []int64

	for i, list := range lists {
		seedID := seeds[i]
		seedWeight := seedWeights[seedID]
		listLen := len(list)
		for position, candidate := range list {
			if _, seen := watchedSet[candidate.Movie.ID]; seen {
				continue
			}
			positionFactor := historyPositionFloor + historyPositionFloor*(1-float64(position)/float64(listLen))
			contribution := math.Min(float64(candidate.FinalScore)*seedWeight*positionFactor, scoreCap)

			if existing, ok := entries[candidate.Movie.ID]; ok {
				// Damped stacking: repeat sightings across seeds add a
				// reduced share rather than full weight.
				existing.Score += stackDamping * contribution
				mergeReasons(existing, candidate.MatchReasons)
				existing.SeedIDs = append(existing.SeedIDs, seedID)
				existing.Source = SourcePersonalized
				continue
			}
			fresh := candidate
			fresh.Score = contribution
			fresh.SeedIDs = []int64{seedID}
			entries[candidate.Movie.ID] = &fresh
			order = append(order, candidate.Movie.ID)
		}
	}

	merged := make([]Candidate, 0, len(order))
	for _, id := range order {
		entry := entries[id]
		entry.Score = math.Min(entry.Score, scoreCap)
		entry.FinalScore = int(math.Round(entry.Score))
		merged = append(merged, *entry)
	}

	s.sortWithJitter(merged)
	return truncate(merged, combinedResultSize), nil
}
