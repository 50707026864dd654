package recommend

import (
	"context"
	"testing"
)

// personalizedCatalog: the user watched 1, 2 and 3. Seeds 1 and 3 share
// candidate 10; movie 2's catalog entry recommends a watched movie.
func personalizedCatalog() *fakeCatalog {
	catalog := franchiseCatalog()
	catalog.details[2] = &MovieDetail{
		MovieSummary: movie(2, "Watched Too"),
		Recommended:  []MovieSummary{movie(3, "Already Seen"), movie(30, "Fresh Pick")},
	}
	catalog.details[3] = &MovieDetail{
		MovieSummary: movie(3, "Third Watch"),
		CollectionID: 200,
	}
	catalog.collections[200] = []MovieSummary{
		movie(3, "Third Watch"),
		{ID: 10, Title: "Sequel", VoteAverage: 8, VoteCount: 1000, Popularity: 50},
	}
	return catalog
}

func TestPersonalizedEmptyHistoryReturnsEmpty(t *testing.T) {
	t.Parallel()

	service := newTestService(personalizedCatalog())

	candidates, err := service.PersonalizedRecommendations(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected empty result, got %d", len(candidates))
	}
}

func TestPersonalizedExcludesWatchedMovies(t *testing.T) {
	t.Parallel()

	service := newTestService(personalizedCatalog())

	candidates, err := service.PersonalizedRecommendations(context.Background(), []int64{1, 2, 3}, map[int64]float64{1: 9})
	if err != nil {
		t.Fatalf("PersonalizedRecommendations returned error: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatalf("expected candidates")
	}
	watched := map[int64]struct{}{1: {}, 2: {}, 3: {}}
	for _, candidate := range candidates {
		if _, seen := watched[candidate.Movie.ID]; seen {
			t.Fatalf("watched movie %d leaked into results", candidate.Movie.ID)
		}
		if candidate.FinalScore < 0 || candidate.FinalScore > 95 {
			t.Fatalf("score %d out of bounds", candidate.FinalScore)
		}
	}
}

func TestPersonalizedCrossSeedCandidateIsTaggedPersonalized(t *testing.T) {
	t.Parallel()

	service := newTestService(personalizedCatalog())

	candidates, err := service.PersonalizedRecommendations(context.Background(), []int64{1, 3}, map[int64]float64{1: 10, 3: 8})
	if err != nil {
		t.Fatalf("PersonalizedRecommendations returned error: %v", err)
	}

	overlap := findCandidate(t, candidates, 10)
	if overlap.Source != SourcePersonalized {
		t.Fatalf("expected personalized source on cross-seed candidate, got %q", overlap.Source)
	}
	if len(overlap.SeedIDs) != 2 {
		t.Fatalf("expected two contributing seeds, got %v", overlap.SeedIDs)
	}
}

func TestPersonalizedRatingWeightsSeedInfluence(t *testing.T) {
	t.Parallel()

	service := newTestService(personalizedCatalog())

	// Seed 1 is loved, seed 2 was disliked. Seed 1's single-source candidate
	// must outrank seed 2's.
	candidates, err := service.PersonalizedRecommendations(context.Background(), []int64{1, 2}, map[int64]float64{1: 10, 2: 2})
	if err != nil {
		t.Fatalf("PersonalizedRecommendations returned error: %v", err)
	}

	fromLoved := findCandidate(t, candidates, 11)
	fromDisliked := findCandidate(t, candidates, 30)
	if fromLoved.FinalScore <= fromDisliked.FinalScore {
		t.Fatalf("loved seed candidate %d should outrank disliked seed candidate %d",
			fromLoved.FinalScore, fromDisliked.FinalScore)
	}
}

func TestPersonalizedUsesTopFiveRatedSeeds(t *testing.T) {
	t.Parallel()

	catalog := personalizedCatalog()
	// Six watched movies; the lowest rated one has a distinctive candidate
	// that must not appear.
	catalog.details[4] = &MovieDetail{MovieSummary: movie(4, "W4")}
	catalog.details[5] = &MovieDetail{MovieSummary: movie(5, "W5")}
	catalog.details[6] = &MovieDetail{
		MovieSummary: movie(6, "Least Liked"),
		Recommended:  []MovieSummary{movie(60, "Distinctive")},
	}
	service := newTestService(catalog)

	history := []int64{1, 2, 3, 4, 5, 6}
	ratings := map[int64]float64{1: 10, 2: 9, 3: 8, 4: 7, 5: 6, 6: 1}

	candidates, err := service.PersonalizedRecommendations(context.Background(), history, ratings)
	if err != nil {
		t.Fatalf("PersonalizedRecommendations returned error: %v", err)
	}
	for _, candidate := range candidates {
		if candidate.Movie.ID == 60 {
			t.Fatalf("candidate from the sixth-ranked seed must be dropped")
		}
	}
}
