package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

// fakeCatalog serves canned responses keyed by id. Unset lookups return empty
// results; error maps force specific lookups to fail.
type fakeCatalog struct {
	details     map[int64]*MovieDetail
	collections map[int64][]MovieSummary
	credits     map[int64]*PersonCredits
	keywords    map[int64][]MovieSummary
	keywordIDs  map[string]int64
	discover    func(DiscoverFilter) []MovieSummary

	detailErr  map[int64]error
	creditsErr map[int64]error

	keywordLookups []int64
}

func (f *fakeCatalog) GetMovieDetail(_ context.Context, id int64) (*MovieDetail, error) {
	if err, ok := f.detailErr[id]; ok {
		return nil, err
	}
	detail, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("movie %d not found", id)
	}
	return detail, nil
}

func (f *fakeCatalog) GetCollectionMovies(_ context.Context, collectionID int64) ([]MovieSummary, error) {
	return f.collections[collectionID], nil
}

func (f *fakeCatalog) GetPersonCredits(_ context.Context, personID int64) (*PersonCredits, error) {
	if err, ok := f.creditsErr[personID]; ok {
		return nil, err
	}
	credits, ok := f.credits[personID]
	if !ok {
		return &PersonCredits{}, nil
	}
	return credits, nil
}

func (f *fakeCatalog) GetKeywordMovies(_ context.Context, keywordID int64) ([]MovieSummary, error) {
	f.keywordLookups = append(f.keywordLookups, keywordID)
	return f.keywords[keywordID], nil
}

func (f *fakeCatalog) DiscoverMovies(_ context.Context, filter DiscoverFilter) ([]MovieSummary, error) {
	if f.discover == nil {
		return nil, nil
	}
	return f.discover(filter), nil
}

func (f *fakeCatalog) ResolveKeywordID(_ context.Context, text string) (int64, error) {
	return f.keywordIDs[text], nil
}

func (f *fakeCatalog) SearchMovies(_ context.Context, _ string) ([]MovieSummary, error) {
	return nil, nil
}

// zeroRand pins both score smoothing and ordering jitter for deterministic
// assertions.
type zeroRand struct{}

func (zeroRand) Float64() float64 { return 0 }

func movie(id int64, title string) MovieSummary {
	return MovieSummary{ID: id, Title: title}
}

// franchiseCatalog builds the shared fixture: seed 1 belongs to collection
// 100 and has one director whose filmography overlaps the franchise.
func franchiseCatalog() *fakeCatalog {
	sequel := MovieSummary{ID: 10, Title: "Sequel", VoteAverage: 8, VoteCount: 1000, Popularity: 50}
	prequel := MovieSummary{ID: 11, Title: "Prequel", VoteAverage: 7, VoteCount: 500, Popularity: 20}
	cut := MovieSummary{ID: 12, Title: "Director Cut", VoteAverage: 6, VoteCount: 200, Popularity: 10}

	return &fakeCatalog{
		details: map[int64]*MovieDetail{
			1: {
				MovieSummary: movie(1, "Seed"),
				CollectionID: 100,
				Directors:    []Person{{ID: 500, Name: "Donna"}},
			},
		},
		collections: map[int64][]MovieSummary{
			100: {movie(1, "Seed"), sequel, prequel},
		},
		credits: map[int64]*PersonCredits{
			500: {Directed: []MovieSummary{sequel, cut}},
		},
	}
}

func newTestService(catalog Catalog) *Service {
	return NewService(catalog, zerolog.Nop(), WithRand(zeroRand{}))
}

func findCandidate(t *testing.T, candidates []Candidate, id int64) Candidate {
	t.Helper()
	for _, candidate := range candidates {
		if candidate.Movie.ID == id {
			return candidate
		}
	}
	t.Fatalf("candidate %d not found in %d results", id, len(candidates))
	return Candidate{}
}

func TestSimilarMoviesExcludesSeed(t *testing.T) {
	t.Parallel()

	service := newTestService(franchiseCatalog())

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("SimilarMovies returned error: %v", err)
	}
	if len(candidates) == 0 {
		t.Fatalf("expected candidates, got none")
	}
	for _, candidate := range candidates {
		if candidate.Movie.ID == 1 {
			t.Fatalf("seed movie leaked into results")
		}
	}
}

func TestSimilarMoviesScoresStayWithinBounds(t *testing.T) {
	t.Parallel()

	service := newTestService(franchiseCatalog())

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("SimilarMovies returned error: %v", err)
	}
	for _, candidate := range candidates {
		if candidate.FinalScore < 0 || candidate.FinalScore > 95 {
			t.Fatalf("score %d for movie %d out of bounds", candidate.FinalScore, candidate.Movie.ID)
		}
	}
}

func TestSimilarMoviesMultiFactorBonusAndSmoothing(t *testing.T) {
	t.Parallel()

	service := newTestService(franchiseCatalog())

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("SimilarMovies returned error: %v", err)
	}

	// Movie 10 matches franchise (85) and director (+20*1.2), exceeding the
	// 95 cap even before the multi-match bonus. With zero smoothing noise the
	// final score is round(95*0.8).
	sequel := findCandidate(t, candidates, 10)
	if sequel.FinalScore != 76 {
		t.Fatalf("unexpected sequel score: got %d want 76", sequel.FinalScore)
	}
	if len(sequel.MatchReasons) != 2 || sequel.MatchReasons[0] != "Same Film Series" || sequel.MatchReasons[1] != "Same Director" {
		t.Fatalf("unexpected sequel reasons: %v", sequel.MatchReasons)
	}
	if sequel.Source != SourceFranchise {
		t.Fatalf("expected first-writer franchise source, got %q", sequel.Source)
	}

	// Franchise only: round(85*0.8).
	prequel := findCandidate(t, candidates, 11)
	if prequel.FinalScore != 68 {
		t.Fatalf("unexpected prequel score: got %d want 68", prequel.FinalScore)
	}

	// Director only: round(65*0.8).
	cut := findCandidate(t, candidates, 12)
	if cut.FinalScore != 52 {
		t.Fatalf("unexpected director-cut score: got %d want 52", cut.FinalScore)
	}

	if candidates[0].Movie.ID != 10 {
		t.Fatalf("expected multi-factor candidate ranked first, got %d", candidates[0].Movie.ID)
	}
}

func TestSimilarMoviesSeedFetchFailureReturnsEmpty(t *testing.T) {
	t.Parallel()

	catalog := franchiseCatalog()
	catalog.detailErr = map[int64]error{1: fmt.Errorf("catalog down")}
	service := newTestService(catalog)

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("expected degenerate empty result, got error: %v", err)
	}
	if candidates == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestSimilarMoviesDirectorLookupFailureDegrades(t *testing.T) {
	t.Parallel()

	catalog := franchiseCatalog()
	catalog.creditsErr = map[int64]error{500: fmt.Errorf("person service down")}
	service := newTestService(catalog)

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("expected degraded run, got error: %v", err)
	}

	// Franchise results survive; the director-only candidate disappears.
	findCandidate(t, candidates, 10)
	findCandidate(t, candidates, 11)
	for _, candidate := range candidates {
		if candidate.Movie.ID == 12 {
			t.Fatalf("director-only candidate should be absent when the lookup fails")
		}
		if candidate.hasReason("Same Director") {
			t.Fatalf("no candidate should carry the director reason")
		}
	}
}

func TestSimilarMoviesTieBreakPrefersQuality(t *testing.T) {
	t.Parallel()

	catalog := franchiseCatalog()
	catalog.creditsErr = map[int64]error{500: fmt.Errorf("person service down")}
	service := newTestService(catalog)

	candidates, err := service.SimilarMovies(context.Background(), 1, Preferences{})
	if err != nil {
		t.Fatalf("SimilarMovies returned error: %v", err)
	}

	// Both remaining candidates are franchise-only ties at 68; the one with
	// the stronger vote profile wins.
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Movie.ID != 10 || candidates[1].Movie.ID != 11 {
		t.Fatalf("unexpected tie-break order: %d, %d", candidates[0].Movie.ID, candidates[1].Movie.ID)
	}
}
