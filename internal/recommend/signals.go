package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	franchiseBaseScore = 85

	directorBaseScore = 65
	directorIncrement = 20

	castBaseScore     = 55
	castIncrement     = 15
	castTopActors     = 5
	castLeadOrderMax  = 5
	castRolesPerActor = 10

	keywordBaseScore       = 45
	keywordIncrement       = 8
	keywordMaxKeywords     = 10
	keywordMoviesPerLookup = 5

	genreBaseScore  = 40
	genreIncrement  = 5
	genreResultSize = 15

	recommendBaseScore = 50
	recommendIncrement = 10

	eraBaseScore    = 35
	eraIncrement    = 3
	eraYearSpan     = 5
	eraMinVoteCount = 100
	eraResultSize   = 10

	visualBaseScore  = 45
	visualIncrement  = 12
	visualResultSize = 10

	regionBaseScore  = 45
	regionIncrement  = 10
	regionResultSize = 10

	moodBaseScore  = 60
	moodIncrement  = 20
	moodResultSize = 15

	acclaimBaseScore    = 60
	acclaimIncrement    = 15
	acclaimMinVoteCount = 1000
	acclaimMinRating    = 7.5
	acclaimResultSize   = 10
)

// genericKeywords never feed the keyword signal; they match half the catalog.
var genericKeywords = map[string]struct{}{
	"based on novel": {},
	"violence":       {},
	"murder":         {},
}

// errMoodUnresolved reports that every keyword of the requested mood failed
// to resolve to a catalog id. Distinct from a lookup failure so callers can
// log it separately.
var errMoodUnresolved = errors.New("no mood keywords resolved")

type signalRequest struct {
	seed    *MovieDetail
	weights Weights
	prefs   Preferences
}

// signal is one independent similarity heuristic. Implementations are pure
// strategies: given the seed detail and run weights they produce candidate
// contributions, issuing further catalog lookups as needed.
type signal interface {
	name() string
	collect(ctx context.Context, req signalRequest) ([]Contribution, error)
}

func buildSignals(catalog Catalog) []signal {
	// Franchise stays first: it is the strongest signal and its candidates
	// should own the front of every reason list.
	return []signal{
		franchiseSignal{catalog: catalog},
		directorSignal{catalog: catalog},
		castSignal{catalog: catalog},
		keywordSignal{catalog: catalog},
		genreSignal{catalog: catalog},
		recommendSignal{},
		eraSignal{catalog: catalog},
		visualSignal{},
		regionSignal{catalog: catalog},
		moodSignal{catalog: catalog},
		acclaimSignal{catalog: catalog},
	}
}

type franchiseSignal struct {
	catalog Catalog
}

func (franchiseSignal) name() string { return "franchise" }

func (s franchiseSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	if req.seed.CollectionID == 0 {
		return nil, nil
	}

	movies, err := s.catalog.GetCollectionMovies(ctx, req.seed.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("collection %d: %w", req.seed.CollectionID, err)
	}

	contributions := make([]Contribution, 0, len(movies))
	for _, movie := range movies {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      franchiseBaseScore,
			Increment: 0,
			Reason:    "Same Film Series",
			Source:    SourceFranchise,
		})
	}
	return contributions, nil
}

type directorSignal struct {
	catalog Catalog
}

func (directorSignal) name() string { return "director" }

func (s directorSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	if len(req.seed.Directors) == 0 {
		return nil, nil
	}

	base := directorBaseScore * req.weights.Director
	increment := directorIncrement * req.weights.Director * req.weights.CombinedBonus

	var contributions []Contribution
	var lastErr error
	for _, director := range req.seed.Directors {
		credits, err := s.catalog.GetPersonCredits(ctx, director.ID)
		if err != nil {
			lastErr = fmt.Errorf("credits for director %d: %w", director.ID, err)
			continue
		}
		for _, movie := range credits.Directed {
			contributions = append(contributions, Contribution{
				Movie:     movie,
				Base:      base,
				Increment: increment,
				Reason:    "Same Director",
				Source:    SourceDirector,
			})
		}
	}
	if len(contributions) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return contributions, nil
}

type castSignal struct {
	catalog Catalog
}

func (castSignal) name() string { return "cast" }

func (s castSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	actors := req.seed.Cast
	if len(actors) > castTopActors {
		actors = actors[:castTopActors]
	}
	if len(actors) == 0 {
		return nil, nil
	}

	base := castBaseScore * req.weights.Cast
	increment := castIncrement * req.weights.Cast * req.weights.CombinedBonus

	perActor := make([][]Contribution, len(actors))
	var wg sync.WaitGroup
	for i, actor := range actors {
		wg.Add(1)
		go func(slot int, actor Person) {
			defer wg.Done()
			credits, err := s.catalog.GetPersonCredits(ctx, actor.ID)
			if err != nil {
				// One actor's lookup failing must not drop the rest.
				return
			}
			reason := fmt.Sprintf("Same Actor (%s)", actor.Name)
			taken := 0
			for _, credit := range credits.Acted {
				if credit.BillingOrder >= castLeadOrderMax {
					continue
				}
				perActor[slot] = append(perActor[slot], Contribution{
					Movie:     credit.Movie,
					Base:      base,
					Increment: increment,
					Reason:    reason,
					Source:    SourceCast,
				})
				taken++
				if taken >= castRolesPerActor {
					break
				}
			}
		}(i, actor)
	}
	wg.Wait()

	var contributions []Contribution
	for _, batch := range perActor {
		contributions = append(contributions, batch...)
	}
	return contributions, nil
}

type keywordSignal struct {
	catalog Catalog
}

func (keywordSignal) name() string { return "keyword" }

func (s keywordSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	keywords := make([]Keyword, 0, keywordMaxKeywords)
	for _, keyword := range req.seed.Keywords {
		if _, generic := genericKeywords[strings.ToLower(strings.TrimSpace(keyword.Name))]; generic {
			continue
		}
		keywords = append(keywords, keyword)
		if len(keywords) >= keywordMaxKeywords {
			break
		}
	}
	if len(keywords) == 0 {
		return nil, nil
	}

	var contributions []Contribution
	for _, keyword := range keywords {
		movies, err := s.catalog.GetKeywordMovies(ctx, keyword.ID)
		if err != nil {
			continue
		}
		for _, movie := range topByRating(movies, keywordMoviesPerLookup) {
			contributions = append(contributions, Contribution{
				Movie:     movie,
				Base:      keywordBaseScore,
				Increment: keywordIncrement,
				Reason:    "Similar Themes",
				Source:    SourceKeyword,
			})
		}
	}
	return contributions, nil
}

type genreSignal struct {
	catalog Catalog
}

func (genreSignal) name() string { return "genre" }

func (s genreSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	genreIDs := req.seed.genreIDs()
	if len(genreIDs) == 0 {
		return nil, nil
	}

	movies, err := s.catalog.DiscoverMovies(ctx, DiscoverFilter{
		GenreIDs: genreIDs,
		SortBy:   "popularity.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("discover by genre: %w", err)
	}

	base := genreBaseScore * req.weights.Genre
	increment := genreIncrement * req.weights.Genre
	contributions := make([]Contribution, 0, genreResultSize)
	for _, movie := range topN(movies, genreResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      base,
			Increment: increment,
			Reason:    "Genre Match",
			Source:    SourceGenre,
		})
	}
	return contributions, nil
}

// recommendSignal folds in the catalog's own recommendation and similar
// lists. The union is deduplicated by id so a movie appearing in both lists
// contributes exactly once.
type recommendSignal struct{}

func (recommendSignal) name() string { return "recommend" }

func (recommendSignal) collect(_ context.Context, req signalRequest) ([]Contribution, error) {
	seen := make(map[int64]struct{}, len(req.seed.Recommended)+len(req.seed.Similar))
	var contributions []Contribution
	for _, movie := range append(append([]MovieSummary{}, req.seed.Recommended...), req.seed.Similar...) {
		if _, dup := seen[movie.ID]; dup {
			continue
		}
		seen[movie.ID] = struct{}{}
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      recommendBaseScore,
			Increment: recommendIncrement,
			Reason:    "TMDB Recommended",
			Source:    SourceRecommend,
		})
	}
	return contributions, nil
}

type eraSignal struct {
	catalog Catalog
}

func (eraSignal) name() string { return "era" }

func (s eraSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	year := req.seed.ReleaseYear()
	if year == 0 {
		return nil, nil
	}

	movies, err := s.catalog.DiscoverMovies(ctx, DiscoverFilter{
		ReleaseDateFrom: fmt.Sprintf("%04d-01-01", year-eraYearSpan),
		ReleaseDateTo:   fmt.Sprintf("%04d-12-31", year+eraYearSpan),
		MinVoteCount:    eraMinVoteCount,
		SortBy:          "vote_average.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("discover by era: %w", err)
	}

	base := eraBaseScore * req.weights.Era
	increment := eraIncrement * req.weights.Era
	contributions := make([]Contribution, 0, eraResultSize)
	for _, movie := range topN(movies, eraResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      base,
			Increment: increment,
			Reason:    "Same Era",
			Source:    SourceEra,
		})
	}
	return contributions, nil
}

// visualSignal reuses the catalog's similar list as a visual-style proxy;
// the catalog has no true visual-similarity endpoint.
type visualSignal struct{}

func (visualSignal) name() string { return "visual" }

func (visualSignal) collect(_ context.Context, req signalRequest) ([]Contribution, error) {
	contributions := make([]Contribution, 0, visualResultSize)
	for _, movie := range topN(req.seed.Similar, visualResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      visualBaseScore,
			Increment: visualIncrement,
			Reason:    "Visual Style",
			Source:    SourceVisual,
		})
	}
	return contributions, nil
}

type regionSignal struct {
	catalog Catalog
}

func (regionSignal) name() string { return "region" }

func (s regionSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	language := strings.TrimSpace(req.seed.OriginalLanguage)
	country := strings.TrimSpace(req.seed.ProductionCountry)
	if language == "" && country == "" {
		return nil, nil
	}

	movies, err := s.catalog.DiscoverMovies(ctx, DiscoverFilter{
		OriginalLanguage: language,
		Region:           country,
		SortBy:           "popularity.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("discover by region: %w", err)
	}

	base := regionBaseScore * req.weights.Language
	increment := regionIncrement * req.weights.Language
	contributions := make([]Contribution, 0, regionResultSize)
	for _, movie := range topN(movies, regionResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      base,
			Increment: increment,
			Reason:    "Same Region/Language",
			Source:    SourceRegion,
		})
	}
	return contributions, nil
}

type moodSignal struct {
	catalog Catalog
}

func (moodSignal) name() string { return "mood" }

func (s moodSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	mood := req.prefs.Mood
	keywords := moodKeywords[mood]
	if len(keywords) == 0 {
		return nil, nil
	}

	resolved := make([]int64, len(keywords))
	var wg sync.WaitGroup
	for i, keyword := range keywords {
		wg.Add(1)
		go func(slot int, keyword string) {
			defer wg.Done()
			id, err := s.catalog.ResolveKeywordID(ctx, keyword)
			if err != nil || id == 0 {
				// Unresolvable keywords are dropped; the remaining ones
				// still carry the mood.
				return
			}
			resolved[slot] = id
		}(i, keyword)
	}
	wg.Wait()

	keywordIDs := make([]int64, 0, len(resolved))
	for _, id := range resolved {
		if id != 0 {
			keywordIDs = append(keywordIDs, id)
		}
	}
	if len(keywordIDs) == 0 {
		return nil, errMoodUnresolved
	}

	movies, err := s.catalog.DiscoverMovies(ctx, DiscoverFilter{
		KeywordIDs: keywordIDs,
		SortBy:     "popularity.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("discover by mood keywords: %w", err)
	}

	reason := fmt.Sprintf("Matches %s Mood", mood.Label())
	contributions := make([]Contribution, 0, moodResultSize)
	for _, movie := range topN(movies, moodResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      moodBaseScore,
			Increment: moodIncrement,
			Reason:    reason,
			Source:    SourceMood,
		})
	}
	return contributions, nil
}

type acclaimSignal struct {
	catalog Catalog
}

func (acclaimSignal) name() string { return "acclaimed" }

func (s acclaimSignal) collect(ctx context.Context, req signalRequest) ([]Contribution, error) {
	genreIDs := req.seed.genreIDs()
	if len(genreIDs) == 0 {
		return nil, nil
	}

	movies, err := s.catalog.DiscoverMovies(ctx, DiscoverFilter{
		GenreIDs:     genreIDs,
		MinVoteCount: acclaimMinVoteCount,
		MinRating:    acclaimMinRating,
		SortBy:       "vote_average.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("discover acclaimed: %w", err)
	}

	contributions := make([]Contribution, 0, acclaimResultSize)
	for _, movie := range topN(movies, acclaimResultSize) {
		contributions = append(contributions, Contribution{
			Movie:     movie,
			Base:      acclaimBaseScore,
			Increment: acclaimIncrement,
			Reason:    "Critically Acclaimed",
			Source:    SourceAcclaimed,
		})
	}
	return contributions, nil
}

func topN(movies []MovieSummary, n int) []MovieSummary {
	if len(movies) <= n {
		return movies
	}
	return movies[:n]
}

func topByRating(movies []MovieSummary, n int) []MovieSummary {
	ranked := append([]MovieSummary{}, movies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteAverage > ranked[j].VoteAverage
	})
	return topN(ranked, n)
}
