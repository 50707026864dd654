package recommend

import "context"

// ActedCredit is one acting credit with the actor's billing order in that
// movie. Credits arrive sorted by billing order ascending.
type ActedCredit struct {
	Movie        MovieSummary `json:"movie"`
	BillingOrder int          `json:"billing_order"`
}

// PersonCredits splits a person's filmography into directing and acting work.
type PersonCredits struct {
	Directed []MovieSummary `json:"directed"`
	Acted    []ActedCredit  `json:"acted"`
}

// DiscoverFilter narrows a catalog discovery query. Zero values mean
// "no constraint".
type DiscoverFilter struct {
	GenreIDs         []int64
	KeywordIDs       []int64
	ReleaseDateFrom  string
	ReleaseDateTo    string
	OriginalLanguage string
	Region           string
	MinVoteCount     int64
	MinRating        float64
	SortBy           string
}

// Catalog is the external movie-catalog collaborator. Every call is fallible;
// the engine treats any single failure as "that signal contributes nothing".
type Catalog interface {
	GetMovieDetail(ctx context.Context, id int64) (*MovieDetail, error)
	GetCollectionMovies(ctx context.Context, collectionID int64) ([]MovieSummary, error)
	GetPersonCredits(ctx context.Context, personID int64) (*PersonCredits, error)
	GetKeywordMovies(ctx context.Context, keywordID int64) ([]MovieSummary, error)
	DiscoverMovies(ctx context.Context, filter DiscoverFilter) ([]MovieSummary, error)
	// ResolveKeywordID maps a keyword string to its catalog id, returning 0
	// when nothing matches.
	ResolveKeywordID(ctx context.Context, text string) (int64, error)
	SearchMovies(ctx context.Context, query string) ([]MovieSummary, error)
}
