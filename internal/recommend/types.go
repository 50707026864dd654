package recommend

import (
	"strconv"
	"strings"
)

// MovieSummary is the immutable catalog snapshot of a movie. ID is the
// stable identity key used everywhere in the engine.
type MovieSummary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Overview     string  `json:"overview,omitempty"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	Tagline      string  `json:"tagline,omitempty"`
}

// ReleaseYear parses the leading year of the release date, 0 when unknown.
func (m MovieSummary) ReleaseYear() int {
	date := strings.TrimSpace(m.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// Person is a credited director or cast member.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Keyword is a catalog theme tag attached to a movie.
type Keyword struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genre is a catalog genre with its discovery id.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full seed record fetched once per pipeline run. It fans
// out into every signal.
type MovieDetail struct {
	MovieSummary

	Directors         []Person       `json:"directors"`
	Cast              []Person       `json:"cast"`
	Keywords          []Keyword      `json:"keywords"`
	Genres            []Genre        `json:"genres"`
	CollectionID      int64          `json:"collection_id,omitempty"`
	Recommended       []MovieSummary `json:"recommended,omitempty"`
	Similar           []MovieSummary `json:"similar,omitempty"`
	OriginalLanguage  string         `json:"original_language,omitempty"`
	ProductionCountry string         `json:"production_country,omitempty"`
}

func (d *MovieDetail) genreIDs() []int64 {
	if d == nil {
		return nil
	}
	ids := make([]int64, 0, len(d.Genres))
	for _, genre := range d.Genres {
		ids = append(ids, genre.ID)
	}
	return ids
}

// Source tags which signal created a candidate. It is set on first insertion
// and never overwritten.
type Source string

const (
	SourceFranchise    Source = "franchise"
	SourceDirector     Source = "director"
	SourceCast         Source = "cast"
	SourceKeyword      Source = "keyword"
	SourceGenre        Source = "genre"
	SourceRecommend    Source = "recommend"
	SourceEra          Source = "era"
	SourceVisual       Source = "visual"
	SourceRegion       Source = "region"
	SourceMood         Source = "mood"
	SourceAcclaimed    Source = "acclaimed"
	SourcePersonalized Source = "personalized"
)

// Candidate is the working aggregation record for one recommended movie.
// MatchReasons is an insertion-ordered set deduplicated by exact label.
type Candidate struct {
	Movie        MovieSummary `json:"movie"`
	Score        float64      `json:"-"`
	FinalScore   int          `json:"score"`
	MatchReasons []string     `json:"match_reasons"`
	Source       Source       `json:"source"`
	// SeedIDs lists the seeds that contributed this candidate in a
	// multi-seed run; empty for single-seed results.
	SeedIDs []int64 `json:"seed_ids,omitempty"`
}

func (c *Candidate) hasReason(label string) bool {
	for _, reason := range c.MatchReasons {
		if reason == label {
			return true
		}
	}
	return false
}

// Contribution is one signal's vote for a candidate. Base applies when the
// candidate is unseen, Increment when it already matched another label.
type Contribution struct {
	Movie     MovieSummary
	Base      float64
	Increment float64
	Reason    string
	Source    Source
}

// Preferences tune a single-seed run. Weight overrides replace the engine
// defaults when > 0.
type Preferences struct {
	PreferNewReleases  bool    `json:"prefer_new_releases,omitempty"`
	PreferSameLanguage bool    `json:"prefer_same_language,omitempty"`
	Mood               Mood    `json:"mood,omitempty"`
	WeightDirector     float64 `json:"weight_director,omitempty"`
	WeightGenre        float64 `json:"weight_genre,omitempty"`
	WeightCast         float64 `json:"weight_cast,omitempty"`
}
