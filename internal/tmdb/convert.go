package tmdb

import (
	"sort"
	"strings"

	"reelrank/internal/langdetect"
	"reelrank/internal/recommend"
)

type movieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Overview     string  `json:"overview"`
	GenreIDs     []int64 `json:"genre_ids"`
	Runtime      int     `json:"runtime"`
	Tagline      string  `json:"tagline"`
}

func (m movieResult) toSummary() recommend.MovieSummary {
	return recommend.MovieSummary{
		ID:           m.ID,
		Title:        m.Title,
		ReleaseDate:  m.ReleaseDate,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		Popularity:   m.Popularity,
		Overview:     m.Overview,
		GenreIDs:     m.GenreIDs,
		Runtime:      m.Runtime,
		Tagline:      m.Tagline,
	}
}

func toSummaries(results []movieResult) []recommend.MovieSummary {
	summaries := make([]recommend.MovieSummary, 0, len(results))
	for _, result := range results {
		if result.ID == 0 {
			continue
		}
		summaries = append(summaries, result.toSummary())
	}
	return summaries
}

type resultsPayload struct {
	Results []movieResult `json:"results"`
}

type collectionPayload struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Parts []movieResult `json:"parts"`
}

type keywordSearchPayload struct {
	Results []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

type castCredit struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type crewCredit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type movieDetailPayload struct {
	movieResult

	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	OriginalLanguage    string `json:"original_language"`
	ProductionCountries []struct {
		CountryCode string `json:"iso_3166_1"`
		Name        string `json:"name"`
	} `json:"production_countries"`
	BelongsToCollection *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"belongs_to_collection"`
	Credits struct {
		Cast []castCredit `json:"cast"`
		Crew []crewCredit `json:"crew"`
	} `json:"credits"`
	Keywords struct {
		Keywords []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"keywords"`
	} `json:"keywords"`
	Recommendations resultsPayload `json:"recommendations"`
	Similar         resultsPayload `json:"similar"`
}

func (p movieDetailPayload) toDetail() *recommend.MovieDetail {
	detail := &recommend.MovieDetail{
		MovieSummary: p.movieResult.toSummary(),
	}

	for _, genre := range p.Genres {
		detail.Genres = append(detail.Genres, recommend.Genre{ID: genre.ID, Name: genre.Name})
		detail.GenreIDs = append(detail.GenreIDs, genre.ID)
	}

	for _, crew := range p.Credits.Crew {
		if crew.Job == "Director" {
			detail.Directors = append(detail.Directors, recommend.Person{ID: crew.ID, Name: crew.Name})
		}
	}
	for _, cast := range p.Credits.Cast {
		detail.Cast = append(detail.Cast, recommend.Person{ID: cast.ID, Name: cast.Name})
	}
	for _, keyword := range p.Keywords.Keywords {
		detail.Keywords = append(detail.Keywords, recommend.Keyword{ID: keyword.ID, Name: keyword.Name})
	}

	if p.BelongsToCollection != nil {
		detail.CollectionID = p.BelongsToCollection.ID
	}
	detail.Recommended = toSummaries(p.Recommendations.Results)
	detail.Similar = toSummaries(p.Similar.Results)

	detail.OriginalLanguage = strings.TrimSpace(p.OriginalLanguage)
	if detail.OriginalLanguage == "" {
		// Some catalog records lack the language tag; guess it from the
		// overview so the region/language signal still has something.
		detail.OriginalLanguage = langdetect.DetectISO6391(detail.Overview)
	}
	if len(p.ProductionCountries) > 0 {
		detail.ProductionCountry = strings.TrimSpace(p.ProductionCountries[0].CountryCode)
	}

	return detail
}

type personCreditsPayload struct {
	Cast []struct {
		movieResult
		Order int `json:"order"`
	} `json:"cast"`
	Crew []struct {
		movieResult
		Job string `json:"job"`
	} `json:"crew"`
}

func (p personCreditsPayload) toCredits() *recommend.PersonCredits {
	credits := &recommend.PersonCredits{}
	for _, crew := range p.Crew {
		if crew.Job == "Director" && crew.ID != 0 {
			credits.Directed = append(credits.Directed, crew.toSummary())
		}
	}
	acted := make([]recommend.ActedCredit, 0, len(p.Cast))
	for _, cast := range p.Cast {
		if cast.ID == 0 {
			continue
		}
		acted = append(acted, recommend.ActedCredit{
			Movie:        cast.toSummary(),
			BillingOrder: cast.Order,
		})
	}
	// Billing order ascending puts lead roles first.
	sort.SliceStable(acted, func(i, j int) bool {
		return acted[i].BillingOrder < acted[j].BillingOrder
	})
	credits.Acted = acted
	return credits
}
