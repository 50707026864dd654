package tmdb

import (
	"encoding/json"
	"testing"
)

func TestMovieDetailPayloadToDetail(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": 27205,
		"title": "Inception",
		"release_date": "2010-07-15",
		"vote_average": 8.4,
		"vote_count": 36000,
		"popularity": 90.5,
		"original_language": "en",
		"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
		"production_countries": [{"iso_3166_1": "US", "name": "United States of America"}, {"iso_3166_1": "GB", "name": "United Kingdom"}],
		"belongs_to_collection": {"id": 100, "name": "Dream Collection"},
		"credits": {
			"cast": [{"id": 6193, "name": "Leonardo DiCaprio", "order": 0}],
			"crew": [
				{"id": 525, "name": "Christopher Nolan", "job": "Director"},
				{"id": 947, "name": "Hans Zimmer", "job": "Original Music Composer"}
			]
		},
		"keywords": {"keywords": [{"id": 321, "name": "dream"}]},
		"recommendations": {"results": [{"id": 155, "title": "The Dark Knight"}]},
		"similar": {"results": [{"id": 155, "title": "The Dark Knight"}, {"id": 0, "title": "Broken"}]}
	}`

	var payload movieDetailPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	detail := payload.toDetail()
	if detail.ID != 27205 {
		t.Fatalf("unexpected id: %d", detail.ID)
	}
	if detail.CollectionID != 100 {
		t.Fatalf("unexpected collection id: %d", detail.CollectionID)
	}
	if len(detail.Directors) != 1 || detail.Directors[0].Name != "Christopher Nolan" {
		t.Fatalf("unexpected directors: %v", detail.Directors)
	}
	if len(detail.Genres) != 2 || len(detail.GenreIDs) != 2 || detail.GenreIDs[0] != 28 {
		t.Fatalf("unexpected genres: %v %v", detail.Genres, detail.GenreIDs)
	}
	if detail.OriginalLanguage != "en" {
		t.Fatalf("unexpected language: %q", detail.OriginalLanguage)
	}
	if detail.ProductionCountry != "US" {
		t.Fatalf("expected first production country, got %q", detail.ProductionCountry)
	}
	if len(detail.Recommended) != 1 {
		t.Fatalf("unexpected recommended count: %d", len(detail.Recommended))
	}
	if len(detail.Similar) != 1 {
		t.Fatalf("zero-id similar entries must be dropped, got %d", len(detail.Similar))
	}
	if detail.ReleaseYear() != 2010 {
		t.Fatalf("unexpected release year: %d", detail.ReleaseYear())
	}
}

func TestPersonCreditsPayloadSortsByBilling(t *testing.T) {
	t.Parallel()

	raw := `{
		"cast": [
			{"id": 3, "title": "Late Credit", "order": 7},
			{"id": 1, "title": "Lead Role", "order": 0},
			{"id": 0, "title": "Broken", "order": 1},
			{"id": 2, "title": "Supporting Role", "order": 2}
		],
		"crew": [
			{"id": 4, "title": "Directed One", "job": "Director"},
			{"id": 5, "title": "Produced One", "job": "Producer"}
		]
	}`

	var payload personCreditsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	credits := payload.toCredits()
	if len(credits.Directed) != 1 || credits.Directed[0].ID != 4 {
		t.Fatalf("unexpected directed credits: %v", credits.Directed)
	}
	if len(credits.Acted) != 3 {
		t.Fatalf("expected 3 acted credits, got %d", len(credits.Acted))
	}
	if credits.Acted[0].Movie.ID != 1 || credits.Acted[0].BillingOrder != 0 {
		t.Fatalf("lead role must come first: %+v", credits.Acted[0])
	}
	if credits.Acted[2].BillingOrder != 7 {
		t.Fatalf("deep billing must come last: %+v", credits.Acted[2])
	}
}

func TestJoinIDs(t *testing.T) {
	t.Parallel()

	if got := joinIDs([]int64{28, 878}, ","); got != "28,878" {
		t.Fatalf("unexpected joined ids: %q", got)
	}
	if got := joinIDs(nil, "|"); got != "" {
		t.Fatalf("expected empty string for no ids, got %q", got)
	}
}
