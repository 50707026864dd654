package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelrank/internal/recommend"
)

// Client talks to the TMDB API and adapts its payloads into the engine's
// catalog contract.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ recommend.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetMovieDetail fetches the full seed record in a single request; credits,
// keywords and the recommendation/similar lists ride along via
// append_to_response.
func (c *Client) GetMovieDetail(ctx context.Context, id int64) (*recommend.MovieDetail, error) {
	if id <= 0 {
		return nil, errors.New("movie id must be positive")
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,keywords,recommendations,similar")

	var payload movieDetailPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie detail %d: %w", id, err)
	}
	return payload.toDetail(), nil
}

// GetCollectionMovies lists every movie that belongs to a collection.
func (c *Client) GetCollectionMovies(ctx context.Context, collectionID int64) ([]recommend.MovieSummary, error) {
	if collectionID <= 0 {
		return nil, errors.New("collection id must be positive")
	}

	var payload collectionPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/collection/%d", collectionID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb collection %d: %w", collectionID, err)
	}
	return toSummaries(payload.Parts), nil
}

// GetPersonCredits fetches a person's movie credits, split into directing and
// acting work. Acting credits come back sorted by billing order ascending.
func (c *Client) GetPersonCredits(ctx context.Context, personID int64) (*recommend.PersonCredits, error) {
	if personID <= 0 {
		return nil, errors.New("person id must be positive")
	}

	var payload personCreditsPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/person/%d/movie_credits", personID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb person credits %d: %w", personID, err)
	}
	return payload.toCredits(), nil
}

// GetKeywordMovies lists movies tagged with a keyword.
func (c *Client) GetKeywordMovies(ctx context.Context, keywordID int64) ([]recommend.MovieSummary, error) {
	if keywordID <= 0 {
		return nil, errors.New("keyword id must be positive")
	}

	var payload resultsPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/keyword/%d/movies", keywordID), nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb keyword movies %d: %w", keywordID, err)
	}
	return toSummaries(payload.Results), nil
}

// DiscoverMovies runs a filtered discovery query.
func (c *Client) DiscoverMovies(ctx context.Context, filter recommend.DiscoverFilter) ([]recommend.MovieSummary, error) {
	params := url.Values{}
	if len(filter.GenreIDs) > 0 {
		params.Set("with_genres", joinIDs(filter.GenreIDs, ","))
	}
	if len(filter.KeywordIDs) > 0 {
		// Pipe-separated keyword ids are OR-ed by the catalog.
		params.Set("with_keywords", joinIDs(filter.KeywordIDs, "|"))
	}
	if filter.ReleaseDateFrom != "" {
		params.Set("primary_release_date.gte", filter.ReleaseDateFrom)
	}
	if filter.ReleaseDateTo != "" {
		params.Set("primary_release_date.lte", filter.ReleaseDateTo)
	}
	if filter.OriginalLanguage != "" {
		params.Set("with_original_language", filter.OriginalLanguage)
	}
	if filter.Region != "" {
		params.Set("region", filter.Region)
	}
	if filter.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.FormatInt(filter.MinVoteCount, 10))
	}
	if filter.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)

	var payload resultsPayload
	if err := c.getJSON(ctx, "/discover/movie", params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb discover: %w", err)
	}
	return toSummaries(payload.Results), nil
}

// ResolveKeywordID maps a keyword string to its catalog id. It returns 0 with
// a nil error when the catalog knows no such keyword.
func (c *Client) ResolveKeywordID(ctx context.Context, text string) (int64, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return 0, nil
	}

	params := url.Values{}
	params.Set("query", query)

	var payload keywordSearchPayload
	if err := c.getJSON(ctx, "/search/keyword", params, &payload); err != nil {
		return 0, fmt.Errorf("tmdb keyword search %q: %w", query, err)
	}

	lowered := strings.ToLower(query)
	for _, result := range payload.Results {
		if strings.ToLower(result.Name) == lowered {
			return result.ID, nil
		}
	}
	if len(payload.Results) > 0 {
		return payload.Results[0].ID, nil
	}
	return 0, nil
}

// SearchMovies searches the catalog by title.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]recommend.MovieSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	params := url.Values{}
	params.Set("query", query)

	var payload resultsPayload
	if err := c.getJSON(ctx, "/search/movie", params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie search %q: %w", query, err)
	}
	return toSummaries(payload.Results), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

func joinIDs(ids []int64, separator string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, separator)
}
