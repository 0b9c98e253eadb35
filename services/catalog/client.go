// Package catalog wraps the TMDB REST API. The persisted stores treat this
// package as a pure data source: it has no side effects on their state and
// they only consume models.CatalogItem values from it.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc/pool"

	"streamvault/models"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
	// Optimized image sizes instead of "original": posters render at card
	// width, backdrops at 1080p backgrounds.
	tmdbPosterSize   = "w500"
	tmdbBackdropSize = "w1280"
)

// Client is a rate-limited TMDB API client.
type Client struct {
	apiKey   string
	language string
	region   string
	httpc    *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewClient creates a catalog client. A nil httpc gets a 15s-timeout default.
func NewClient(apiKey, language, region string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	if language == "" {
		language = "en-US"
	}
	return &Client{
		apiKey:      strings.TrimSpace(apiKey),
		language:    language,
		region:      region,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond, // TMDB has generous rate limits
	}
}

func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return tmdbBaseURL + path + "?" + params.Encode()
}

// doGET performs a GET with rate limiting and exponential-backoff retries.
// Client errors other than 429 are not retried.
func (c *Client) doGET(ctx context.Context, endpoint string, v any) error {
	if c.apiKey == "" {
		return fmt.Errorf("catalog API key not configured")
	}

	return retry.Do(
		func() error {
			c.throttleMu.Lock()
			since := time.Since(c.lastRequest)
			if since < c.minInterval {
				time.Sleep(c.minInterval - since)
			}
			c.lastRequest = time.Now()
			c.throttleMu.Unlock()

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("catalog request failed: %s", resp.Status)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("catalog request failed: %s", resp.Status))
			}

			if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode catalog response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(300*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// Raw TMDB result shapes. The kind discriminant is stamped here, at
// ingestion, so nothing downstream has to distinguish movies from series by
// which fields happen to be set.

type movieResult struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int64 `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

type seriesResult struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int64 `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

type pagedResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

func imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + "/" + size + path
}

func (r movieResult) toCatalogItem() models.CatalogItem {
	return models.CatalogItem{
		ID:          r.ID,
		Kind:        models.MediaKindMovie,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterURL:   imageURL(r.PosterPath, tmdbPosterSize),
		BackdropURL: imageURL(r.BackdropPath, tmdbBackdropSize),
		ReleaseDate: r.ReleaseDate,
		Rating:      r.VoteAverage,
		Votes:       r.VoteCount,
		Popularity:  r.Popularity,
		GenreIDs:    r.GenreIDs,
		Language:    r.OriginalLanguage,
	}
}

func (r seriesResult) toCatalogItem() models.CatalogItem {
	return models.CatalogItem{
		ID:          r.ID,
		Kind:        models.MediaKindSeries,
		Title:       r.Name,
		Overview:    r.Overview,
		PosterURL:   imageURL(r.PosterPath, tmdbPosterSize),
		BackdropURL: imageURL(r.BackdropPath, tmdbBackdropSize),
		ReleaseDate: r.FirstAirDate,
		Rating:      r.VoteAverage,
		Votes:       r.VoteCount,
		Popularity:  r.Popularity,
		GenreIDs:    r.GenreIDs,
		Language:    r.OriginalLanguage,
	}
}

func (c *Client) listMovies(ctx context.Context, path string, params url.Values) ([]models.CatalogItem, error) {
	var resp pagedResponse[movieResult]
	if err := c.doGET(ctx, c.endpoint(path, params), &resp); err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, r.toCatalogItem())
	}
	return items, nil
}

func (c *Client) listSeries(ctx context.Context, path string, params url.Values) ([]models.CatalogItem, error) {
	var resp pagedResponse[seriesResult]
	if err := c.doGET(ctx, c.endpoint(path, params), &resp); err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, r.toCatalogItem())
	}
	return items, nil
}

func (c *Client) regionParams() url.Values {
	params := url.Values{}
	if c.region != "" {
		params.Set("region", c.region)
	}
	return params
}

// TrendingMovies returns this week's trending movies.
func (c *Client) TrendingMovies(ctx context.Context) ([]models.CatalogItem, error) {
	return c.listMovies(ctx, "/trending/movie/week", nil)
}

// PopularMovies returns popular movies for the configured region.
func (c *Client) PopularMovies(ctx context.Context, page int) ([]models.CatalogItem, error) {
	params := c.regionParams()
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listMovies(ctx, "/movie/popular", params)
}

// TopRatedMovies returns top rated movies for the configured region.
func (c *Client) TopRatedMovies(ctx context.Context, page int) ([]models.CatalogItem, error) {
	params := c.regionParams()
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listMovies(ctx, "/movie/top_rated", params)
}

// TrendingSeries returns this week's trending series.
func (c *Client) TrendingSeries(ctx context.Context) ([]models.CatalogItem, error) {
	return c.listSeries(ctx, "/trending/tv/week", nil)
}

// PopularSeries returns popular series.
func (c *Client) PopularSeries(ctx context.Context, page int) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listSeries(ctx, "/tv/popular", params)
}

// TopRatedSeries returns top rated series.
func (c *Client) TopRatedSeries(ctx context.Context, page int) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listSeries(ctx, "/tv/top_rated", params)
}

// SearchMovies searches movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listMovies(ctx, "/search/movie", params)
}

// SearchSeries searches series by title.
func (c *Client) SearchSeries(ctx context.Context, query string, page int) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprint(max(page, 1)))
	return c.listSeries(ctx, "/search/tv", params)
}

// ItemTrailers fetches the promotional videos attached to a catalog item.
func (c *Client) ItemTrailers(ctx context.Context, id int64, kind models.MediaKind) ([]models.Trailer, error) {
	path := fmt.Sprintf("/movie/%d/videos", id)
	if kind == models.MediaKindSeries {
		path = fmt.Sprintf("/tv/%d/videos", id)
	}

	var resp struct {
		Results []models.Trailer `json:"results"`
	}
	if err := c.doGET(ctx, c.endpoint(path, nil), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Row is a titled shelf of catalog items for the home screen.
type Row struct {
	Title string               `json:"title"`
	Items []models.CatalogItem `json:"items"`
}

// HomeRows fetches the browse shelves concurrently. A single failing shelf
// fails the whole call; the UI treats the home screen as one unit.
func (c *Client) HomeRows(ctx context.Context) ([]Row, error) {
	shelves := []struct {
		title string
		fetch func(context.Context) ([]models.CatalogItem, error)
	}{
		{"Trending Movies", c.TrendingMovies},
		{"Trending TV Shows", c.TrendingSeries},
		{"Popular Movies", func(ctx context.Context) ([]models.CatalogItem, error) { return c.PopularMovies(ctx, 1) }},
		{"Popular TV Shows", func(ctx context.Context) ([]models.CatalogItem, error) { return c.PopularSeries(ctx, 1) }},
		{"Top Rated Movies", func(ctx context.Context) ([]models.CatalogItem, error) { return c.TopRatedMovies(ctx, 1) }},
		{"Top Rated TV Shows", func(ctx context.Context) ([]models.CatalogItem, error) { return c.TopRatedSeries(ctx, 1) }},
	}

	rows := make([]Row, len(shelves))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, shelf := range shelves {
		p.Go(func(ctx context.Context) error {
			items, err := shelf.fetch(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", shelf.title, err)
			}
			rows[i] = Row{Title: shelf.title, Items: items}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
