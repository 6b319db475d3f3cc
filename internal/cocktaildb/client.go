// Package cocktaildb is a minimal client for the TheCocktailDB search endpoint.
package cocktaildb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cocktailgrip/internal/domain"
)

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("network response was not ok (%s)", e.Status)
}

// searchResponse mirrors the API envelope. Drinks is null when nothing matched.
type searchResponse struct {
	Drinks []domain.Cocktail `json:"drinks"`
}

// Client issues search requests. It performs exactly one request per call;
// there is no retry, backoff or pagination.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for baseURL (e.g. config.DefaultAPIBaseURL).
// A zero timeout leaves the transport defaults in charge.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "cocktaildb").Logger(),
	}
}

// SearchURL builds the request URL for query. The query is passed as is;
// only the escaping required to form a valid URL is applied.
func (c *Client) SearchURL(query string) string {
	return c.baseURL + "/search.php?s=" + url.QueryEscape(query)
}

// Search returns the drinks whose name matches query, in API order.
// An API "no matches" answer yields an empty slice and no error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Cocktail, error) {
	endpoint := c.SearchURL(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("search response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}

	if body.Drinks == nil {
		return []domain.Cocktail{}, nil
	}
	return body.Drinks, nil
}
