// Package wikipedia supplies random pages for room starts and goals.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/judgegodwins/wikirace/game"
)

const randomSummaryPath = "/api/rest_v1/page/random/summary"

type summaryResponse struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Client talks to the Wikipedia REST API of one language edition.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RandomPage fetches the summary of a random article.
func (c *Client) RandomPage(ctx context.Context) (game.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+randomSummaryPath, nil)
	if err != nil {
		return game.Page{}, fmt.Errorf("build random page request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return game.Page{}, fmt.Errorf("fetch random page: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return game.Page{}, fmt.Errorf("fetch random page: unexpected status %d", res.StatusCode)
	}

	var summary summaryResponse
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		return game.Page{}, fmt.Errorf("decode random page: %w", err)
	}
	if summary.Title == "" {
		return game.Page{}, fmt.Errorf("random page without title")
	}

	return game.Page{Title: summary.Title, Description: summary.Extract}, nil
}
