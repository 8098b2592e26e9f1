// Package nhl_http talks to the NHL stats REST API. It serves the
// club directory and the special-teams summary report; game-by-game
// rate lines come from the SQL store, not from here.
package nhl_http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/teams"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		// The stats API is unauthenticated; stay well under its
		// tolerance.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nhl api fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("nhl api read: %w", err)
	}

	telemetry.Debugf("nhl_http: GET %s -> %d (%s)", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nhl api: status %d for %s", resp.StatusCode, path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("nhl api parse %s: %w", path, err)
	}
	return nil
}

type clubResponse struct {
	Data []struct {
		FullName string `json:"fullName"`
		TriCode  string `json:"triCode"`
	} `json:"data"`
}

// FetchClubs lists the league's clubs. Satisfies teams.ClubFetcher.
func (c *Client) FetchClubs(ctx context.Context) ([]teams.Club, error) {
	var resp clubResponse
	if err := c.get(ctx, "/en/team", nil, &resp); err != nil {
		return nil, err
	}

	clubs := make([]teams.Club, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.TriCode == "" {
			continue
		}
		clubs = append(clubs, teams.Club{FullName: d.FullName, TriCode: d.TriCode})
	}
	return clubs, nil
}
