// Package api provides a minimal client for the tournament analytics backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the root endpoint of a locally running backend.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

// ErrMatchNotFound is returned when the backend answers 404 for a match.
var ErrMatchNotFound = errors.New("match not found")

// Client is a minimal backend client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend rooted at baseURL.
// A zero timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the root endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// get performs a GET request against the backend and JSON-decodes the
// response body into out.
func (c *Client) get(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, ErrMatchNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// GetMatches returns the metadata of every match the backend knows about.
func (c *Client) GetMatches() ([]MatchInfo, error) {
	var out []MatchInfo
	if err := c.get("/matches", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMatchDetails returns one match including its flat duel records.
func (c *Client) GetMatchDetails(matchID string) (*MatchDetails, error) {
	if matchID == "" {
		return nil, fmt.Errorf("get match details: empty match id")
	}
	var d MatchDetails
	if err := c.get("/match_details/"+url.PathEscape(matchID), &d); err != nil {
		return nil, err
	}
	if d.MatchID == "" {
		d.MatchID = matchID
	}
	return &d, nil
}
