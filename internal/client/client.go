// Package client provides an HTTP client for the portfolio backend.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/portfolio/internal/comment"
	"github.com/evcraddock/portfolio/internal/dairy"
	"github.com/evcraddock/portfolio/internal/farm"
)

// Client is an HTTP client for the portfolio backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the server the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListComments fetches at most n comments, newest first.
func (c *Client) ListComments(ctx context.Context, n int) ([]*comment.Comment, error) {
	path := "/list-comments?numComments=" + strconv.Itoa(n)
	var comments []*comment.Comment
	if err := c.get(ctx, path, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = make([]*comment.Comment, 0)
	}
	return comments, nil
}

// DeleteComments removes every comment on the server and returns how many
// were removed.
func (c *Client) DeleteComments(ctx context.Context) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.post(ctx, "/delete-comments", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// AddComment submits a comment the way the page's form does.
func (c *Client) AddComment(ctx context.Context, authorName, commentText string) (*comment.Comment, error) {
	form := url.Values{
		"authorName":  {authorName},
		"commentText": {commentText},
	}
	var comm comment.Comment
	if err := c.post(ctx, "/data", form, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// MilkData returns the dairy consumption series.
func (c *Client) MilkData(ctx context.Context) (*dairy.Data, error) {
	var d dairy.Data
	if err := c.get(ctx, "/milk-data", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CattleFarms returns the farm locations.
func (c *Client) CattleFarms(ctx context.Context) ([]farm.Farm, error) {
	var farms []farm.Farm
	if err := c.get(ctx, "/cattle-farm-data", &farms); err != nil {
		return nil, err
	}
	return farms, nil
}

// RandomColor asks the server for a background color.
func (c *Client) RandomColor(ctx context.Context) (string, error) {
	var resp struct {
		Color string `json:"color"`
	}
	if err := c.get(ctx, "/random-color", &resp); err != nil {
		return "", err
	}
	return resp.Color, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with an optional form body and decodes the response.
func (c *Client) post(ctx context.Context, path string, form url.Values, result interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
