package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client wraps the go-github client with rate limiting.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub API client. An empty token makes unauthenticated
// requests; a non-empty baseURL targets a GitHub Enterprise server.
func NewClient(ctx context.Context, token, baseURL string, requestsPerSecond float64) (*Client, error) {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("github: base_url: %w", err)
		}
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(requestsPerSecond),
	}, nil
}

// GetTree fetches the whole tree of ref recursively in one call.
func (c *Client) GetTree(ctx context.Context, owner, repo, ref string) (*gh.Tree, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tree, resp, err := c.gh.Git.GetTree(ctx, owner, repo, ref, true)
	c.update(resp)
	if err != nil {
		return nil, c.wrapError(err, "get tree")
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("%w: %s/%s@%s", ErrTreeTruncated, owner, repo, ref)
	}
	return tree, nil
}

// GetBlob fetches a blob by SHA and returns its decoded content.
func (c *Client) GetBlob(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, owner, repo, sha)
	c.update(resp)
	if err != nil {
		return nil, c.wrapError(err, "get blob")
	}

	if blob.GetEncoding() == "base64" {
		data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.GetContent(), "\n", ""))
		if err != nil {
			return nil, fmt.Errorf("github: decode blob %s: %w", sha, err)
		}
		return data, nil
	}
	return []byte(blob.GetContent()), nil
}

func (c *Client) update(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.Update(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return c.rateLimiter.Exceeded()
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{StatusCode: ghErr.Response.StatusCode, Message: ghErr.Message}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
