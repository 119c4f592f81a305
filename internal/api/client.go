// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	cleanhttp "github.com/hashicorp/go-cleanhttp"

	"github.com/Lobstash/vercel-plugin/internal/config"
	"github.com/Lobstash/vercel-plugin/internal/version"
)

// Client issues authenticated requests against one API endpoint. It holds
// no state between calls; every invocation of the CLI builds exactly one.
type Client struct {
	baseURL *url.URL
	token   string
	team    string
	http    *http.Client
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Tests use this to
// install a recording transport; a nil client is ignored.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New builds a Client from the given configuration. An empty token is a
// configuration error; it is reported here, before any request exists.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", base, err)
	}

	c := &Client{
		baseURL: u,
		token:   cfg.Token,
		team:    cfg.Team,
		http:    cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL reports the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET for path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (bytes.Buffer, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST for path with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) (bytes.Buffer, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Patch issues a PATCH for path with a JSON-encoded body.
func (c *Client) Patch(ctx context.Context, path string, body any) (bytes.Buffer, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE for path.
func (c *Client) Delete(ctx context.Context, path string) (bytes.Buffer, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do builds and executes one request. The team scope, when configured, is
// applied as the teamId query parameter on every call. Non-2xx responses
// come back as *Error with the message the remote actually produced.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (bytes.Buffer, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	q := u.Query()
	for key, values := range query {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	if c.team != "" {
		q.Set("teamId", c.team)
	}
	u.RawQuery = q.Encode()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return bytes.Buffer{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "vercelctl/"+version.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return bytes.Buffer{}, newError(resp, doc.Bytes())
	}

	return doc, nil
}
