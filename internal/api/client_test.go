// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT
// no-cloc

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lobstash/vercel-plugin/internal/config"
)

// stubTransport answers every request with a canned status/body and keeps
// what it saw. No sockets are involved.
type stubTransport struct {
	status   int
	body     string
	requests []*http.Request
	payloads []string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var payload string
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		payload = string(raw)
	}
	s.requests = append(s.requests, req)
	s.payloads = append(s.payloads, payload)

	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func stubClient(t *testing.T, stub *stubTransport, cfg config.Config) *Client {
	t.Helper()
	c, err := New(cfg, WithHTTPClient(&http.Client{Transport: stub}))
	require.NoError(t, err)
	return c
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(config.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	c, err := New(config.Config{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, c.BaseURL())
}

func TestGetSetsAuthorization(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := stubClient(t, stub, config.Config{Token: "tok_abc"})

	_, err := c.Get(context.Background(), "/v9/projects", nil)
	require.NoError(t, err)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/v9/projects", req.URL.Path)
	assert.Equal(t, "Bearer tok_abc", req.Header.Get("Authorization"))
}

func TestTeamScopeAppliedToEveryRequest(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := stubClient(t, stub, config.Config{Token: "tok", Team: "team_1"})

	_, err := c.Get(context.Background(), "/v5/domains", url.Values{"limit": {"5"}})
	require.NoError(t, err)
	_, err = c.Delete(context.Background(), "/v7/certs/cert_1")
	require.NoError(t, err)

	require.Len(t, stub.requests, 2)
	assert.Equal(t, "team_1", stub.requests[0].URL.Query().Get("teamId"))
	assert.Equal(t, "5", stub.requests[0].URL.Query().Get("limit"))
	assert.Equal(t, "team_1", stub.requests[1].URL.Query().Get("teamId"))
}

func TestNoTeamScopeWhenUnset(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := stubClient(t, stub, config.Config{Token: "tok"})

	_, err := c.Get(context.Background(), "/v2/teams", nil)
	require.NoError(t, err)
	assert.False(t, stub.requests[0].URL.Query().Has("teamId"))
}

func TestPostEncodesBody(t *testing.T) {
	stub := &stubTransport{body: `{"id":"prj_1"}`}
	c := stubClient(t, stub, config.Config{Token: "tok"})

	doc, err := c.Post(context.Background(), "/v9/projects", map[string]any{"name": "web"})
	require.NoError(t, err)

	require.Len(t, stub.requests, 1)
	assert.Equal(t, "application/json", stub.requests[0].Header.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"web"}`, stub.payloads[0])
	assert.JSONEq(t, `{"id":"prj_1"}`, doc.String())
}

func TestPatchEncodesBody(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := stubClient(t, stub, config.Config{Token: "tok"})

	_, err := c.Patch(context.Background(), "/v2/secrets/db-url", map[string]string{"name": "db-dsn"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, stub.requests[0].Method)
	assert.JSONEq(t, `{"name":"db-dsn"}`, stub.payloads[0])
}

func TestNonSuccessBecomesError(t *testing.T) {
	stub := &stubTransport{
		status: http.StatusNotFound,
		body:   `{"error":{"code":"not_found","message":"The project was not found"}}`,
	}
	c := stubClient(t, stub, config.Config{Token: "tok"})

	_, err := c.Get(context.Background(), "/v9/projects/ghost", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "The project was not found", err.Error())
}

func TestErrorFallsBackToStatusLine(t *testing.T) {
	stub := &stubTransport{status: http.StatusBadGateway, body: `<html>nope</html>`}
	c := stubClient(t, stub, config.Config{Token: "tok"})

	_, err := c.Get(context.Background(), "/v1/usage", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "502 Bad Gateway", err.Error())
}

func TestBaseURLPathPreserved(t *testing.T) {
	stub := &stubTransport{body: `{}`}
	c := stubClient(t, stub, config.Config{Token: "tok", BaseURL: "https://proxy.example.test/vercel/"})

	_, err := c.Get(context.Background(), "/v9/projects", nil)
	require.NoError(t, err)
	assert.Equal(t, "/vercel/v9/projects", stub.requests[0].URL.Path)
}
