// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT
// no-cloc

package command

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
	"github.com/urfave/cli/v3"

	"github.com/Lobstash/vercel-plugin/internal/api"
	"github.com/Lobstash/vercel-plugin/internal/config"
	"github.com/Lobstash/vercel-plugin/internal/meta"
)

// recordedRequest is one call the stub transport served.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

type stubResponse struct {
	status int
	body   string
}

// stubTransport serves canned responses keyed by "METHOD path" and records
// every request it sees. Unstubbed paths answer 404.
type stubTransport struct {
	responses map[string]stubResponse
	requests  []recordedRequest
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body := ""
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	s.requests = append(s.requests, recordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Body:   body,
	})

	resp, ok := s.responses[req.Method+" "+req.URL.Path]
	if !ok {
		resp = stubResponse{
			status: http.StatusNotFound,
			body:   `{"error":{"code":"not_found","message":"not stubbed"}}`,
		}
	}
	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newStub() *stubTransport {
	return &stubTransport{responses: map[string]stubResponse{}}
}

func (s *stubTransport) on(method, path, body string) *stubTransport {
	s.responses[method+" "+path] = stubResponse{status: http.StatusOK, body: body}
	return s
}

func (s *stubTransport) onStatus(method, path string, status int, body string) *stubTransport {
	s.responses[method+" "+path] = stubResponse{status: status, body: body}
	return s
}

// runCommandConfig executes one subcommand against the stub transport with
// the given configuration. Assertions inspect the recorded requests.
func runCommandConfig(t *testing.T, st *stubTransport, cfg config.Config, args ...string) error {
	t.Helper()

	m := meta.Meta{
		Args:       append([]string{"vercelctl"}, args...),
		Config:     cfg,
		HTTPClient: &http.Client{Transport: st},
	}
	app := InitApp(m)
	return app.Run(context.Background(), m.Args)
}

func runCommand(t *testing.T, st *stubTransport, args ...string) error {
	t.Helper()
	cfg := config.Config{Token: "tok_test", BaseURL: "https://api.vercel.test"}
	return runCommandConfig(t, st, cfg, args...)
}

func TestMissingArgument_NoRequestIsMade(t *testing.T) {
	st := newStub()
	err := runCommand(t, st, "project")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument <project>")
	assert.Empty(t, st.requests)

	var actionErr *ActionError
	assert.True(t, errors.As(err, &actionErr))
}

func TestMissingToken_FailsBeforeAnyRequest(t *testing.T) {
	st := newStub()
	err := runCommandConfig(t, st, config.Config{BaseURL: "https://api.vercel.test"}, "projects")

	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrMissingToken))
	assert.Empty(t, st.requests)
}

func TestRemoteErrorMessage_SurfacedVerbatim(t *testing.T) {
	st := newStub().onStatus("GET", "/v9/projects", http.StatusForbidden,
		`{"error":{"code":"forbidden","message":"Not authorized: token scope"}}`)

	err := runCommand(t, st, "projects")
	require.Error(t, err)
	assert.EqualError(t, err, "Not authorized: token scope")

	var actionErr *ActionError
	assert.True(t, errors.As(err, &actionErr))
}

func TestRemoteErrorWithoutBody_UsesStatusLine(t *testing.T) {
	st := newStub().onStatus("GET", "/v5/domains", http.StatusInternalServerError, "sad")

	err := runCommand(t, st, "domains")
	require.Error(t, err)
	assert.EqualError(t, err, "500 Internal Server Error")
}

func TestTeamScope_AppendsTeamID(t *testing.T) {
	st := newStub().on("GET", "/v2/teams", `{"teams":[]}`)
	cfg := config.Config{Token: "tok_test", Team: "team_9", BaseURL: "https://api.vercel.test"}

	require.NoError(t, runCommandConfig(t, st, cfg, "teams"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "team_9", st.requests[0].Query.Get("teamId"))
}

func TestDeployments_DefaultLimit(t *testing.T) {
	st := newStub().on("GET", "/v6/deployments", `{"deployments":[]}`)

	require.NoError(t, runCommand(t, st, "deployments"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "10", st.requests[0].Query.Get("limit"))
}

func TestDeployments_ProjectResolvesToID(t *testing.T) {
	st := newStub().
		on("GET", "/v9/projects/web", `{"id":"prj_123","name":"web"}`).
		on("GET", "/v6/deployments", `{"deployments":[]}`)

	require.NoError(t, runCommand(t, st, "deployments", "--project", "web"))
	require.Len(t, st.requests, 2)
	assert.Equal(t, "/v9/projects/web", st.requests[0].Path)
	assert.Equal(t, "prj_123", st.requests[1].Query.Get("projectId"))
}

func TestDeployments_FailedResolveStopsCommand(t *testing.T) {
	st := newStub().onStatus("GET", "/v9/projects/ghost", http.StatusNotFound,
		`{"error":{"code":"not_found","message":"Project not found"}}`)

	err := runCommand(t, st, "deployments", "--project", "ghost")
	require.Error(t, err)
	assert.EqualError(t, err, "Project not found")
	// The listing call must never have been attempted.
	require.Len(t, st.requests, 1)
	assert.Equal(t, "/v9/projects/ghost", st.requests[0].Path)
}

func TestDeployments_NativeFilterForwarded(t *testing.T) {
	st := newStub().on("GET", "/v6/deployments", `{"deployments":[]}`)

	require.NoError(t, runCommand(t, st, "deployments", "-f", "_target=production,state=READY"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "production", st.requests[0].Query.Get("target"))
	// Non-underscore filters stay client-side.
	assert.Empty(t, st.requests[0].Query.Get("state"))
}

func TestDomainAdd_ResolvesThenPosts(t *testing.T) {
	st := newStub().
		on("GET", "/v9/projects/shop", `{"id":"prj_9","name":"shop"}`).
		on("POST", "/v10/projects/prj_9/domains", `{"name":"shop.example.com","verified":false}`)

	require.NoError(t, runCommand(t, st, "domain-add", "shop", "shop.example.com"))
	require.Len(t, st.requests, 2)
	assert.Equal(t, "POST", st.requests[1].Method)
	assert.Equal(t, "/v10/projects/prj_9/domains", st.requests[1].Path)
	assert.Contains(t, st.requests[1].Body, `"name":"shop.example.com"`)
}

func TestDNSAdd_DefaultTTL(t *testing.T) {
	st := newStub().on("POST", "/v2/domains/example.com/records", `{"uid":"rec_1"}`)

	require.NoError(t, runCommand(t, st, "dns-add", "example.com", "www", "CNAME", "cname.vercel-dns.com"))
	require.Len(t, st.requests, 1)
	assert.Contains(t, st.requests[0].Body, `"ttl":3600`)
	assert.Contains(t, st.requests[0].Body, `"type":"CNAME"`)
}

func TestDNSAdd_RejectsNonPositiveTTL(t *testing.T) {
	st := newStub()
	err := runCommand(t, st, "dns-add", "example.com", "www", "A", "76.76.21.21", "--ttl", "0")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number of seconds")
	assert.Empty(t, st.requests)

	// Flag validation is a usage error, not an action error.
	var actionErr *ActionError
	assert.False(t, errors.As(err, &actionErr))
}

func TestDNSRm_UsesRecordOnlyPath(t *testing.T) {
	st := newStub().on("DELETE", "/v2/domains/records/rec_9", "")

	require.NoError(t, runCommand(t, st, "dns-rm", "rec_9"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "DELETE", st.requests[0].Method)
	assert.Equal(t, "/v2/domains/records/rec_9", st.requests[0].Path)
}

func TestProjectUpdate_RequiresASettableFlag(t *testing.T) {
	st := newStub()
	err := runCommand(t, st, "project-update", "web")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of")
	assert.Empty(t, st.requests)
}

func TestProjectUpdate_PatchCarriesOnlyGivenFlags(t *testing.T) {
	st := newStub().on("PATCH", "/v9/projects/web", `{"id":"prj_1","framework":"nextjs"}`)

	require.NoError(t, runCommand(t, st, "project-update", "web", "--framework", "nextjs"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "PATCH", st.requests[0].Method)
	assert.Contains(t, st.requests[0].Body, `"framework":"nextjs"`)
	assert.NotContains(t, st.requests[0].Body, `"name"`)
	assert.NotContains(t, st.requests[0].Body, `"buildCommand"`)
}

func TestSecretRename_PatchesByName(t *testing.T) {
	st := newStub().on("PATCH", "/v2/secrets/db-pass", `{"uid":"sec_1","name":"db-password"}`)

	require.NoError(t, runCommand(t, st, "secret-rename", "db-pass", "db-password"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "/v2/secrets/db-pass", st.requests[0].Path)
	assert.Contains(t, st.requests[0].Body, `"name":"db-password"`)
}

func TestCertAdd_CollectsCommonNames(t *testing.T) {
	st := newStub().on("POST", "/v7/certs", `{"uid":"cert_1"}`)

	require.NoError(t, runCommand(t, st, "cert-add", "example.com,www.example.com", "api.example.com"))
	require.Len(t, st.requests, 1)
	assert.Contains(t, st.requests[0].Body,
		`"cns":["example.com","www.example.com","api.example.com"]`)
}

func TestCertAdd_RequiresAtLeastOneName(t *testing.T) {
	st := newStub()
	err := runCommand(t, st, "cert-add")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required argument <cn>")
	assert.Empty(t, st.requests)
}

func TestLogs_DefaultLimit(t *testing.T) {
	st := newStub().on("GET", "/v2/deployments/dpl_1/events", `[]`)

	require.NoError(t, runCommand(t, st, "logs", "dpl_1"))
	require.Len(t, st.requests, 1)
	assert.Equal(t, "100", st.requests[0].Query.Get("limit"))
}

func TestGetMeta_MissingReturnsZeroValue(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": 42}}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"production", "preview"}, SplitList("production,preview"))
	assert.Equal(t, []string{"production", "preview"}, SplitList(" production , preview "))
	assert.Equal(t, []string{"one"}, SplitList("one,"))
	assert.Nil(t, SplitList(""))
}

func TestBuildAttrs_MergesDefaultsAndExtras(t *testing.T) {
	var captured int
	cmd := &cli.Command{
		Name:  "probe",
		Flags: NewGlobalFlags("probe", ""),
		Action: func(ctx context.Context, c *cli.Command) error {
			al := BuildAttrs(c, "id", "name")
			captured = len(al)
			return nil
		},
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"probe", "--attrs", "state:status"}))
	assert.Equal(t, 3, captured)
}
