package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/cvgen/internal/config"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/types"
)

const postingHTML = `<html><head><meta property="og:title" content="Go Engineer"></head><body>
<div class="job-description">
<p>Full-time role. Required: go, kubernetes, terraform.</p>
<h2>Responsibilities</h2><ul><li>Build Go services</li></ul>
</div></body></html>`

func postingServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, cfg config.ServerConfig, deps Deps) *Server {
	t.Helper()
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}
	s, err := New(cfg, deps, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sampleCV() *types.CVData {
	return &types.CVData{
		PersonalInfo: types.PersonalInfo{
			Name:    types.Name{First: "Jane", Last: "Doe"},
			Contact: types.ContactInfo{Email: "jane@example.com"},
		},
		Experience: []types.Experience{{Employer: "Acme", Title: "Engineer", StartDate: "2020", EndDate: "2023"}},
		Skills:     []types.Skill{{Name: "Go"}},
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.Equal(t, "ok", resp["status"])
}

func TestListTemplates(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp TemplatesResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Templates, 6)
	assert.Equal(t, "academic", resp.Templates[0].ID)
	assert.Contains(t, resp.Sectors, "federal")
}

func TestRenderHTML(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	t.Run("cv data", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodPost, "/render/html", types.RenderRequest{Data: sampleCV()})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp RenderResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "basic", resp.Template)
		assert.Contains(t, resp.HTML, "<!DOCTYPE html>")
		assert.Contains(t, resp.HTML, "Jane Doe")
		assert.Contains(t, resp.HTML, "<title>Jane Doe</title>")
	})

	t.Run("sector selects template", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodPost, "/render/html", types.RenderRequest{Sector: "private", Data: sampleCV()})
		require.Equal(t, http.StatusOK, w.Code)

		var resp RenderResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "modern", resp.Template)
	})

	t.Run("markdown with options", func(t *testing.T) {
		req := types.RenderRequest{
			Markdown: "# Raw Name\n\n- item\n",
			Options:  &types.PDFOptions{PaperSize: "A4"},
		}
		w := do(t, s.Handler(), http.MethodPost, "/render/html", req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp RenderResponse
		decodeBody(t, w, &resp)
		assert.Contains(t, resp.HTML, "<h1")
		assert.Contains(t, resp.HTML, "Raw Name")
		assert.Contains(t, resp.HTML, "size: A4")
	})

	t.Run("raw html", func(t *testing.T) {
		body, _ := json.Marshal(types.RenderRequest{Markdown: "# Raw"})
		req := httptest.NewRequest(http.MethodPost, "/render/html", bytes.NewReader(body))
		req.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.True(t, strings.HasPrefix(w.Body.String(), "<!DOCTYPE html>"))
	})
}

func TestRenderHTML_Errors(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	invalid := sampleCV()
	invalid.Experience[0].Employer = ""

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"unknown template", types.RenderRequest{Template: "nonexistent-xyz", Markdown: "# X"}, http.StatusNotFound},
		{"no content", types.RenderRequest{Template: "basic"}, http.StatusBadRequest},
		{"schema violation", types.RenderRequest{Data: invalid}, http.StatusBadRequest},
		{"bad options", types.RenderRequest{Markdown: "# X", Options: &types.PDFOptions{Scale: 5}}, http.StatusBadRequest},
		{"font family markup", types.RenderRequest{Markdown: "# X", Options: &types.PDFOptions{FontFamily: "x</style>"}}, http.StatusBadRequest},
		{"invalid json", `{"markdown":`, http.StatusBadRequest},
		{"unknown field", `{"markdown":"# X","colour":"red"}`, http.StatusBadRequest},
		{"empty body", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.Handler(), http.MethodPost, "/render/html", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var resp map[string]string
			decodeBody(t, w, &resp)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestRequestTooLarge(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	body := `{"markdown":"` + strings.Repeat("a", maxBodyBytes+1) + `"}`
	w := do(t, s.Handler(), http.MethodPost, "/profiles/parse", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestATSAnalyze(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodPost, "/ats/analyze", types.ATSRequest{Content: ""})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ATSResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 89, resp.Analysis.Score)
	assert.Nil(t, resp.Job)
	assert.Nil(t, resp.Analysis.Keywords)
}

func TestATSAnalyze_WithJob(t *testing.T) {
	postings := postingServer(t)
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	content := "# Jane Doe\njane@example.com\n\n## Experience\n### Engineer at Acme\n2020 - 2023\n- Wrote Go services\n"
	w := do(t, s.Handler(), http.MethodPost, "/ats/analyze", types.ATSRequest{
		Content: content,
		JobURL:  postings.URL + "/jobs/1",
		Terms:   []string{"Go", "graphql"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ATSResponse
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.Job)
	assert.Equal(t, "Go Engineer", resp.Job.Title)
	require.NotNil(t, resp.Analysis.Keywords)
	assert.Contains(t, resp.Analysis.Keywords.Matched, "go")
	assert.Contains(t, resp.Analysis.Keywords.Missing, "terraform")
	assert.Contains(t, resp.Analysis.Keywords.Missing, "graphql")
}

func TestATSAnalyze_JobFetchFails(t *testing.T) {
	postings := postingServer(t)
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodPost, "/ats/analyze", types.ATSRequest{
		Content: "# Jane Doe",
		JobURL:  postings.URL + "/missing",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ATSResponse
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.Job)
	require.NotNil(t, resp.Job.FetchError)
	assert.Equal(t, types.FetchHTTPStatus, resp.Job.FetchError.Kind)
	assert.Condition(t, func() bool {
		for _, w := range resp.Analysis.Warnings {
			if strings.HasPrefix(w, "job posting could not be analyzed: http_status") {
				return true
			}
		}
		return false
	}, "warnings: %v", resp.Analysis.Warnings)
}

func TestJobsAnalyze(t *testing.T) {
	postings := postingServer(t)
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodPost, "/jobs/analyze", types.JobAnalyzeRequest{
		URLs:           []string{postings.URL + "/jobs/1", postings.URL + "/missing"},
		TimeoutSeconds: 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var batch jobs.Batch
	decodeBody(t, w, &batch)
	assert.NotEmpty(t, batch.ID)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, "Go Engineer", batch.Results[0].Title)
	assert.NotNil(t, batch.Results[1].FetchError)
	assert.Equal(t, 1, batch.Failed)
}

func TestJobsAnalyze_Validation(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	urls := make([]string, 26)
	for i := range urls {
		urls[i] = "https://example.com/jobs/" + string(rune('a'+i))
	}
	for _, req := range []types.JobAnalyzeRequest{
		{},
		{URLs: urls},
		{URLs: []string{""}},
		{URLs: []string{"https://example.com"}, TimeoutSeconds: 600},
	} {
		w := do(t, s.Handler(), http.MethodPost, "/jobs/analyze", req)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}
}

func TestParseProfile(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodPost, "/profiles/parse", types.ParseProfileRequest{
		Markdown: "# Jane Doe\n## Experience\n- Engineer at Acme (2020-2023)\n",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res parsing.ParseResult
	decodeBody(t, w, &res)
	assert.Equal(t, "Jane Doe", res.Data.PersonalInfo.Name.Full)
	require.Len(t, res.Data.Experience, 1)
	assert.Equal(t, "Acme", res.Data.Experience[0].Employer)

	w = do(t, s.Handler(), http.MethodPost, "/profiles/parse", types.ParseProfileRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfilesRoutes(t *testing.T) {
	svc := profiles.NewService(storage.NewMemory(), zap.NewNop())
	p, err := svc.Create(context.Background(), "jane", sampleCV(), "test")
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), p.ID, &types.CVData{PersonalInfo: types.PersonalInfo{Name: types.Name{Full: "Jane Q. Doe"}}}, "rename")
	require.NoError(t, err)

	s := newTestServer(t, config.ServerConfig{}, Deps{Profiles: svc})

	w := do(t, s.Handler(), http.MethodGet, "/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list ProfilesResponse
	decodeBody(t, w, &list)
	require.Len(t, list.Profiles, 1)
	assert.Equal(t, p.ID, list.Profiles[0].ID)

	w = do(t, s.Handler(), http.MethodGet, "/profiles/"+p.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got profiles.Profile
	decodeBody(t, w, &got)
	assert.Equal(t, "Jane Q. Doe", got.Data.PersonalInfo.Name.Full)

	w = do(t, s.Handler(), http.MethodGet, "/profiles/"+p.ID+"?version=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	assert.Equal(t, "Jane Doe", got.Data.PersonalInfo.Name.Full)

	w = do(t, s.Handler(), http.MethodGet, "/profiles/"+p.ID+"?version=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s.Handler(), http.MethodGet, "/profiles/not-a-profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfilesRoutes_NotRegisteredWithoutService(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})
	w := do(t, s.Handler(), http.MethodGet, "/profiles", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{JWTSecret: testSecret}, Deps{})
	token, err := s.jwtService.GenerateToken("tests", 0)
	require.NoError(t, err)

	w := do(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health stays public")

	w = do(t, s.Handler(), http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_InvalidJWTSecret(t *testing.T) {
	_, err := New(config.ServerConfig{JWTSecret: "short"}, Deps{}, nil)
	assert.Error(t, err)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{RateLimit: 1, Burst: 1}, Deps{})

	w := do(t, s.Handler(), http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, s.Handler(), http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var resp map[string]any
	decodeBody(t, w, &resp)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	w = do(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{AllowedOrigins: []string{"https://app.example.com"}}, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_OPTIONS(t *testing.T) {
	s := newTestServer(t, config.ServerConfig{}, Deps{})

	w := do(t, s.Handler(), http.MethodOptions, "/render/html", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(config.ServerConfig{AllowedOrigins: []string{"*"}}, Deps{}, zap.New(core))
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	do(t, s.Handler(), http.MethodGet, "/health", nil)
	do(t, s.Handler(), http.MethodGet, "/missing", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestMergeTerms(t *testing.T) {
	assert.Equal(t, []string{"go", "docker", "graphql"}, mergeTerms([]string{"go", "docker"}, []string{"Go", " ", "graphql"}))
}
