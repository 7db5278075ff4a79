package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/cvgen/internal/ats"
	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/schemas"
	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
)

// TemplatesResponse represents the response for /templates
type TemplatesResponse struct {
	Templates []templates.Metadata `json:"templates"`
	Sectors   []string             `json:"sectors"`
}

// RenderResponse represents the response for /render/html
type RenderResponse struct {
	Template string `json:"template"`
	HTML     string `json:"html"`
}

// ATSResponse represents the response for /ats/analyze
type ATSResponse struct {
	Analysis *types.ATSAnalysis        `json:"analysis"`
	Job      *types.JobPostingAnalysis `json:"job,omitempty"`
}

// ProfilesResponse represents the response for /profiles
type ProfilesResponse struct {
	Profiles []profiles.Summary `json:"profiles"`
}

// validatable is implemented by every request type
type validatable interface {
	Validate() error
}

// decode reads a JSON body into req and validates it
func decode(w http.ResponseWriter, r *http.Request, req validatable) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is empty"}
		}
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTemplates lists the registered templates and known sectors
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, TemplatesResponse{
		Templates: s.templates.Metadata(),
		Sectors:   templates.Sectors(),
	})
}

// handleRenderHTML renders CV data or raw markdown into a styled HTML
// document. Clients that accept only text/html get the document itself.
func (s *Server) handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	name := req.Template
	if name == "" && req.Sector != "" {
		name = templates.SectorTemplate(req.Sector)
	}
	tmpl, err := s.templates.Get(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var doc string
	if req.Data != nil {
		req.Data.Normalize()
		raw, err := json.Marshal(req.Data)
		if err == nil {
			err = schemas.ValidateCVData(raw)
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		doc, err = rendering.RenderHTML(tmpl, req.Data, templates.Options{}, req.Options)
		if err != nil {
			s.fail(w, r, err)
			return
		}
	} else {
		body, err := rendering.ConvertMarkdownToHTML(req.Markdown)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		doc = rendering.ApplyHTMLStyling(body, req.Options, tmpl.Styles())
	}

	if r.Header.Get("Accept") == "text/html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, doc)
		return
	}
	s.jsonResponse(w, http.StatusOK, RenderResponse{Template: tmpl.Name(), HTML: doc})
}

// handleATSAnalyze scores CV text, optionally against a job posting's terms
func (s *Server) handleATSAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.ATSRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	resp := ATSResponse{}
	terms := req.Terms
	if req.JobURL != "" {
		resp.Job = s.jobs.Analyze(r.Context(), req.JobURL, &jobs.Options{AdditionalTerms: req.Terms})
		if !resp.Job.Failed() {
			terms = mergeTerms(resp.Job.KeyTerms, req.Terms)
		}
	}

	resp.Analysis = ats.AnalyzeWithTerms(req.Content, terms)
	if resp.Job != nil && resp.Job.Failed() {
		fe := resp.Job.FetchError
		resp.Analysis.Warnings = append(resp.Analysis.Warnings,
			"job posting could not be analyzed: "+string(fe.Kind)+": "+fe.Message)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// mergeTerms appends extra terms not already present, ignoring case
func mergeTerms(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, t := range append(append([]string{}, base...), extra...) {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// handleJobsAnalyze analyzes a batch of job posting URLs. Individual fetch
// failures are reported per result with a 200 status.
func (s *Server) handleJobsAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.JobAnalyzeRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	opts := &jobs.BatchOptions{}
	if req.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	s.jsonResponse(w, http.StatusOK, s.jobs.AnalyzeBatch(r.Context(), req.URLs, opts))
}

// handleParseProfile parses a markdown profile into CV data
func (s *Server) handleParseProfile(w http.ResponseWriter, r *http.Request) {
	var req types.ParseProfileRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, parsing.Parse(req.Markdown))
}

// handleListProfiles lists stored profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := s.profiles.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []profiles.Summary{}
	}
	s.jsonResponse(w, http.StatusOK, ProfilesResponse{Profiles: list})
}

// handleGetProfile returns the current or a specific version of a profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		p   *profiles.Profile
		err error
	)
	if v := r.URL.Query().Get("version"); v != "" {
		version, convErr := strconv.Atoi(v)
		if convErr != nil || version < 1 {
			s.fail(w, r, &ErrValidation{Field: "version", Message: "must be a positive integer"})
			return
		}
		p, err = s.profiles.GetVersion(r.Context(), id, version)
	} else {
		p, err = s.profiles.Get(r.Context(), id)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// fail maps err to a status and writes it. Internal errors are logged and
// their details withheld from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
