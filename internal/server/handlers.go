package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/proposal-customizer/internal/generation"
	"github.com/jonathan/proposal-customizer/internal/pipeline"
	"github.com/jonathan/proposal-customizer/internal/ranking"
	"github.com/jonathan/proposal-customizer/internal/skills"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// ProposalRequest represents the request body for /proposals
type ProposalRequest struct {
	JobText        string                `json:"job_text"`
	Title          string                `json:"title,omitempty"`
	Platform       string                `json:"platform,omitempty"`
	Style          string                `json:"style,omitempty"`
	IncludePricing *bool                 `json:"include_pricing,omitempty"`
	Temperature    *float64              `json:"temperature,omitempty"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	Model          string                `json:"model,omitempty"`
	Profile        *types.UserProfile    `json:"profile,omitempty"`
	Experience     *types.ExperienceBank `json:"experience,omitempty"`
	Keywords       []string              `json:"keywords,omitempty"`
}

// options converts the request into generation options over DefaultOptions.
func (req *ProposalRequest) options() generation.Options {
	opts := generation.DefaultOptions()
	if req.Style != "" {
		opts.Style = req.Style
	}
	if req.IncludePricing != nil {
		opts.IncludePricing = *req.IncludePricing
	}
	if req.Temperature != nil {
		opts.Temperature = *req.Temperature
	}
	if req.MaxTokens != 0 {
		opts.MaxTokens = req.MaxTokens
	}
	opts.Model = req.Model
	opts.Profile = req.Profile
	return opts
}

// SkillsRequest represents the request body for /skills
type SkillsRequest struct {
	Text     string   `json:"text"`
	TopK     int      `json:"top_k,omitempty"` // zero or less means no limit
	Keywords []string `json:"keywords,omitempty"`
}

// SkillsResponse represents the response for /skills
type SkillsResponse struct {
	Skills types.SkillSet `json:"skills"`
}

// RankRequest represents the request body for /rank
type RankRequest struct {
	Projects []types.ExperienceRecord `json:"projects"`
	Keywords []string                 `json:"keywords"`
	TopK     int                      `json:"top_k,omitempty"` // zero means ranking.DefaultTopK
}

// RankResponse represents the response for /rank
type RankResponse struct {
	Ranked []ranking.ScoredRecord `json:"ranked"`
}

// StyleInfo describes one registered style
type StyleInfo struct {
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
	Closing  string `json:"closing"`
}

// StylesResponse represents the response for /styles
type StylesResponse struct {
	Default string      `json:"default"`
	Styles  []StyleInfo `json:"styles"`
}

// decodeJSON decodes a size-limited request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// decodeProposal decodes and validates a proposal request, writing the error response
// itself. It reports whether the handler should continue.
func (s *Server) decodeProposal(w http.ResponseWriter, r *http.Request) (*ProposalRequest, bool) {
	var req ProposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, statusOrBadRequest(err), "Invalid request body: "+err.Error())
		return nil, false
	}
	if strings.TrimSpace(req.JobText) == "" {
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "job_text", Message: "is required"}).Error())
		return nil, false
	}
	return &req, true
}

func (s *Server) runOptions(req *ProposalRequest) pipeline.RunOptions {
	bank := req.Experience
	if bank == nil {
		bank = s.bank
	}
	return pipeline.RunOptions{
		JobText:        req.JobText,
		JobTitle:       req.Title,
		JobPlatform:    req.Platform,
		ExperienceData: bank,
		Keywords:       req.Keywords,
		Generation:     req.options(),
		Backend:        s.backend,
		Logger:         s.logger,
	}
}

// handleProposal generates a proposal and returns it with its intermediate artifacts
func (s *Server) handleProposal(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeProposal(w, r)
	if !ok {
		return
	}

	res, err := pipeline.Run(r.Context(), s.runOptions(req))
	if err != nil {
		s.logger.Warn("proposal generation failed", slog.Any("error", err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, res.Proposal)
}

// handleProposalStream generates a proposal and streams progress via SSE
func (s *Server) handleProposalStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeProposal(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions(req)
	opts.RunID = uuid.NewString()
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("failed to write SSE event", slog.Any("error", err))
		}
	}

	res, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		s.logger.Warn("streaming proposal generation failed", slog.String("run_id", opts.RunID), slog.Any("error", err))
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("proposal", res.Proposal); err != nil {
		s.logger.Warn("failed to write SSE event", slog.Any("error", err))
	}
	sse.WriteComplete(opts.RunID, "completed")
}

// handleSkills extracts skills from free text
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, statusOrBadRequest(err), "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "text", Message: "is required"}).Error())
		return
	}

	extractor := skills.NewExtractor(skills.WithKeywords(req.Keywords))
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Skills: extractor.Extract(req.Text, req.TopK)})
}

// handleRank scores experience records against keywords
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, statusOrBadRequest(err), "Invalid request body: "+err.Error())
		return
	}
	if req.TopK < 0 {
		s.errorResponse(w, http.StatusBadRequest, (&ErrValidation{Field: "top_k", Message: "must not be negative"}).Error())
		return
	}
	topK := req.TopK
	if topK == 0 {
		topK = ranking.DefaultTopK
	}

	ranked := ranking.ScoreExperience(req.Projects, req.Keywords)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	s.jsonResponse(w, http.StatusOK, RankResponse{Ranked: ranked})
}

// handleStyles lists the registered styles
func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	resp := StylesResponse{Default: s.registry.DefaultName()}
	for _, name := range s.registry.Names() {
		tmpl := s.registry.Template(name)
		resp.Styles = append(resp.Styles, StyleInfo{Name: name, Greeting: tmpl.Greeting, Closing: tmpl.Closing})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// statusOrBadRequest maps body decoding errors, which are client errors unless the body was too large.
func statusOrBadRequest(err error) int {
	if status := HTTPStatus(err); status == http.StatusRequestEntityTooLarge {
		return status
	}
	return http.StatusBadRequest
}
