package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bigo/pkg/analyzer"
	"github.com/matzehuels/bigo/pkg/buildinfo"
	errs "github.com/matzehuels/bigo/pkg/errors"
	"github.com/matzehuels/bigo/pkg/history"
	"github.com/matzehuels/bigo/pkg/pipeline"
	"github.com/matzehuels/bigo/pkg/render/treeviz"
)

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Input   string `json:"input"`
	Refresh bool   `json:"refresh,omitempty"`
	Record  bool   `json:"record,omitempty"`
}

// BatchRequest is the body of POST /api/v1/batch.
type BatchRequest struct {
	Inputs  []string `json:"inputs"`
	Workers int      `json:"workers,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
	Record  bool     `json:"record,omitempty"`
}

// BatchResponse is the body returned by POST /api/v1/batch.
type BatchResponse struct {
	Items []pipeline.BatchItem `json:"items"`
}

// NormalizeResponse is the body returned by GET /api/v1/normalize.
type NormalizeResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

// HistoryResponse is the body returned by GET /api/v1/history.
type HistoryResponse struct {
	Records []history.Record `json:"records"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), req.Input, pipeline.Options{
		Refresh: req.Refresh,
		Record:  req.Record,
		Logger:  s.requestLogger(r),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.BatchItem{Input: req.Input, Result: res.Analysis, Cached: hit})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := pipeline.ValidateBatch(req.Inputs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items, err := s.runner.AnalyzeBatch(r.Context(), req.Inputs, pipeline.Options{
		MaxWorkers: req.Workers,
		Refresh:    req.Refresh,
		Record:     req.Record,
		Logger:     s.requestLogger(r),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BatchResponse{Items: items})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("input") {
		writeError(w, http.StatusBadRequest, errs.New(errs.ErrCodeEmptyInput, "missing query parameter: input"))
		return
	}
	input := q.Get("input")
	writeJSON(w, http.StatusOK, NormalizeResponse{
		Input:      input,
		Normalized: analyzer.NormalizePreview(input),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("input")
	format := q.Get("format")
	if format == "" {
		format = treeviz.FormatSVG
	}

	data, err := s.runner.Tree(r.Context(), input, format, pipeline.Options{Logger: s.requestLogger(r)})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	switch format {
	case treeviz.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	case treeviz.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", history.DefaultListLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	recs, err := s.runner.History.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Records: recs})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.runner.History.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// fail writes err with the status its code maps to, logging server errors.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.requestLogger(r).Error("request failed", "error", err)
	}
	writeError(w, status, err)
}
