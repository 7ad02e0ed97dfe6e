package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/aepplanner/pkg/aep"
	"github.com/matzehuels/aepplanner/pkg/buildinfo"
	apperrors "github.com/matzehuels/aepplanner/pkg/errors"
	"github.com/matzehuels/aepplanner/pkg/export"
	"github.com/matzehuels/aepplanner/pkg/graph"
	"github.com/matzehuels/aepplanner/pkg/httputil"
	"github.com/matzehuels/aepplanner/pkg/model"
	"github.com/matzehuels/aepplanner/pkg/pipeline"
	"github.com/matzehuels/aepplanner/pkg/project"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// GraphResponse is the body of POST /api/graph.
type GraphResponse struct {
	*graph.Graph
	Stats GraphStats `json:"stats"`
}

// GraphStats summarizes a derived graph.
type GraphStats struct {
	Nodes    int  `json:"nodes"`
	Edges    int  `json:"edges"`
	Dangling int  `json:"dangling"`
	Cached   bool `json:"cached"`
}

// ImportResponse is the body of POST /api/import.
type ImportResponse struct {
	Schemas  []model.Schema  `json:"schemas"`
	Datasets []model.Dataset `json:"datasets"`
	Skipped  int             `json:"skipped"`
}

// ValidateResponse is the body of POST /api/validate.
type ValidateResponse struct {
	Valid    bool                `json:"valid"`
	Error    string              `json:"error,omitempty"`
	Dangling []project.Reference `json:"dangling"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.runner.Analyze(r.Context(), body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	st, ok := s.readValidProject(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Visualize(r.Context(), st, pipeline.Options{})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.write(w, http.StatusOK, GraphResponse{
		Graph: res.Graph,
		Stats: GraphStats{
			Nodes:    res.Stats.NodeCount,
			Edges:    res.Stats.EdgeCount,
			Dangling: res.Stats.Dangling,
			Cached:   res.CacheInfo.LayoutHit,
		},
	})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, err)
		return
	}
	st, ok := s.readValidProject(w, r)
	if !ok {
		return
	}
	data, err := s.runner.Export(r.Context(), graph.FromProject(st), f, pipeline.Options{})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if f.IsBinary() {
		w.Header().Set("Content-Disposition", `attachment; filename="architecture`+f.Ext()+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) importAEP(w http.ResponseWriter, r *http.Request) {
	body, err := httputil.ReadBody(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	b, err := aep.MapBundle(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.write(w, http.StatusOK, ImportResponse{
		Schemas:  nonNil(b.Schemas),
		Datasets: nonNil(b.Datasets),
		Skipped:  b.Skipped,
	})
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	st, ok := s.readProject(w, r)
	if !ok {
		return
	}
	resp := ValidateResponse{Valid: true, Dangling: nonNil(project.Dangling(st))}
	if err := project.Validate(st); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	s.write(w, http.StatusOK, resp)
}

func (s *Server) readProject(w http.ResponseWriter, r *http.Request) (project.State, bool) {
	var st project.State
	if err := httputil.DecodeJSON(r, &st); err != nil {
		s.fail(w, err)
		return project.State{}, false
	}
	return project.Load(st), true
}

// readValidProject is readProject for handlers that lay out the graph.
func (s *Server) readValidProject(w http.ResponseWriter, r *http.Request) (project.State, bool) {
	st, ok := s.readProject(w, r)
	if !ok {
		return project.State{}, false
	}
	if err := project.Validate(st); err != nil {
		s.fail(w, err)
		return project.State{}, false
	}
	return st, true
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	if err := httputil.WriteJSON(w, status, v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if httputil.StatusOf(apperrors.GetCode(err)) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	if werr := httputil.WriteError(w, err); werr != nil {
		s.logger.Error("write error response", "err", werr)
	}
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
