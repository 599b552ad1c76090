package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netplan/pkg/buildinfo"
	"github.com/matzehuels/netplan/pkg/errors"
	"github.com/matzehuels/netplan/pkg/evaluate"
	"github.com/matzehuels/netplan/pkg/pipeline"
	"github.com/matzehuels/netplan/pkg/project"
	"github.com/matzehuels/netplan/pkg/routing"
	"github.com/matzehuels/netplan/pkg/store"
	"github.com/matzehuels/netplan/pkg/traffic"
)

// =============================================================================
// Request and response bodies
// =============================================================================

// ProjectRequest is the body of /v1/routes and /v1/evaluate.
type ProjectRequest struct {
	Project project.Document  `json:"project"`
	Options *pipeline.Options `json:"options,omitempty"`
}

// PlanRequest is the body of POST /v1/plans.
type PlanRequest struct {
	Name    string            `json:"name" validate:"max=200"`
	Project project.Document  `json:"project"`
	Demands []traffic.Demand  `json:"demands" validate:"dive"`
	Options *pipeline.Options `json:"options,omitempty"`
}

// RouteResponse is one row of a routes reply.
type RouteResponse struct {
	From int          `json:"from"`
	To   int          `json:"to"`
	Path routing.Path `json:"path"`
	Hops int          `json:"hops"`
}

// RoutesResponse is the reply of POST /v1/routes. Project is the topology
// the routes belong to, which differs from the request when links were
// built.
type RoutesResponse struct {
	TopologyHash string           `json:"topology_hash"`
	Built        bool             `json:"built"`
	Cached       bool             `json:"cached"`
	Project      project.Document `json:"project"`
	Routes       []RouteResponse  `json:"routes"`
}

// EvaluateResponse is the reply of POST /v1/evaluate.
type EvaluateResponse struct {
	Report  evaluate.Report  `json:"report"`
	Project project.Document `json:"project"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	net, err := req.Project.Network()
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts := s.options(req.Options)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, r, err)
		return
	}

	built := false
	if opts.Rebuild || len(net.Edges) == 0 {
		if net, err = s.runner.BuildTopology(r.Context(), net.Nodes, opts); err != nil {
			s.respondError(w, r, err)
			return
		}
		built = true
	}

	table, hit, err := s.runner.RoutesWithCacheInfo(r.Context(), net, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := RoutesResponse{
		TopologyHash: pipeline.TopologyHash(net),
		Built:        built,
		Cached:       hit,
		Project:      project.FromNetwork(net),
		Routes:       make([]RouteResponse, 0, len(table)),
	}
	for _, e := range table.Entries() {
		resp.Routes = append(resp.Routes, RouteResponse{From: e.From, To: e.To, Path: e.Path, Hops: e.Path.Hops()})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	net, err := req.Project.Network()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, evaluated, err := s.runner.Evaluate(r.Context(), net, s.options(req.Options))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, EvaluateResponse{Report: report, Project: project.FromNetwork(evaluated)})
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "plan storage is disabled"))
		return
	}
	var req PlanRequest
	if err := decode(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	net, err := req.Project.Network()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	opts := s.options(req.Options)
	opts.Formats = nil
	res, err := s.runner.Execute(r.Context(), pipeline.Input{
		Network: net,
		Demands: traffic.ToDemands(req.Demands),
	}, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	plan := store.NewPlan(req.Name, project.FromNetwork(res.Network), req.Demands, res.Report, res.Warnings)
	if err := s.store.Put(r.Context(), plan); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/plans/"+plan.ID)
	respondJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondJSON(w, http.StatusOK, []store.Summary{})
		return
	}
	plans, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeNotFound, "plan %s not found", id))
		return
	}
	plan, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeNotFound, "plan %s not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// options applies request options over the server defaults.
func (s *Server) options(req *pipeline.Options) pipeline.Options {
	opts := s.defaults.WithOverrides(req)
	opts.Logger = s.logger
	return opts
}
