package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/service"
	"github.com/go-chi/chi/v5"
)

type QueryHandler struct {
	svc *service.QueryService
}

func NewQueryHandler(svc *service.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type probabilityRequest struct {
	Hypothesis domain.Assignment `json:"hypothesis"`
	Givens     domain.Assignment `json:"givens"`
	Kind       string            `json:"kind"`
}

type parametersResponse struct {
	Parameters int `json:"parameters"`
}

type independenceRequest struct {
	Var1       string            `json:"var1"`
	Var2       string            `json:"var2"`
	Givens     domain.Assignment `json:"givens"`
	Structural bool              `json:"structural"`
}

type independenceResponse struct {
	Var1        string            `json:"var1"`
	Var2        string            `json:"var2"`
	Givens      domain.Assignment `json:"givens,omitempty"`
	Independent bool              `json:"independent"`
}

type simplifyRequest struct {
	Givens domain.Assignment `json:"givens"`
}

type simplifyResponse struct {
	Variable   string            `json:"variable"`
	Givens     domain.Assignment `json:"givens"`
	Simplified domain.Assignment `json:"simplified"`
	Reduced    bool              `json:"reduced"`
}

func (h *QueryHandler) Probability(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	var req probabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Hypothesis) == 0 {
		writeError(w, http.StatusBadRequest, "hypothesis is required")
		return
	}
	if !service.ValidProbabilityKind(req.Kind) {
		writeError(w, http.StatusBadRequest, "kind must be one of joint, marginal, conditional")
		return
	}

	res, err := h.svc.Probability(r.Context(), id, tenant.ID, service.ProbabilityQuery{
		Hypothesis: req.Hypothesis,
		Givens:     req.Givens,
		Kind:       service.ProbabilityKind(req.Kind),
	})
	if err != nil {
		writeServiceError(w, err, "failed to compute probability")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *QueryHandler) Parameters(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Parameters(r.Context(), id, tenant.ID)
	if err != nil {
		writeServiceError(w, err, "failed to count parameters")
		return
	}

	writeJSON(w, http.StatusOK, parametersResponse{Parameters: n})
}

func (h *QueryHandler) Independence(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	var req independenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Var1 == "" || req.Var2 == "" {
		writeError(w, http.StatusBadRequest, "var1 and var2 are required")
		return
	}

	independent, err := h.svc.Independence(r.Context(), id, tenant.ID, service.IndependenceQuery{
		Var1:       req.Var1,
		Var2:       req.Var2,
		Givens:     req.Givens,
		Structural: req.Structural,
	})
	if err != nil {
		writeServiceError(w, err, "failed to test independence")
		return
	}

	writeJSON(w, http.StatusOK, independenceResponse{
		Var1:        req.Var1,
		Var2:        req.Var2,
		Givens:      req.Givens,
		Independent: independent,
	})
}

func (h *QueryHandler) Relations(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	rel, err := h.svc.Relations(r.Context(), id, tenant.ID, chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, err, "failed to get relations")
		return
	}

	writeJSON(w, http.StatusOK, rel)
}

func (h *QueryHandler) SimplifyGivens(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	var req simplifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	variable := chi.URLParam(r, "name")
	simplified, err := h.svc.SimplifyGivens(r.Context(), id, tenant.ID, variable, req.Givens)
	if err != nil {
		writeServiceError(w, err, "failed to simplify givens")
		return
	}
	if simplified == nil {
		simplified = domain.Assignment{}
	}

	writeJSON(w, http.StatusOK, simplifyResponse{
		Variable:   variable,
		Givens:     req.Givens,
		Simplified: simplified,
		Reduced:    len(simplified) < len(req.Givens),
	})
}
