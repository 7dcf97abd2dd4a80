package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/service"
)

type NetworkHandler struct {
	svc *service.NetworkService
}

func NewNetworkHandler(svc *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{svc: svc}
}

type createNetworkRequest struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Variables   []domain.VariableDefinition `json:"variables"`
}

type listNetworksResponse struct {
	Networks []domain.NetworkSummary `json:"networks"`
	Count    int                     `json:"count"`
}

func (h *NetworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}

	var req createNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Variables) == 0 {
		writeError(w, http.StatusBadRequest, "variables are required")
		return
	}

	def := &domain.NetworkDefinition{
		TenantID:    tenant.ID,
		Name:        req.Name,
		Description: req.Description,
		Variables:   req.Variables,
	}
	if err := h.svc.Create(r.Context(), def); err != nil {
		writeServiceError(w, err, "failed to create network")
		return
	}

	writeJSON(w, http.StatusCreated, def)
}

func (h *NetworkHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}

	networks, err := h.svc.List(r.Context(), tenant.ID)
	if err != nil {
		writeServiceError(w, err, "failed to list networks")
		return
	}

	writeJSON(w, http.StatusOK, listNetworksResponse{Networks: networks, Count: len(networks)})
}

func (h *NetworkHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	def, err := h.svc.GetByID(r.Context(), id, tenant.ID)
	if err != nil {
		writeServiceError(w, err, "failed to get network")
		return
	}

	writeJSON(w, http.StatusOK, def)
}

func (h *NetworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tenant := requireTenant(w, r)
	if tenant == nil {
		return
	}
	id, ok := networkID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, tenant.ID); err != nil {
		writeServiceError(w, err, "failed to delete network")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
