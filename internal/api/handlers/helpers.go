package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/bayes/internal/api/middleware"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/inference"
	"github.com/Harshitk-cp/bayes/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service and inference errors to HTTP statuses.
// Client-caused failures carry their message so the offending query can be
// diagnosed.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNetworkNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNetworkConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidNetwork), errors.Is(err, service.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrQueryTooLarge),
		errors.Is(err, inference.ErrLookup),
		errors.Is(err, inference.ErrZeroEvidence):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, inference.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// requireTenant writes 401 and returns nil when the request is not authenticated.
func requireTenant(w http.ResponseWriter, r *http.Request) *domain.Tenant {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return tenant
}

func networkID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid network id")
		return uuid.Nil, false
	}
	return id, true
}
