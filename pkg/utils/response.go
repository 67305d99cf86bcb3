package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"chavecerta-backend/internal/apperrors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteServiceError maps the service error taxonomy onto HTTP statuses:
// per-field validation failures are 400 with a field map, unresolved
// principals 401, denied principals 403, missing targets 404. Anything
// else is an internal error.
func WriteServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		WriteJSON(w, http.StatusBadRequest, ve)
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		WriteError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
