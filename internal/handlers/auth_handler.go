package handlers

import (
	"encoding/json"
	"net/http"

	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AccountService
}

func NewAuthHandler(s *services.AccountService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Register creates a pending account and sends the activation email
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Service.Register(r.Context(), &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, account)
}

// Activate flips a pending account active given uid and token
func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req models.ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Activate(r.Context(), &req); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Login authenticates and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
