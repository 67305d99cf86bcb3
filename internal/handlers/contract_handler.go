package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chavecerta-backend/internal/middleware"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ContractHandler struct {
	Service *services.ContractService
}

func NewContractHandler(s *services.ContractService) *ContractHandler {
	return &ContractHandler{Service: s}
}

func (h *ContractHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	var req models.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.CreateContract(r.Context(), p, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, contract)
}

func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	contract, err := h.Service.GetContract(r.Context(), p, id)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	contracts, err := h.Service.ListContracts(r.Context(), p)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, contracts)
}

func (h *ContractHandler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.UpdateContract(r.Context(), p, id, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, contract)
}

func (h *ContractHandler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteContract(r.Context(), p, id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
