package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"chavecerta-backend/internal/middleware"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/internal/storage"
	"chavecerta-backend/pkg/utils"

	"github.com/gorilla/mux"
)

const maxProfileImageSize = 5 << 20 // 5 MB

type AccountHandler struct {
	Service *services.AccountService
	Storage *storage.ObjectStorage
}

func NewAccountHandler(s *services.AccountService, store *storage.ObjectStorage) *AccountHandler {
	return &AccountHandler{Service: s, Storage: store}
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	accounts, err := h.Service.ListAccounts(r.Context(), p)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	account, err := h.Service.GetAccount(r.Context(), p, id)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, account)
}

// Me returns the authenticated account's own profile
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	account, err := h.Service.GetAccount(r.Context(), p, p.ID)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.Service.UpdateAccount(r.Context(), p, id, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteAccount(r.Context(), p, id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadProfileImage accepts a multipart "image" file, stores it in object
// storage, and saves the resulting URL on the account.
func (h *AccountHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if h.Storage == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	if err := r.ParseMultipartForm(maxProfileImageSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		utils.WriteError(w, http.StatusBadRequest, "image must be jpeg, png, or webp")
		return
	}

	key := fmt.Sprintf("profiles/%d/%d%s", id, time.Now().Unix(), filepath.Ext(header.Filename))
	url, err := h.Storage.Upload(r.Context(), key, contentType, file)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	account, err := h.Service.SetProfileImage(r.Context(), p, id, url)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, account)
}
