package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"chavecerta-backend/internal/middleware"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/services"
	"chavecerta-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service  *services.PaymentService
	Razorpay *services.RazorpayService
	Receipts *services.ReceiptService
}

func NewPaymentHandler(s *services.PaymentService, razorpay *services.RazorpayService, receipts *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{Service: s, Razorpay: razorpay, Receipts: receipts}
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.Service.CreatePayment(r.Context(), p, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	payment, err := h.Service.GetPayment(r.Context(), p, id)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	payments, err := h.Service.ListPayments(r.Context(), p)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	payments, err := h.Service.ListPendingPayments(r.Context(), p)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.Service.UpdatePayment(r.Context(), p, id, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePayment(r.Context(), p, id); err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadReceipt streams the payment receipt PDF
func (h *PaymentHandler) DownloadReceipt(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pdf, err := h.Receipts.GeneratePaymentReceipt(r.Context(), p, id)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// CreateOnlineOrder starts an online payment for a contract
func (h *PaymentHandler) CreateOnlineOrder(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	var req models.CreateOnlinePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Razorpay.CreateOrder(r.Context(), p, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// VerifyOnlinePayment confirms the payment after checkout
func (h *PaymentHandler) VerifyOnlinePayment(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r.Context())

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.Razorpay.VerifyPayment(r.Context(), p, &req)
	if err != nil {
		utils.WriteServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, payment)
}
