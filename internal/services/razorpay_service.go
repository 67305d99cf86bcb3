package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"

	razorpay "github.com/razorpay/razorpay-go"
)

// OnlinePaymentRepo is the persistence surface for online rent payments
type OnlinePaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	Confirm(ctx context.Context, id int) error
}

// RazorpayService handles the online payment flow: order creation at
// checkout start, signature verification at checkout completion.
type RazorpayService struct {
	Repo      OnlinePaymentRepo
	Contracts ContractGetter
	keyID     string
	keySecret string
}

func NewRazorpayService(keyID, keySecret string, repo OnlinePaymentRepo, contracts ContractGetter) *RazorpayService {
	return &RazorpayService{
		Repo:      repo,
		Contracts: contracts,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Enabled reports whether credentials were configured
func (s *RazorpayService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

// CreateOrder creates a Razorpay order for a contract's rent and records
// an unconfirmed payment carrying the order id.
func (s *RazorpayService) CreateOrder(ctx context.Context, p *models.Principal, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	if !s.Enabled() {
		return nil, fmt.Errorf("online payments are not configured")
	}

	contract, err := s.Contracts.Get(ctx, req.ContractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("contract_id", "contract does not exist")
		}
		return nil, err
	}

	amount := req.Amount
	if amount <= 0 {
		amount = contract.MonthlyRent
	}
	if amount <= 0 {
		return nil, apperrors.NewValidation("amount", "amount must be positive")
	}

	amountMinor := toMinorUnits(amount)

	client := razorpay.NewClient(s.keyID, s.keySecret)
	orderData := map[string]interface{}{
		"amount":   amountMinor,
		"currency": "INR",
		"receipt":  fmt.Sprintf("rcpt_%d_%d", contract.ID, time.Now().Unix()),
		"notes": map[string]interface{}{
			"contract_id": contract.ID,
			"tenant_id":   contract.TenantID,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	payment := &models.Payment{
		ContractID:      contract.ID,
		PaymentDate:     time.Now().UTC().Truncate(24 * time.Hour),
		AmountPaid:      amount,
		Confirmed:       false,
		RazorpayOrderID: orderID,
	}
	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store pending payment: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amountMinor,
		Currency: "INR",
		KeyID:    s.keyID,
		Payment:  *payment,
	}, nil
}

// VerifyPayment checks the checkout signature and confirms the pending
// payment on success. Verification is idempotent.
func (s *RazorpayService) VerifyPayment(ctx context.Context, p *models.Principal, req *models.VerifyPaymentRequest) (*models.Payment, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	if !s.verifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, apperrors.NewValidation("razorpay_signature", "invalid payment signature")
	}

	payment, err := s.Repo.GetByOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("razorpay_order_id", "unknown order")
		}
		return nil, err
	}

	if payment.Confirmed {
		return payment, nil
	}

	if err := s.Repo.Confirm(ctx, payment.ID); err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	payment.Confirmed = true

	return payment, nil
}

// toMinorUnits converts a rent amount to the smallest currency unit
// Razorpay orders are denominated in. Rounds rather than truncates:
// 1234.56 * 100 is 123455.999... in float64 and would otherwise lose
// a paisa.
func toMinorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}
	data := orderID + "|" + paymentID
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(data))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
