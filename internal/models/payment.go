package models

import "time"

type Payment struct {
	ID              int       `json:"id"`
	ContractID      int       `json:"contract_id"`
	PaymentDate     time.Time `json:"payment_date"`
	AmountPaid      float64   `json:"amount_paid"`
	Confirmed       bool      `json:"confirmed"`
	RazorpayOrderID string    `json:"razorpay_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreatePaymentRequest represents the request body for recording a payment.
// PaymentDate uses YYYY-MM-DD.
type CreatePaymentRequest struct {
	ContractID  int      `json:"contract_id"`
	PaymentDate string   `json:"payment_date"`
	AmountPaid  *float64 `json:"amount_paid"`
	Confirmed   bool     `json:"confirmed"`
}

// CreateOnlinePaymentRequest starts an online payment for a contract
type CreateOnlinePaymentRequest struct {
	ContractID int     `json:"contract_id"`
	Amount     float64 `json:"amount"`
}

// CreateOrderResponse is returned to the frontend to open the checkout
type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int     `json:"amount"` // in the smallest currency unit
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Payment  Payment `json:"payment"`
}

// VerifyPaymentRequest carries the checkout result for signature verification
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
