package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders payment receipts as PDF documents
type ReceiptService struct {
	Payments  PaymentRepo
	Contracts ContractGetter
}

func NewReceiptService(payments PaymentRepo, contracts ContractGetter) *ReceiptService {
	return &ReceiptService{Payments: payments, Contracts: contracts}
}

// GeneratePaymentReceipt produces a one-page PDF receipt for a payment
func (s *ReceiptService) GeneratePaymentReceipt(ctx context.Context, p *models.Principal, paymentID int) ([]byte, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	payment, err := s.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	contract, err := s.Contracts.Get(ctx, payment.ContractID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "ChaveCerta - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Contract Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Contract Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Contract #%d", contract.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Tenant: %s", contract.TenantUsername), "RB", 1, "L", false, 0, "")
	title := contract.ListingTitle
	if len(title) > 45 {
		title = title[:42] + "..."
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Listing: %s", title), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Monthly Rent: %.2f", contract.MonthlyRent), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Start: %s", contract.StartDate.Format("02-Jan-2006")), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("End: %s", contract.EndDate.Format("02-Jan-2006")), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment Details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Receipt #", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Status", "1", 1, "C", true, 0, "")

	status := "PENDING"
	if payment.Confirmed {
		status = "CONFIRMED"
	}

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(40, 6, fmt.Sprintf("%d", payment.ID), "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, payment.PaymentDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", payment.AmountPaid), "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 6, status, "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	if payment.Confirmed {
		pdf.SetFillColor(200, 255, 200)
	} else {
		pdf.SetFillColor(255, 200, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount Paid: %.2f (%s)", payment.AmountPaid, status), "1", 1, "C", true, 0, "")

	if payment.RazorpayOrderID != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(190, 5, fmt.Sprintf("Online payment reference: %s", payment.RazorpayOrderID), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
