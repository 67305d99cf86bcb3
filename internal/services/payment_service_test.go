package services

import (
	"context"
	"testing"
	"time"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func newTestPaymentService() (*PaymentService, *fakeContractRepo) {
	contracts := newFakeContractRepo()
	return NewPaymentService(newFakePaymentRepo(), contracts), contracts
}

func seedContract(t *testing.T, contracts *fakeContractRepo) *models.Contract {
	t.Helper()
	c := &models.Contract{TenantID: 5, ListingID: 1, MonthlyRent: 1500, Status: models.ContractStatusActive}
	assert.NoError(t, contracts.Create(context.Background(), c))
	return c
}

func paymentRequest(contractID int) *models.CreatePaymentRequest {
	amount := 1500.0
	return &models.CreatePaymentRequest{
		ContractID:  contractID,
		PaymentDate: "2026-02-01",
		AmountPaid:  &amount,
	}
}

func TestCreatePayment_Success(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)
	p := &models.Principal{ID: 5, Active: true}

	payment, err := svc.CreatePayment(context.Background(), p, paymentRequest(c.ID))
	assert.NoError(t, err)
	assert.Equal(t, c.ID, payment.ContractID)
	assert.Equal(t, 1500.0, payment.AmountPaid)
	assert.False(t, payment.Confirmed)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), payment.PaymentDate)
}

func TestCreatePayment_AmountRequired(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)
	p := &models.Principal{ID: 5, Active: true}

	req := paymentRequest(c.ID)
	req.AmountPaid = nil

	_, err := svc.CreatePayment(context.Background(), p, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "amount_paid")
}

// Amount carries no range check; only presence is enforced
func TestCreatePayment_NegativeAmountAccepted(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)
	p := &models.Principal{ID: 5, Active: true}

	req := paymentRequest(c.ID)
	negative := -50.0
	req.AmountPaid = &negative

	payment, err := svc.CreatePayment(context.Background(), p, req)
	assert.NoError(t, err)
	assert.Equal(t, -50.0, payment.AmountPaid)
}

func TestCreatePayment_UnknownContract(t *testing.T) {
	svc, _ := newTestPaymentService()
	p := &models.Principal{ID: 5, Active: true}

	_, err := svc.CreatePayment(context.Background(), p, paymentRequest(404))
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "contract_id")
}

func TestCreatePayment_RequiresActivePrincipal(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)

	_, err := svc.CreatePayment(context.Background(), nil, paymentRequest(c.ID))
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	inactive := &models.Principal{ID: 5, Active: false}
	_, err = svc.CreatePayment(context.Background(), inactive, paymentRequest(c.ID))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// Payments carry no ownership gate: any active account may mutate them
func TestUpdatePayment_NoOwnershipGate(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)
	tenant := &models.Principal{ID: 5, Active: true}
	other := &models.Principal{ID: 99, Active: true}

	payment, err := svc.CreatePayment(context.Background(), tenant, paymentRequest(c.ID))
	assert.NoError(t, err)

	req := paymentRequest(c.ID)
	req.Confirmed = true

	updated, err := svc.UpdatePayment(context.Background(), other, payment.ID, req)
	assert.NoError(t, err)
	assert.True(t, updated.Confirmed)
}

func TestListPendingPayments_OnlyUnconfirmed(t *testing.T) {
	svc, contracts := newTestPaymentService()
	c := seedContract(t, contracts)
	p := &models.Principal{ID: 5, Active: true}

	_, err := svc.CreatePayment(context.Background(), p, paymentRequest(c.ID))
	assert.NoError(t, err)

	confirmed := paymentRequest(c.ID)
	confirmed.Confirmed = true
	_, err = svc.CreatePayment(context.Background(), p, confirmed)
	assert.NoError(t, err)

	pending, err := svc.ListPendingPayments(context.Background(), p)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.False(t, pending[0].Confirmed)
}

func TestDeletePayment_NotFound(t *testing.T) {
	svc, _ := newTestPaymentService()
	p := &models.Principal{ID: 5, Active: true}

	err := svc.DeletePayment(context.Background(), p, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
