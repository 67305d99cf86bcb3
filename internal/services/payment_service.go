package services

import (
	"context"
	"errors"
	"time"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"
)

// PaymentRepo is the persistence surface the payment service needs
type PaymentRepo interface {
	Create(ctx context.Context, p *models.Payment) error
	Get(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	ListPending(ctx context.Context) ([]*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, id int) error
}

// ContractGetter resolves the contract a payment is recorded against
type ContractGetter interface {
	Get(ctx context.Context, id int) (*models.Contract, error)
}

// PaymentService records payment events. Mutations require an active
// principal but carry no ownership gate: any active account may edit any
// payment record.
type PaymentService struct {
	Repo      PaymentRepo
	Contracts ContractGetter
}

func NewPaymentService(repo PaymentRepo, contracts ContractGetter) *PaymentService {
	return &PaymentService{Repo: repo, Contracts: contracts}
}

type paymentFields struct {
	paymentDate time.Time
	amountPaid  float64
}

func validatePayment(req *models.CreatePaymentRequest) (*paymentFields, error) {
	ve := &apperrors.ValidationError{}
	var fields paymentFields

	if req.PaymentDate == "" {
		ve.Add("payment_date", "this field is required")
	} else if d, err := time.Parse("2006-01-02", req.PaymentDate); err != nil {
		ve.Add("payment_date", "date must be in YYYY-MM-DD format")
	} else {
		fields.paymentDate = d
	}

	// amount_paid is required but deliberately carries no range check
	if req.AmountPaid == nil {
		ve.Add("amount_paid", "this field is required")
	} else {
		fields.amountPaid = *req.AmountPaid
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return &fields, nil
}

func (s *PaymentService) CreatePayment(ctx context.Context, p *models.Principal, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	fields, err := validatePayment(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.Contracts.Get(ctx, req.ContractID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("contract_id", "contract does not exist")
		}
		return nil, err
	}

	payment := &models.Payment{
		ContractID:  req.ContractID,
		PaymentDate: fields.paymentDate,
		AmountPaid:  fields.amountPaid,
		Confirmed:   req.Confirmed,
	}

	if err := s.Repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, p *models.Principal, id int) (*models.Payment, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, p *models.Principal) ([]*models.Payment, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

// ListPendingPayments is the read-only "unconfirmed only" view
func (s *PaymentService) ListPendingPayments(ctx context.Context, p *models.Principal) ([]*models.Payment, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.ListPending(ctx)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, p *models.Principal, id int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	payment, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validatePayment(req)
	if err != nil {
		return nil, err
	}

	payment.PaymentDate = fields.paymentDate
	payment.AmountPaid = fields.amountPaid
	payment.Confirmed = req.Confirmed

	if err := s.Repo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, p *models.Principal, id int) error {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
