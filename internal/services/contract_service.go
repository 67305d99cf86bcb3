package services

import (
	"context"
	"errors"
	"time"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"
)

// ContractRepo is the persistence surface the contract service needs
type ContractRepo interface {
	Create(ctx context.Context, c *models.Contract) error
	Get(ctx context.Context, id int) (*models.Contract, error)
	List(ctx context.Context) ([]*models.Contract, error)
	Update(ctx context.Context, c *models.Contract) error
	Delete(ctx context.Context, id int) error
}

// ListingGetter resolves the listing a contract is created against
type ListingGetter interface {
	Get(ctx context.Context, id int) (*models.Listing, error)
}

type ContractService struct {
	Repo     ContractRepo
	Listings ListingGetter
}

func NewContractService(repo ContractRepo, listings ListingGetter) *ContractService {
	return &ContractService{Repo: repo, Listings: listings}
}

type contractFields struct {
	startDate   time.Time
	endDate     time.Time
	monthlyRent float64
	status      string
}

func (s *ContractService) validateContract(req *models.CreateContractRequest) (*contractFields, error) {
	ve := &apperrors.ValidationError{}
	var fields contractFields

	if req.StartDate == "" {
		ve.Add("start_date", "this field is required")
	} else if d, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		ve.Add("start_date", "date must be in YYYY-MM-DD format")
	} else {
		fields.startDate = d
	}

	if req.EndDate == "" {
		ve.Add("end_date", "this field is required")
	} else if d, err := time.Parse("2006-01-02", req.EndDate); err != nil {
		ve.Add("end_date", "date must be in YYYY-MM-DD format")
	} else {
		fields.endDate = d
	}

	if req.MonthlyRent < 0 {
		ve.Add("monthly_rent", "rent cannot be negative")
	}
	fields.monthlyRent = req.MonthlyRent

	fields.status = req.Status
	if fields.status == "" {
		fields.status = models.ContractStatusActive
	} else if !models.ValidContractStatus(fields.status) {
		ve.Add("status", "must be one of: active, closed, cancelled")
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return &fields, nil
}

// CreateContract persists a new lease contract. The tenant is always the
// principal, never a client-supplied value.
func (s *ContractService) CreateContract(ctx context.Context, p *models.Principal, req *models.CreateContractRequest) (*models.Contract, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	fields, err := s.validateContract(req)
	if err != nil {
		return nil, err
	}

	listing, err := s.Listings.Get(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("listing_id", "listing does not exist")
		}
		return nil, err
	}

	contract := &models.Contract{
		TenantID:       p.ID,
		TenantUsername: p.Username,
		ListingID:      listing.ID,
		ListingTitle:   listing.Title,
		StartDate:      fields.startDate,
		EndDate:        fields.endDate,
		MonthlyRent:    fields.monthlyRent,
		Status:         fields.status,
	}

	if err := s.Repo.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContract requires an active, authenticated principal
func (s *ContractService) GetContract(ctx context.Context, p *models.Principal, id int) (*models.Contract, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// ListContracts requires an active, authenticated principal
func (s *ContractService) ListContracts(ctx context.Context, p *models.Principal) ([]*models.Contract, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

// UpdateContract applies changes; only the tenant may mutate a contract
func (s *ContractService) UpdateContract(ctx context.Context, p *models.Principal, id int, req *models.CreateContractRequest) (*models.Contract, error) {
	contract, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.OwnerOnly{OwnerID: contract.TenantID}); err != nil {
		return nil, err
	}

	fields, err := s.validateContract(req)
	if err != nil {
		return nil, err
	}

	contract.StartDate = fields.startDate
	contract.EndDate = fields.endDate
	contract.MonthlyRent = fields.monthlyRent
	contract.Status = fields.status

	if err := s.Repo.Update(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// DeleteContract removes a contract and cascades to payments and reviews
func (s *ContractService) DeleteContract(ctx context.Context, p *models.Principal, id int) error {
	contract, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.OwnerOnly{OwnerID: contract.TenantID}); err != nil {
		return err
	}

	return s.Repo.Delete(ctx, contract.ID)
}
