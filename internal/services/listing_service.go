package services

import (
	"context"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/cache"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"
)

// ListingRepo is the persistence surface the listing service needs
type ListingRepo interface {
	Create(ctx context.Context, l *models.Listing) error
	Get(ctx context.Context, id int) (*models.Listing, error)
	List(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, error)
	Update(ctx context.Context, l *models.Listing) error
	Delete(ctx context.Context, id int) error
}

type ListingService struct {
	Repo ListingRepo
}

func NewListingService(repo ListingRepo) *ListingService {
	return &ListingService{Repo: repo}
}

func validateListing(req *models.CreateListingRequest) error {
	ve := &apperrors.ValidationError{}
	if req.Title == "" {
		ve.Add("title", "this field is required")
	}
	if req.Address == "" {
		ve.Add("address", "this field is required")
	}
	if !models.ValidListingCategory(req.Category) {
		ve.Add("category", "must be one of: apartment, house, studio, commercial")
	}
	if req.RoomCount < 0 {
		ve.Add("room_count", "cannot be negative")
	}
	if req.BathroomCount < 0 {
		ve.Add("bathroom_count", "cannot be negative")
	}
	if req.ParkingSpots < 0 {
		ve.Add("parking_spots", "cannot be negative")
	}
	if req.MonthlyRent < 0 {
		ve.Add("monthly_rent", "rent cannot be negative")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// CreateListing persists a new listing. The owner is always the principal,
// never a client-supplied value.
func (s *ListingService) CreateListing(ctx context.Context, p *models.Principal, req *models.CreateListingRequest) (*models.Listing, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	if err := validateListing(req); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	listing := &models.Listing{
		OwnerID:       p.ID,
		OwnerUsername: p.Username,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		Category:      req.Category,
		RoomCount:     req.RoomCount,
		BathroomCount: req.BathroomCount,
		ParkingSpots:  req.ParkingSpots,
		MonthlyRent:   req.MonthlyRent,
		Available:     available,
	}

	if err := s.Repo.Create(ctx, listing); err != nil {
		return nil, err
	}

	cache.InvalidateListingCaches(ctx)
	return listing, nil
}

// GetListing is public: anonymous principals may read
func (s *ListingService) GetListing(ctx context.Context, id int) (*models.Listing, error) {
	return s.Repo.Get(ctx, id)
}

// ListListings is public and honors filter, search, and ordering params
func (s *ListingService) ListListings(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, error) {
	return s.Repo.List(ctx, filter)
}

// ListAvailable is the read-only "available only" view
func (s *ListingService) ListAvailable(ctx context.Context) ([]*models.Listing, error) {
	available := true
	return s.Repo.List(ctx, &models.ListingFilter{Available: &available})
}

// UpdateListing applies changes; only the owner may mutate a listing
func (s *ListingService) UpdateListing(ctx context.Context, p *models.Principal, id int, req *models.CreateListingRequest) (*models.Listing, error) {
	listing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.OwnerOnly{OwnerID: listing.OwnerID}); err != nil {
		return nil, err
	}

	if err := validateListing(req); err != nil {
		return nil, err
	}

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Address = req.Address
	listing.Category = req.Category
	listing.RoomCount = req.RoomCount
	listing.BathroomCount = req.BathroomCount
	listing.ParkingSpots = req.ParkingSpots
	listing.MonthlyRent = req.MonthlyRent
	if req.Available != nil {
		listing.Available = *req.Available
	}

	if err := s.Repo.Update(ctx, listing); err != nil {
		return nil, err
	}

	cache.InvalidateListingCaches(ctx)
	return listing, nil
}

// DeleteListing removes a listing and cascades to its contracts
func (s *ListingService) DeleteListing(ctx context.Context, p *models.Principal, id int) error {
	listing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.OwnerOnly{OwnerID: listing.OwnerID}); err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, listing.ID); err != nil {
		return err
	}

	cache.InvalidateListingCaches(ctx)
	return nil
}
