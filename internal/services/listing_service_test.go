package services

import (
	"context"
	"testing"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func listingRequest() *models.CreateListingRequest {
	return &models.CreateListingRequest{
		Title:       "Sunny apartment downtown",
		Address:     "Main St 42",
		Category:    models.CategoryApartment,
		RoomCount:   2,
		MonthlyRent: 1500,
	}
}

func TestCreateListing_OwnerIsPrincipal(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	p := &models.Principal{ID: 9, Username: "owner", Active: true}

	listing, err := svc.CreateListing(context.Background(), p, listingRequest())
	assert.NoError(t, err)
	assert.Equal(t, 9, listing.OwnerID)
	assert.True(t, listing.Available) // defaults to available
}

func TestCreateListing_RequiresActiveAccount(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())

	_, err := svc.CreateListing(context.Background(), nil, listingRequest())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	inactive := &models.Principal{ID: 1, Active: false}
	_, err = svc.CreateListing(context.Background(), inactive, listingRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateListing_NegativeRent(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	p := &models.Principal{ID: 1, Active: true}

	req := listingRequest()
	req.MonthlyRent = -100

	_, err := svc.CreateListing(context.Background(), p, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "monthly_rent")
}

func TestCreateListing_InvalidCategory(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	p := &models.Principal{ID: 1, Active: true}

	req := listingRequest()
	req.Category = "castle"

	_, err := svc.CreateListing(context.Background(), p, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "category")
}

func TestGetListing_Public(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	p := &models.Principal{ID: 1, Active: true}

	created, err := svc.CreateListing(context.Background(), p, listingRequest())
	assert.NoError(t, err)

	// No principal needed for reads
	got, err := svc.GetListing(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateListing_OwnershipEnforced(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	owner := &models.Principal{ID: 1, Username: "owner", Active: true}
	stranger := &models.Principal{ID: 2, Username: "stranger", Active: true}

	created, err := svc.CreateListing(context.Background(), owner, listingRequest())
	assert.NoError(t, err)

	req := listingRequest()
	req.Title = "Updated title"

	_, err = svc.UpdateListing(context.Background(), stranger, created.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateListing(context.Background(), owner, created.ID, req)
	assert.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
}

func TestDeleteListing_OwnershipEnforced(t *testing.T) {
	repo := newFakeListingRepo()
	svc := NewListingService(repo)
	owner := &models.Principal{ID: 1, Active: true}
	stranger := &models.Principal{ID: 2, Active: true}

	created, err := svc.CreateListing(context.Background(), owner, listingRequest())
	assert.NoError(t, err)

	err = svc.DeleteListing(context.Background(), stranger, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.DeleteListing(context.Background(), owner, created.ID))
	_, err = repo.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListAvailable_FiltersUnavailable(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	p := &models.Principal{ID: 1, Active: true}

	_, err := svc.CreateListing(context.Background(), p, listingRequest())
	assert.NoError(t, err)

	unavailable := false
	req := listingRequest()
	req.Available = &unavailable
	_, err = svc.CreateListing(context.Background(), p, req)
	assert.NoError(t, err)

	listings, err := svc.ListAvailable(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.True(t, listings[0].Available)
}

func TestUpdateListing_NotFound(t *testing.T) {
	svc := NewListingService(newFakeListingRepo())
	p := &models.Principal{ID: 1, Active: true}

	_, err := svc.UpdateListing(context.Background(), p, 404, listingRequest())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
