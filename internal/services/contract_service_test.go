package services

import (
	"context"
	"testing"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func newTestContractService() (*ContractService, *fakeListingRepo) {
	listings := newFakeListingRepo()
	return NewContractService(newFakeContractRepo(), listings), listings
}

func seedListing(t *testing.T, listings *fakeListingRepo) *models.Listing {
	t.Helper()
	l := &models.Listing{OwnerID: 1, Title: "Sunny apartment", Available: true, MonthlyRent: 1500}
	assert.NoError(t, listings.Create(context.Background(), l))
	return l
}

func contractRequest(listingID int) *models.CreateContractRequest {
	return &models.CreateContractRequest{
		ListingID:   listingID,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		MonthlyRent: 1500,
	}
}

func TestCreateContract_TenantIsPrincipal(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Username: "tenant", Active: true}

	contract, err := svc.CreateContract(context.Background(), tenant, contractRequest(l.ID))
	assert.NoError(t, err)
	assert.Equal(t, 5, contract.TenantID)
	assert.Equal(t, models.ContractStatusActive, contract.Status) // default
}

func TestCreateContract_UnknownListing(t *testing.T) {
	svc, _ := newTestContractService()
	tenant := &models.Principal{ID: 5, Active: true}

	_, err := svc.CreateContract(context.Background(), tenant, contractRequest(404))
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "listing_id")
}

func TestCreateContract_DateValidation(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Active: true}

	req := contractRequest(l.ID)
	req.StartDate = "01/01/2026"
	req.EndDate = ""

	_, err := svc.CreateContract(context.Background(), tenant, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "start_date")
	assert.Contains(t, ve.Fields, "end_date")
}

func TestCreateContract_NegativeRent(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Active: true}

	req := contractRequest(l.ID)
	req.MonthlyRent = -1

	_, err := svc.CreateContract(context.Background(), tenant, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "monthly_rent")
}

func TestCreateContract_InvalidStatus(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Active: true}

	req := contractRequest(l.ID)
	req.Status = "suspended"

	_, err := svc.CreateContract(context.Background(), tenant, req)
	ve, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "status")
}

func TestGetContract_RequiresActivePrincipal(t *testing.T) {
	svc, _ := newTestContractService()

	_, err := svc.GetContract(context.Background(), nil, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	inactive := &models.Principal{ID: 1, Active: false}
	_, err = svc.GetContract(context.Background(), inactive, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestUpdateContract_TenantOnly(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Active: true}
	other := &models.Principal{ID: 6, Active: true}

	contract, err := svc.CreateContract(context.Background(), tenant, contractRequest(l.ID))
	assert.NoError(t, err)

	req := contractRequest(l.ID)
	req.Status = models.ContractStatusClosed

	_, err = svc.UpdateContract(context.Background(), other, contract.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.UpdateContract(context.Background(), tenant, contract.ID, req)
	assert.NoError(t, err)
	assert.Equal(t, models.ContractStatusClosed, updated.Status)
}

func TestDeleteContract_TenantOnly(t *testing.T) {
	svc, listings := newTestContractService()
	l := seedListing(t, listings)
	tenant := &models.Principal{ID: 5, Active: true}
	other := &models.Principal{ID: 6, Active: true}

	contract, err := svc.CreateContract(context.Background(), tenant, contractRequest(l.ID))
	assert.NoError(t, err)

	err = svc.DeleteContract(context.Background(), other, contract.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.DeleteContract(context.Background(), tenant, contract.ID))
	_, err = svc.GetContract(context.Background(), tenant, contract.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
