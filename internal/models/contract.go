package models

import "time"

// Contract statuses
const (
	ContractStatusActive    = "active"
	ContractStatusClosed    = "closed"
	ContractStatusCancelled = "cancelled"
)

func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusActive, ContractStatusClosed, ContractStatusCancelled:
		return true
	}
	return false
}

type Contract struct {
	ID             int       `json:"id"`
	TenantID       int       `json:"tenant_id"`
	TenantUsername string    `json:"tenant_username,omitempty"` // Joined from accounts table
	ListingID      int       `json:"listing_id"`
	ListingTitle   string    `json:"listing_title,omitempty"` // Joined from listings table
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	MonthlyRent    float64   `json:"monthly_rent"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateContractRequest represents the request body for creating a contract.
// Dates use YYYY-MM-DD. The tenant is never taken from the payload.
type CreateContractRequest struct {
	ListingID   int     `json:"listing_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	MonthlyRent float64 `json:"monthly_rent"`
	Status      string  `json:"status"`
}
