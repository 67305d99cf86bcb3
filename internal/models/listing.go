package models

import "time"

// Listing categories
const (
	CategoryApartment  = "apartment"
	CategoryHouse      = "house"
	CategoryStudio     = "studio"
	CategoryCommercial = "commercial"
)

func ValidListingCategory(c string) bool {
	switch c {
	case CategoryApartment, CategoryHouse, CategoryStudio, CategoryCommercial:
		return true
	}
	return false
}

type Listing struct {
	ID            int       `json:"id"`
	OwnerID       int       `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"` // Joined from accounts table
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	Category      string    `json:"category"`
	RoomCount     int       `json:"room_count"`
	BathroomCount int       `json:"bathroom_count"`
	ParkingSpots  int       `json:"parking_spots"`
	MonthlyRent   float64   `json:"monthly_rent"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateListingRequest represents the request body for creating a listing.
// The owner is never taken from the payload.
type CreateListingRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	Category      string  `json:"category"`
	RoomCount     int     `json:"room_count"`
	BathroomCount int     `json:"bathroom_count"`
	ParkingSpots  int     `json:"parking_spots"`
	MonthlyRent   float64 `json:"monthly_rent"`
	Available     *bool   `json:"available"`
}

// ListingFilter narrows the listing collection endpoints
type ListingFilter struct {
	Category  string
	Available *bool
	RoomCount *int
	Search    string
	Ordering  string
}
