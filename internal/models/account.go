package models

import "time"

type Account struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Phone           string    `json:"phone"`
	TaxID           string    `json:"tax_id"`
	Address         string    `json:"address"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	PasswordHash    string    `json:"-"` // Never expose in JSON
	IsActive        bool      `json:"is_active"`
	ActivationUID   string    `json:"-"` // Opaque identifier for the activation link
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Principal is the authenticated account acting on a request.
// A nil *Principal means the request is anonymous.
type Principal struct {
	ID       int
	Username string
	Active   bool
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"re_password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	TaxID      string `json:"tax_id"`
	Address    string `json:"address"`
}

// ActivateRequest carries the activation credential pair from the email link
type ActivateRequest struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

// UpdateAccountRequest represents the request body for profile updates
type UpdateAccountRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
