package models

import "time"

type Review struct {
	ID             int       `json:"id"`
	ContractID     int       `json:"contract_id"`
	AuthorID       int       `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"` // Joined from accounts table
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateReviewRequest represents the request body for creating a review.
// The author is never taken from the payload.
type CreateReviewRequest struct {
	ContractID int    `json:"contract_id"`
	Rating     *int   `json:"rating"`
	Comment    string `json:"comment"`
}
