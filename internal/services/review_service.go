package services

import (
	"context"
	"errors"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"
)

// ReviewRepo is the persistence surface the review service needs
type ReviewRepo interface {
	Create(ctx context.Context, r *models.Review) error
	Get(ctx context.Context, id int) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	Update(ctx context.Context, r *models.Review) error
	Delete(ctx context.Context, id int) error
}

// ReviewService manages contract reviews. Mutations require an active
// principal; update and delete carry no ownership gate.
type ReviewService struct {
	Repo      ReviewRepo
	Contracts ContractGetter
}

func NewReviewService(repo ReviewRepo, contracts ContractGetter) *ReviewService {
	return &ReviewService{Repo: repo, Contracts: contracts}
}

func validateRating(rating *int) error {
	if rating == nil {
		return apperrors.NewValidation("rating", "this field is required")
	}
	if *rating < 1 {
		return apperrors.NewValidation("rating", "rating must be a positive integer")
	}
	return nil
}

// CreateReview persists a new review. The author is always the principal,
// never a client-supplied value.
func (s *ReviewService) CreateReview(ctx context.Context, p *models.Principal, req *models.CreateReviewRequest) (*models.Review, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	if _, err := s.Contracts.Get(ctx, req.ContractID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidation("contract_id", "contract does not exist")
		}
		return nil, err
	}

	review := &models.Review{
		ContractID:     req.ContractID,
		AuthorID:       p.ID,
		AuthorUsername: p.Username,
		Rating:         *req.Rating,
		Comment:        req.Comment,
	}

	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, p *models.Principal, id int) (*models.Review, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *ReviewService) ListReviews(ctx context.Context, p *models.Principal) ([]*models.Review, error) {
	if err := permissions.Check(p, false, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx)
}

func (s *ReviewService) UpdateReview(ctx context.Context, p *models.Principal, id int, req *models.CreateReviewRequest) (*models.Review, error) {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return nil, err
	}

	review, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	review.Rating = *req.Rating
	review.Comment = req.Comment

	if err := s.Repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, p *models.Principal, id int) error {
	if err := permissions.Check(p, true, permissions.ActiveRequired{}); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
