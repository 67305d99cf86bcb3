package repositories

import (
	"context"
	"errors"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	DB *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO reviews(contract_id, author_id, rating, comment)
         VALUES($1, $2, $3, NULLIF($4, ''))
         RETURNING id, created_at`,
		rev.ContractID, rev.AuthorID, rev.Rating, rev.Comment,
	).Scan(&rev.ID, &rev.CreatedAt)
}

const reviewSelect = `
	SELECT r.id, r.contract_id, r.author_id, a.username, r.rating, COALESCE(r.comment, ''), r.created_at
	FROM reviews r
	JOIN accounts a ON r.author_id = a.id`

func (r *ReviewRepository) Get(ctx context.Context, id int) (*models.Review, error) {
	row := r.DB.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id)

	var rev models.Review
	err := row.Scan(&rev.ID, &rev.ContractID, &rev.AuthorID, &rev.AuthorUsername,
		&rev.Rating, &rev.Comment, &rev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	rows, err := r.DB.Query(ctx, reviewSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.ContractID, &rev.AuthorID, &rev.AuthorUsername,
			&rev.Rating, &rev.Comment, &rev.CreatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, rev *models.Review) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE reviews SET rating=$1, comment=NULLIF($2, '') WHERE id=$3`,
		rev.Rating, rev.Comment, rev.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
