package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingRepository struct {
	DB *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{DB: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *models.Listing) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO listings(owner_id, title, description, address, category, room_count, bathroom_count, parking_spots, monthly_rent, available)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at`,
		l.OwnerID, l.Title, l.Description, l.Address, l.Category,
		l.RoomCount, l.BathroomCount, l.ParkingSpots, l.MonthlyRent, l.Available,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *ListingRepository) Get(ctx context.Context, id int) (*models.Listing, error) {
	row := r.DB.QueryRow(ctx, `
		SELECT l.id, l.owner_id, a.username, l.title, l.description, l.address, l.category,
		       l.room_count, l.bathroom_count, l.parking_spots, l.monthly_rent, l.available, l.created_at
		FROM listings l
		JOIN accounts a ON l.owner_id = a.id
		WHERE l.id = $1`, id)

	var l models.Listing
	err := row.Scan(&l.ID, &l.OwnerID, &l.OwnerUsername, &l.Title, &l.Description, &l.Address,
		&l.Category, &l.RoomCount, &l.BathroomCount, &l.ParkingSpots, &l.MonthlyRent,
		&l.Available, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// orderings whitelists client-supplied sort keys
var orderings = map[string]string{
	"monthly_rent":  "l.monthly_rent ASC",
	"-monthly_rent": "l.monthly_rent DESC",
	"room_count":    "l.room_count ASC",
	"-room_count":   "l.room_count DESC",
}

// List returns listings matching the filter. Search matches title, address,
// and description case-insensitively.
func (r *ListingRepository) List(ctx context.Context, filter *models.ListingFilter) ([]*models.Listing, error) {
	query := `
		SELECT l.id, l.owner_id, a.username, l.title, l.description, l.address, l.category,
		       l.room_count, l.bathroom_count, l.parking_spots, l.monthly_rent, l.available, l.created_at
		FROM listings l
		JOIN accounts a ON l.owner_id = a.id`

	var conditions []string
	var args []interface{}

	if filter != nil {
		if filter.Category != "" {
			args = append(args, filter.Category)
			conditions = append(conditions, fmt.Sprintf("l.category = $%d", len(args)))
		}
		if filter.Available != nil {
			args = append(args, *filter.Available)
			conditions = append(conditions, fmt.Sprintf("l.available = $%d", len(args)))
		}
		if filter.RoomCount != nil {
			args = append(args, *filter.RoomCount)
			conditions = append(conditions, fmt.Sprintf("l.room_count = $%d", len(args)))
		}
		if filter.Search != "" {
			args = append(args, "%"+filter.Search+"%")
			n := len(args)
			conditions = append(conditions, fmt.Sprintf(
				"(l.title ILIKE $%d OR l.address ILIKE $%d OR l.description ILIKE $%d)", n, n, n))
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "l.created_at DESC"
	if filter != nil && filter.Ordering != "" {
		if o, ok := orderings[filter.Ordering]; ok {
			orderBy = o
		}
	}
	query += " ORDER BY " + orderBy

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		var l models.Listing
		err := rows.Scan(&l.ID, &l.OwnerID, &l.OwnerUsername, &l.Title, &l.Description, &l.Address,
			&l.Category, &l.RoomCount, &l.BathroomCount, &l.ParkingSpots, &l.MonthlyRent,
			&l.Available, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		listings = append(listings, &l)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) Update(ctx context.Context, l *models.Listing) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE listings SET title=$1, description=$2, address=$3, category=$4,
		 room_count=$5, bathroom_count=$6, parking_spots=$7, monthly_rent=$8, available=$9
         WHERE id=$10`,
		l.Title, l.Description, l.Address, l.Category, l.RoomCount, l.BathroomCount,
		l.ParkingSpots, l.MonthlyRent, l.Available, l.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a listing, its contracts, and their payments and reviews
// in one transaction.
func (r *ListingRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM reviews WHERE contract_id IN (SELECT id FROM contracts WHERE listing_id = $1)`,
		`DELETE FROM payments WHERE contract_id IN (SELECT id FROM contracts WHERE listing_id = $1)`,
		`DELETE FROM contracts WHERE listing_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}
