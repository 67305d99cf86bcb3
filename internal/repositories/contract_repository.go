package repositories

import (
	"context"
	"errors"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContractRepository struct {
	DB *pgxpool.Pool
}

func NewContractRepository(db *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{DB: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *models.Contract) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO contracts(tenant_id, listing_id, start_date, end_date, monthly_rent, status)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		c.TenantID, c.ListingID, c.StartDate, c.EndDate, c.MonthlyRent, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
}

const contractSelect = `
	SELECT c.id, c.tenant_id, a.username, c.listing_id, l.title,
	       c.start_date, c.end_date, c.monthly_rent, c.status, c.created_at
	FROM contracts c
	JOIN accounts a ON c.tenant_id = a.id
	JOIN listings l ON c.listing_id = l.id`

func (r *ContractRepository) Get(ctx context.Context, id int) (*models.Contract, error) {
	row := r.DB.QueryRow(ctx, contractSelect+` WHERE c.id = $1`, id)

	var c models.Contract
	err := row.Scan(&c.ID, &c.TenantID, &c.TenantUsername, &c.ListingID, &c.ListingTitle,
		&c.StartDate, &c.EndDate, &c.MonthlyRent, &c.Status, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) List(ctx context.Context) ([]*models.Contract, error) {
	rows, err := r.DB.Query(ctx, contractSelect+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		var c models.Contract
		err := rows.Scan(&c.ID, &c.TenantID, &c.TenantUsername, &c.ListingID, &c.ListingTitle,
			&c.StartDate, &c.EndDate, &c.MonthlyRent, &c.Status, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, &c)
	}
	return contracts, rows.Err()
}

func (r *ContractRepository) Update(ctx context.Context, c *models.Contract) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE contracts SET start_date=$1, end_date=$2, monthly_rent=$3, status=$4
         WHERE id=$5`,
		c.StartDate, c.EndDate, c.MonthlyRent, c.Status, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a contract and its payments and reviews in one transaction.
func (r *ContractRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE contract_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE contract_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}
