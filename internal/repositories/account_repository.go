package repositories

import (
	"context"
	"errors"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	DB *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{DB: db}
}

// mapAccountConstraint turns a unique-constraint violation into a per-field
// validation error. The insert itself is the uniqueness check, so two
// concurrent registrations with the same email cannot both succeed.
func mapAccountConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "accounts_username_key":
			return apperrors.NewValidation("username", "this username is already in use")
		case "accounts_email_key":
			return apperrors.NewValidation("email", "this email is already in use")
		case "accounts_tax_id_key":
			return apperrors.NewValidation("tax_id", "this tax id is already registered")
		}
	}
	return err
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO accounts(username, email, first_name, last_name, phone, tax_id, address, password_hash, is_active, activation_uid)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at, updated_at`,
		a.Username, a.Email, a.FirstName, a.LastName, a.Phone, a.TaxID, a.Address,
		a.PasswordHash, a.IsActive, a.ActivationUID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapAccountConstraint(err)
	}
	return nil
}

const accountColumns = `id, username, email, first_name, last_name, phone, tax_id, address,
	 COALESCE(profile_image_url, ''), password_hash, is_active, activation_uid, created_at, updated_at`

func (r *AccountRepository) scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Phone,
		&a.TaxID, &a.Address, &a.ProfileImageURL, &a.PasswordHash, &a.IsActive,
		&a.ActivationUID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Get(ctx context.Context, id int) (*models.Account, error) {
	return r.scanAccount(r.DB.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id))
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.scanAccount(r.DB.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username=$1`, username))
}

func (r *AccountRepository) GetByActivationUID(ctx context.Context, uid string) (*models.Account, error) {
	return r.scanAccount(r.DB.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE activation_uid=$1`, uid))
}

func (r *AccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Phone,
			&a.TaxID, &a.Address, &a.ProfileImageURL, &a.PasswordHash, &a.IsActive,
			&a.ActivationUID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, a *models.Account) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE accounts SET first_name=$1, last_name=$2, phone=$3, address=$4, updated_at=NOW()
         WHERE id=$5`,
		a.FirstName, a.LastName, a.Phone, a.Address, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Activate flips a pending account active. Returns ErrNotFound when the
// account is missing or already active, so a replayed activation fails.
func (r *AccountRepository) Activate(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE accounts SET is_active=TRUE, updated_at=NOW() WHERE id=$1 AND is_active=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateProfileImage(ctx context.Context, id int, url string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE accounts SET profile_image_url=$1, updated_at=NOW() WHERE id=$2`, url, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an account and everything hanging off it in one
// transaction: authored reviews, then payments and reviews under contracts
// the account is tenant of or that sit on its listings, those contracts,
// the owned listings, and finally the account row.
func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM reviews WHERE author_id = $1`,
		`DELETE FROM reviews WHERE contract_id IN (
			SELECT c.id FROM contracts c
			LEFT JOIN listings l ON c.listing_id = l.id
			WHERE c.tenant_id = $1 OR l.owner_id = $1)`,
		`DELETE FROM payments WHERE contract_id IN (
			SELECT c.id FROM contracts c
			LEFT JOIN listings l ON c.listing_id = l.id
			WHERE c.tenant_id = $1 OR l.owner_id = $1)`,
		`DELETE FROM contracts WHERE tenant_id = $1
			OR listing_id IN (SELECT id FROM listings WHERE owner_id = $1)`,
		`DELETE FROM listings WHERE owner_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}
