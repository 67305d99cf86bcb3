package repositories

import (
	"context"
	"errors"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO payments(contract_id, payment_date, amount_paid, confirmed, razorpay_order_id)
         VALUES($1, $2, $3, $4, NULLIF($5, ''))
         RETURNING id, created_at`,
		p.ContractID, p.PaymentDate, p.AmountPaid, p.Confirmed, p.RazorpayOrderID,
	).Scan(&p.ID, &p.CreatedAt)
}

const paymentColumns = `id, contract_id, payment_date, amount_paid, confirmed,
	 COALESCE(razorpay_order_id, ''), created_at`

func (r *PaymentRepository) scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.ContractID, &p.PaymentDate, &p.AmountPaid, &p.Confirmed,
		&p.RazorpayOrderID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	return r.scanPayment(r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	return r.scanPayment(r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE razorpay_order_id=$1`, orderID))
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.ContractID, &p.PaymentDate, &p.AmountPaid, &p.Confirmed,
			&p.RazorpayOrderID, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY payment_date DESC`)
}

// ListPending returns exactly the payments with confirmed = false
func (r *PaymentRepository) ListPending(ctx context.Context) ([]*models.Payment, error) {
	return r.list(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE confirmed = FALSE ORDER BY payment_date DESC`)
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE payments SET payment_date=$1, amount_paid=$2, confirmed=$3 WHERE id=$4`,
		p.PaymentDate, p.AmountPaid, p.Confirmed, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Confirm marks a payment confirmed after a verified online transaction
func (r *PaymentRepository) Confirm(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `UPDATE payments SET confirmed=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
