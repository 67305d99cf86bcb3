package repositories

import (
	"errors"
	"testing"

	"chavecerta-backend/internal/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapAccountConstraint_UniqueViolations(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
	}{
		{"accounts_username_key", "username"},
		{"accounts_email_key", "email"},
		{"accounts_tax_id_key", "tax_id"},
	}

	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: tc.constraint}

			err := mapAccountConstraint(pgErr)
			ve, ok := apperrors.AsValidation(err)
			assert.True(t, ok)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestMapAccountConstraint_UnknownConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "accounts_pkey"}

	err := mapAccountConstraint(pgErr)
	assert.Equal(t, error(pgErr), err)
	_, ok := apperrors.AsValidation(err)
	assert.False(t, ok)
}

func TestMapAccountConstraint_OtherPgError(t *testing.T) {
	// not-null violation on the same table must not turn into a
	// uniqueness message
	pgErr := &pgconn.PgError{Code: "23502", ConstraintName: "accounts_email_key"}

	err := mapAccountConstraint(pgErr)
	assert.Equal(t, error(pgErr), err)
}

func TestMapAccountConstraint_PassesThroughPlainErrors(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapAccountConstraint(plain))
}
