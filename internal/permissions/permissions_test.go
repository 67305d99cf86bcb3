package permissions

import (
	"testing"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func activePrincipal(id int) *models.Principal {
	return &models.Principal{ID: id, Username: "user", Active: true}
}

func inactivePrincipal(id int) *models.Principal {
	return &models.Principal{ID: id, Username: "user", Active: false}
}

func TestReadOnlyAllowed_AnonymousRead(t *testing.T) {
	err := Check(nil, false, ReadOnlyAllowed{}, ActiveRequired{})
	assert.NoError(t, err)
}

func TestReadOnlyAllowed_AnonymousWrite(t *testing.T) {
	err := Check(nil, true, ReadOnlyAllowed{}, ActiveRequired{})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestActiveRequired_Anonymous(t *testing.T) {
	err := Check(nil, true, ActiveRequired{})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestActiveRequired_Inactive(t *testing.T) {
	err := Check(inactivePrincipal(1), true, ActiveRequired{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestActiveRequired_Active(t *testing.T) {
	err := Check(activePrincipal(1), true, ActiveRequired{})
	assert.NoError(t, err)
}

func TestOwnerOnly_Matching(t *testing.T) {
	err := Check(activePrincipal(7), true, ActiveRequired{}, OwnerOnly{OwnerID: 7})
	assert.NoError(t, err)
}

func TestOwnerOnly_Mismatched(t *testing.T) {
	err := Check(activePrincipal(7), true, ActiveRequired{}, OwnerOnly{OwnerID: 8})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSelfOnly_Matching(t *testing.T) {
	err := Check(activePrincipal(3), true, ActiveRequired{}, SelfOnly{AccountID: 3})
	assert.NoError(t, err)
}

func TestSelfOnly_Mismatched(t *testing.T) {
	err := Check(activePrincipal(3), true, ActiveRequired{}, SelfOnly{AccountID: 4})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// Rule order is fixed: an anonymous principal hitting ActiveRequired before
// OwnerOnly must surface an authentication error, not a permission error.
func TestCheck_FirstFailureWins(t *testing.T) {
	err := Check(nil, true, ActiveRequired{}, OwnerOnly{OwnerID: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	err = Check(inactivePrincipal(1), true, ActiveRequired{}, OwnerOnly{OwnerID: 1})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCheck_NoRules(t *testing.T) {
	assert.NoError(t, Check(nil, false))
	assert.NoError(t, Check(nil, true))
}
