// Package permissions decides whether a principal may perform an operation
// on a resource instance. Every rule set is a closed list of predicate
// variants evaluated in the order given, first failure wins, so denial
// reasons are deterministic. A nil principal is anonymous and fails closed
// on anything but an explicitly read-only-allowed read.
package permissions

import (
	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/models"
)

// Rule is one predicate in a conjunction.
type Rule interface {
	evaluate(p *models.Principal, write bool) (decided bool, err error)
}

// ReadOnlyAllowed grants read operations to anyone, including anonymous
// principals, and defers write operations to the remaining rules.
type ReadOnlyAllowed struct{}

func (ReadOnlyAllowed) evaluate(p *models.Principal, write bool) (bool, error) {
	if !write {
		return true, nil
	}
	return false, nil
}

// ActiveRequired requires an authenticated principal whose account has been
// activated. An unresolved principal is an authentication failure, an
// inactive one a permission failure.
type ActiveRequired struct{}

func (ActiveRequired) evaluate(p *models.Principal, write bool) (bool, error) {
	if p == nil {
		return true, apperrors.ErrNotAuthenticated
	}
	if !p.Active {
		return true, apperrors.ErrPermissionDenied
	}
	return false, nil
}

// OwnerOnly requires the principal to be the resource's designated owner.
type OwnerOnly struct {
	OwnerID int
}

func (r OwnerOnly) evaluate(p *models.Principal, write bool) (bool, error) {
	if p == nil {
		return true, apperrors.ErrNotAuthenticated
	}
	if p.ID != r.OwnerID {
		return true, apperrors.ErrPermissionDenied
	}
	return false, nil
}

// SelfOnly requires the principal to be the targeted account itself.
type SelfOnly struct {
	AccountID int
}

func (r SelfOnly) evaluate(p *models.Principal, write bool) (bool, error) {
	if p == nil {
		return true, apperrors.ErrNotAuthenticated
	}
	if p.ID != r.AccountID {
		return true, apperrors.ErrPermissionDenied
	}
	return false, nil
}

// Check evaluates rules left to right. write=false marks a safe (read-only)
// operation. Returns nil when the operation is allowed.
func Check(p *models.Principal, write bool, rules ...Rule) error {
	for _, rule := range rules {
		decided, err := rule.evaluate(p, write)
		if err != nil {
			return err
		}
		if decided {
			return nil
		}
	}
	return nil
}
