package middleware

import (
	"context"
	"net/http"
	"strings"

	"chavecerta-backend/internal/auth"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/pkg/utils"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// AccountResolver looks up the acting account so the principal reflects the
// current activation state, not the one baked into the token.
type AccountResolver interface {
	Get(ctx context.Context, id int) (*models.Account, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	accounts   AccountResolver
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, accounts AccountResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		accounts:   accounts,
	}
}

func (m *AuthMiddleware) resolve(r *http.Request) (*models.Principal, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	// Check database for current account status (for immediate permission updates)
	account, err := m.accounts.Get(r.Context(), claims.AccountID)
	if err != nil {
		return nil, false
	}

	return &models.Principal{
		ID:       account.ID,
		Username: account.Username,
		Active:   account.IsActive,
	}, true
}

// Authenticate requires a valid bearer token. The resolved principal is put
// on the request context; activation and ownership gates run later, in the
// permission layer, with the principal passed explicitly.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := m.resolve(r)
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolvePrincipal attaches a principal when a valid token is present and
// lets the request through anonymously otherwise. Used on routes whose read
// operations are public.
func (m *AuthMiddleware) ResolvePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if principal, ok := m.resolve(r); ok {
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal extracts the principal from the request context.
// Returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *models.Principal {
	principal, _ := ctx.Value(PrincipalKey).(*models.Principal)
	return principal
}
