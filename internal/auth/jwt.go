package auth

import (
	"errors"
	"time"

	"chavecerta-backend/internal/config"
	"chavecerta-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Session and activation tokens share a signing key, so
// every validator checks the type claim to keep them single-purpose.
const (
	tokenTypeSession    = "session"
	tokenTypeActivation = "activation"
)

type Claims struct {
	AccountID int    `json:"account_id"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateToken creates a new JWT token for an account
func (j *JWTManager) GenerateToken(account *models.Account) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &Claims{
		AccountID: account.ID,
		Username:  account.Username,
		IsActive:  account.IsActive,
		Type:      tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Type != tokenTypeSession {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}

// ActivationClaims are short-lived, single-purpose tokens mailed to a newly
// registered account. They are only good for flipping the account active.
type ActivationClaims struct {
	AccountID int    `json:"account_id"`
	Type      string `json:"type"` // "activation"
	jwt.RegisteredClaims
}

// GenerateActivationToken creates the time-bound token for the activation email
func (j *JWTManager) GenerateActivationToken(account *models.Account) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ActivationHours) * time.Hour)

	claims := &ActivationClaims{
		AccountID: account.ID,
		Type:      tokenTypeActivation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateActivationToken verifies an activation token and returns the claims
func (j *JWTManager) ValidateActivationToken(tokenString string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Type != tokenTypeActivation {
		return nil, errors.New("invalid token type")
	}

	return claims, nil
}
