package auth

import (
	"testing"

	"chavecerta-backend/internal/config"
	"chavecerta-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.ActivationHours = 48
	cfg.JWT.Issuer = "chavecerta-backend"
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	account := &models.Account{ID: 42, Username: "maria", IsActive: true}

	token, err := manager.GenerateToken(account)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.AccountID)
	assert.Equal(t, "maria", claims.Username)
	assert.True(t, claims.IsActive)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	account := &models.Account{ID: 1, Username: "maria"}

	token, err := manager.GenerateToken(account)
	assert.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "different-secret"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := NewJWTManager(testConfig())
	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())
	account := &models.Account{ID: 7, Username: "joao"}

	token, err := manager.GenerateActivationToken(account)
	assert.NoError(t, err)

	claims, err := manager.ValidateActivationToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.AccountID)
	assert.Equal(t, "activation", claims.Type)
}

// An activation token must never pass as a session bearer credential;
// otherwise the mailed link would log a pending account in.
func TestValidateToken_RejectsActivationToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	account := &models.Account{ID: 7, Username: "joao"}

	activationToken, err := manager.GenerateActivationToken(account)
	assert.NoError(t, err)

	_, err = manager.ValidateToken(activationToken)
	assert.Error(t, err)
}

// A session token must never pass as an activation credential
func TestActivationToken_RejectsSessionToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	account := &models.Account{ID: 7, Username: "joao", IsActive: true}

	sessionToken, err := manager.GenerateToken(account)
	assert.NoError(t, err)

	_, err = manager.ValidateActivationToken(sessionToken)
	assert.Error(t, err)
}
