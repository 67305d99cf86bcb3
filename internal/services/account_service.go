package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"chavecerta-backend/internal/apperrors"
	"chavecerta-backend/internal/auth"
	"chavecerta-backend/internal/mail"
	"chavecerta-backend/internal/models"
	"chavecerta-backend/internal/permissions"

	"github.com/google/uuid"
)

// AccountRepo is the persistence surface the account service needs
type AccountRepo interface {
	Create(ctx context.Context, a *models.Account) error
	Get(ctx context.Context, id int) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByActivationUID(ctx context.Context, uid string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	Activate(ctx context.Context, id int) error
	UpdateProfileImage(ctx context.Context, id int, url string) error
	Delete(ctx context.Context, id int) error
}

type AccountService struct {
	Repo       AccountRepo
	JWTManager *auth.JWTManager
	Mailer     mail.Mailer
}

func NewAccountService(repo AccountRepo, jwtManager *auth.JWTManager, mailer mail.Mailer) *AccountService {
	return &AccountService{
		Repo:       repo,
		JWTManager: jwtManager,
		Mailer:     mailer,
	}
}

// Register creates a pending account and dispatches the activation email.
// Uniqueness of username/email/tax_id is enforced by the insert itself.
func (s *AccountService) Register(ctx context.Context, req *models.RegisterRequest) (*models.Account, error) {
	ve := &apperrors.ValidationError{}
	if req.Username == "" {
		ve.Add("username", "this field is required")
	}
	if req.Email == "" {
		ve.Add("email", "this field is required")
	} else if !strings.Contains(req.Email, "@") {
		ve.Add("email", "enter a valid email address")
	}
	if req.TaxID == "" {
		ve.Add("tax_id", "this field is required")
	}
	if req.Password == "" {
		ve.Add("password", "this field is required")
	} else if req.Password != req.RePassword {
		ve.Add("re_password", "passwords do not match")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		TaxID:         req.TaxID,
		Address:       req.Address,
		PasswordHash:  hashedPassword,
		IsActive:      false,
		ActivationUID: uuid.NewString(),
	}

	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateActivationToken(account)
	if err != nil {
		return nil, err
	}

	// Mail failure must not roll back the registration; the client can
	// request a fresh activation mail later.
	if err := s.Mailer.SendActivationEmail(account.Email, account.Username, account.ActivationUID, token); err != nil {
		log.Printf("[Mail] Failed to send activation email to %s: %v", account.Email, err)
	}

	return account, nil
}

// Activate flips a pending account active when presented with a matching
// credential pair. Any failure leaves the account pending.
func (s *AccountService) Activate(ctx context.Context, req *models.ActivateRequest) error {
	ve := &apperrors.ValidationError{}
	if req.UID == "" {
		ve.Add("uid", "this field is required")
	}
	if req.Token == "" {
		ve.Add("token", "this field is required")
	}
	if ve.HasErrors() {
		return ve
	}

	claims, err := s.JWTManager.ValidateActivationToken(req.Token)
	if err != nil {
		return apperrors.NewValidation("token", "invalid or expired activation token")
	}

	account, err := s.Repo.GetByActivationUID(ctx, req.UID)
	if err != nil {
		return apperrors.NewValidation("uid", "invalid activation credentials")
	}

	if claims.AccountID != account.ID {
		return apperrors.NewValidation("token", "invalid activation credentials")
	}

	if account.IsActive {
		return apperrors.NewValidation("uid", "account is already active")
	}

	return s.Repo.Activate(ctx, account.ID)
}

// Login authenticates by username and password and issues a bearer token.
// Only activated accounts can log in.
func (s *AccountService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	ve := &apperrors.ValidationError{}
	if req.Username == "" {
		ve.Add("username", "this field is required")
	}
	if req.Password == "" {
		ve.Add("password", "this field is required")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	account, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrNotAuthenticated)
	}

	if !auth.VerifyPassword(account.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrNotAuthenticated)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("account pending email activation: %w", apperrors.ErrPermissionDenied)
	}

	token, err := s.JWTManager.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, Account: account}, nil
}

// GetAccount returns one account profile. Reads require authentication.
func (s *AccountService) GetAccount(ctx context.Context, p *models.Principal, id int) (*models.Account, error) {
	if p == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.Repo.Get(ctx, id)
}

// ListAccounts returns all account profiles
func (s *AccountService) ListAccounts(ctx context.Context, p *models.Principal) ([]*models.Account, error) {
	if p == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.Repo.List(ctx)
}

// UpdateAccount applies profile changes. An account may only modify itself.
func (s *AccountService) UpdateAccount(ctx context.Context, p *models.Principal, id int, req *models.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.SelfOnly{AccountID: account.ID}); err != nil {
		return nil, err
	}

	account.FirstName = req.FirstName
	account.LastName = req.LastName
	account.Phone = req.Phone
	account.Address = req.Address

	if err := s.Repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes the account and cascades to everything it owns
func (s *AccountService) DeleteAccount(ctx context.Context, p *models.Principal, id int) error {
	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.SelfOnly{AccountID: account.ID}); err != nil {
		return err
	}

	return s.Repo.Delete(ctx, account.ID)
}

// SetProfileImage stores the uploaded image URL on the account
func (s *AccountService) SetProfileImage(ctx context.Context, p *models.Principal, id int, url string) (*models.Account, error) {
	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := permissions.Check(p, true, permissions.ActiveRequired{}, permissions.SelfOnly{AccountID: account.ID}); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateProfileImage(ctx, account.ID, url); err != nil {
		return nil, err
	}
	account.ProfileImageURL = url
	return account, nil
}
