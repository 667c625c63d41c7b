package identity

import (
	"bookstall/internal/clock"
	"bookstall/internal/marketerrors"
	"bookstall/internal/models"
	"bookstall/internal/repository"
	"bookstall/utils"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

const minPasswordLength = 6

// RegisterInput carries a new account's details
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Role        models.Role
	AdminSecret string
}

// AuthResult is returned by a successful registration or login
type AuthResult struct {
	Token  string      `json:"token"`
	Role   models.Role `json:"role"`
	UserID string      `json:"user_id"`
}

// AccountService registers users and logs them in
type AccountService struct {
	users       repository.UserDB
	issuer      TokenIssuer
	clock       clock.Clock
	adminSecret string
}

// NewAccountService creates a new AccountService. Admin registration is
// refused entirely when adminSecret is empty.
func NewAccountService(users repository.UserDB, issuer TokenIssuer, clk clock.Clock, adminSecret string) *AccountService {
	return &AccountService{
		users:       users,
		issuer:      issuer,
		clock:       clk,
		adminSecret: adminSecret,
	}
}

// Register creates a client or admin account and returns a token for it
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	switch {
	case in.Username == "" || in.Email == "" || in.Password == "":
		return AuthResult{}, fmt.Errorf("service: %w - username, email and password are required", marketerrors.ErrValidation)
	case len(in.Password) < minPasswordLength:
		return AuthResult{}, fmt.Errorf("service: %w - password must be at least %d characters", marketerrors.ErrValidation, minPasswordLength)
	case in.Role != models.RoleClient && in.Role != models.RoleAdmin:
		return AuthResult{}, fmt.Errorf("service: %w - unknown role %q", marketerrors.ErrValidation, in.Role)
	}

	if in.Role == models.RoleAdmin && !s.adminSecretMatches(in.AdminSecret) {
		return AuthResult{}, fmt.Errorf("service: %w - invalid admin secret", marketerrors.ErrForbidden)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := models.User{
		UserID:       utils.GenerateID(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return AuthResult{}, fmt.Errorf("service: failed to register %s: %w", in.Email, err)
	}

	return s.authenticate(user)
}

// Login checks credentials for an account holding role
func (s *AccountService) Login(ctx context.Context, email, password string, role models.Role) (AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, marketerrors.ErrUserNotFound) {
			return AuthResult{}, fmt.Errorf("service: %w", marketerrors.ErrInvalidCredentials)
		}
		return AuthResult{}, fmt.Errorf("service: failed to load account: %w", err)
	}

	if user.Role != role || !verifyPassword(user.PasswordHash, password) {
		return AuthResult{}, fmt.Errorf("service: %w", marketerrors.ErrInvalidCredentials)
	}

	return s.authenticate(user)
}

func (s *AccountService) authenticate(user models.User) (AuthResult, error) {
	token, err := s.issuer.Issue(Identity{UserID: user.UserID, Role: user.Role})
	if err != nil {
		return AuthResult{}, fmt.Errorf("service: failed to issue token: %w", err)
	}
	return AuthResult{Token: token, Role: user.Role, UserID: user.UserID}, nil
}

func (s *AccountService) adminSecretMatches(given string) bool {
	if s.adminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.adminSecret)) == 1
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
