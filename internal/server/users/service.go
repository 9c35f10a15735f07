package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/auth"
)

// CreateUserResult is returned by a successful signup: the persisted
// record plus a freshly issued session token.
type CreateUserResult struct {
	User  *User
	Token string
}

// Service is the authentication core. It orchestrates signup, login, and
// token verification over the Repository, the password Hasher, and the
// TokenService. All collaborators are supplied at construction.
type Service struct {
	repo   Repository
	hasher *auth.Hasher
	tokens *auth.TokenService
	logger logging.Logger
}

func NewService(repo Repository, hasher *auth.Hasher, tokens *auth.TokenService, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "users_service"),
	}
}

// CreateUser registers a password-authenticated account. If a record with
// the same telegram id already exists it fails with ErrorAlreadyExists and
// performs no mutation. On success the new record is persisted first and
// only then a token is issued; a persistence failure propagates and no
// token is minted.
func (s *Service) CreateUser(ctx context.Context, telegramID string, fullName string, password string) (*CreateUserResult, error) {

	_, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	// A fresh record is built here; caller-provided values are never
	// mutated in place.
	user := &User{
		TelegramID:   telegramID,
		FullName:     fullName,
		PasswordHash: s.hasher.Hash(password),
	}

	s.logger.Debug(ctx, "creating user", "full_name", fullName)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(created.TelegramID, created.FullName)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &CreateUserResult{User: created, Token: token}, nil
}

// ValidateCredentials looks the account up and checks the password digest.
// Absent account -> ErrorNotFound, digest mismatch -> ErrInvalidCredentials.
func (s *Service) ValidateCredentials(ctx context.Context, telegramID string, password string) (*User, error) {

	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if user.PasswordHash == "" || !s.hasher.Compare(user.PasswordHash, s.hasher.Hash(password)) {
		s.logger.Warn(ctx, "invalid credentials", "full_name", user.FullName)
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Login validates credentials and then the presented session token.
// Credential failures collapse into ErrorUnauthorized so that callers
// cannot distinguish a missing account from a wrong password; token
// failures surface as ErrInvalidToken.
func (s *Service) Login(ctx context.Context, telegramID string, password string, token string) (*User, error) {

	user, err := s.ValidateCredentials(ctx, telegramID, password)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	if _, err := s.tokens.Verify(token); err != nil {
		return nil, common.ErrInvalidToken
	}

	s.logger.Debug(ctx, "auth successful", "full_name", user.FullName)
	return user, nil
}

// VerifyToken is a pass-through to the token service for standalone
// token checks.
func (s *Service) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// RegisterContact records a bot first-contact account without a password
// digest. It is idempotent: an existing record is returned unchanged.
func (s *Service) RegisterContact(ctx context.Context, telegramID string, fullName string) (*User, error) {

	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	created, err := s.repo.Create(ctx, &User{TelegramID: telegramID, FullName: fullName})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}
