package users

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	return NewService(
		repo,
		auth.NewHasher("test-salt"),
		auth.NewTokenService([]byte("test-secret"), time.Hour),
		logging.NewSlogLogger(slog.Default()),
	)
}

// failingRepo returns the configured errors from every method.
type failingRepo struct {
	getErr    error
	createErr error
}

func (f *failingRepo) Create(ctx context.Context, u *User) (*User, error) {
	return nil, f.createErr
}
func (f *failingRepo) GetByTelegramID(ctx context.Context, telegramID string) (*User, error) {
	return nil, f.getErr
}
func (f *failingRepo) Save(ctx context.Context, u *User) (*User, error) {
	return nil, errors.New("unexpected Save call")
}
func (f *failingRepo) ListAdmins(ctx context.Context) ([]*User, error) {
	return nil, errors.New("unexpected ListAdmins call")
}

// --- CreateUser ---

func TestCreateUser_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	res, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "t1", res.User.TelegramID)
	assert.Equal(t, "Alice", res.User.FullName)
	assert.False(t, res.User.IsAdmin)
	assert.NotEmpty(t, res.User.PasswordHash)
	assert.NotEqual(t, "secret", res.User.PasswordHash)

	stored, err := repo.GetByTelegramID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, res.User.PasswordHash, stored.PasswordHash)
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	_, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)

	res, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	assert.Nil(t, res, "no token on duplicate signup")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreateUser_TokenVerifiable(t *testing.T) {
	s := newTestService(t, NewInMemoryRepository())

	res, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)

	claims, err := s.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "t1", claims.Subject)
	assert.Equal(t, "Alice", claims.FullName)
}

func TestCreateUser_PersistenceFailurePropagates(t *testing.T) {
	repo := &failingRepo{getErr: common.ErrorNotFound, createErr: errors.New("db down")}
	s := newTestService(t, repo)

	res, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreateUser_LookupFailurePropagates(t *testing.T) {
	repo := &failingRepo{getErr: errors.New("db down")}
	s := newTestService(t, repo)

	_, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.Error(t, err)
}

// --- ValidateCredentials ---

func TestValidateCredentials(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	_, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := s.ValidateCredentials(context.Background(), "t1", "secret")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.FullName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.ValidateCredentials(context.Background(), "t1", "wrong")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.ValidateCredentials(context.Background(), "nobody", "secret")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestValidateCredentials_ContactWithoutPassword(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	_, err := s.RegisterContact(context.Background(), "t1", "Alice")
	require.NoError(t, err)

	// An empty stored digest must not match any password, including "".
	_, err = s.ValidateCredentials(context.Background(), "t1", "")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

// --- Login ---

func TestLogin(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	res, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)

	t.Run("valid credentials and token", func(t *testing.T) {
		user, err := s.Login(context.Background(), "t1", "secret", res.Token)
		require.NoError(t, err)
		assert.Equal(t, "t1", user.TelegramID)
	})

	t.Run("wrong password collapses to unauthorized", func(t *testing.T) {
		_, err := s.Login(context.Background(), "t1", "wrong", res.Token)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("unknown user collapses to unauthorized", func(t *testing.T) {
		_, err := s.Login(context.Background(), "nobody", "secret", res.Token)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("wrong password wins over bad token", func(t *testing.T) {
		_, err := s.Login(context.Background(), "t1", "wrong", "garbage")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := s.Login(context.Background(), "t1", "secret", "garbage")
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := auth.NewTokenService([]byte("test-secret"), -time.Minute).Issue("t1", "Alice")
		require.NoError(t, err)

		_, err = s.Login(context.Background(), "t1", "secret", expired)
		assert.ErrorIs(t, err, common.ErrInvalidToken)
	})
}

// --- RegisterContact ---

func TestRegisterContact_Idempotent(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	first, err := s.RegisterContact(context.Background(), "t1", "Alice")
	require.NoError(t, err)
	assert.Empty(t, first.PasswordHash)

	second, err := s.RegisterContact(context.Background(), "t1", "Alice Renamed")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice", second.FullName, "existing record returned unchanged")
}

func TestRegisterContact_DoesNotClobberSignup(t *testing.T) {
	repo := NewInMemoryRepository()
	s := newTestService(t, repo)

	_, err := s.CreateUser(context.Background(), "t1", "Alice", "secret")
	require.NoError(t, err)

	u, err := s.RegisterContact(context.Background(), "t1", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, u.PasswordHash)
}
