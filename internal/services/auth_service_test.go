package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktrack/internal/models"
	"tasktrack/internal/repository"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(userRepo, tokens)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "", Password: "secret1"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: ""})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "secret2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// staleLookupUserRepo never sees existing rows, the way a concurrent
// registration wouldn't before its insert.
type staleLookupUserRepo struct {
	repository.UserRepository
}

func (r staleLookupUserRepo) FindByUsername(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAuthService_Register_DuplicateBehindStaleLookup(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := staleLookupUserRepo{repository.NewUserRepository(db)}
	svc := NewAuthService(userRepo, NewTokenIssuer("test-secret", time.Hour))

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	// The pre-insert check misses, so the insert itself hits the unique
	// index; that still reads as a taken username, not a server error.
	_, err = svc.Register(RegisterInput{Username: "alice", Password: "secret2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	user, token, err := svc.Login(LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	identity, err := svc.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown username produce the same error so
	// accounts cannot be enumerated.
	_, _, err = svc.Login(LoginInput{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(LoginInput{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUser(t *testing.T) {
	svc := setupAuthService(t)

	created, err := svc.Register(RegisterInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
