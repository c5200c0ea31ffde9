package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/internal/config"
	"catalogadmin/internal/models"
	"catalogadmin/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(users *MockUserRepository) *authService {
	return NewAuthService(users, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 24 * time.Hour}, log.Discard()).(*authService)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	ctx := context.Background()
	users := &MockUserRepository{}
	service := newTestAuthService(users)

	users.On("GetByEmail", ctx, "admin@example.com").
		Return(&models.User{ID: 1, Email: "admin@example.com", PasswordHash: hashed(t, "correct horse")}, nil)
	users.On("GetByEmail", ctx, "nobody@example.com").
		Return(nil, common.NewNotFoundError("User"))

	_, wrongPassword := service.Login(ctx, "admin@example.com", "battery staple")
	_, unknownEmail := service.Login(ctx, "nobody@example.com", "battery staple")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.ErrorIs(t, wrongPassword, common.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, common.ErrUnauthorized)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	users := &MockUserRepository{}
	service := newTestAuthService(users)

	users.On("GetByEmail", ctx, "admin@example.com").
		Return(&models.User{ID: 1, Email: "admin@example.com", PasswordHash: hashed(t, "correct horse")}, nil)

	result, err := service.Login(ctx, "admin@example.com", "correct horse")
	require.NoError(t, err)

	claims, err := service.ParseToken(result.Token)
	require.NoError(t, err)
	identity := claims.Identity()
	assert.Equal(t, int64(1), identity.UserID)
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.Equal(t, int64(24*time.Hour/time.Second), identity.ExpiresAt-identity.IssuedAt)
}

func TestLogin_MissingFields(t *testing.T) {
	service := newTestAuthService(&MockUserRepository{})

	_, err := service.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestParseToken_RejectsExpiredAndTampered(t *testing.T) {
	service := newTestAuthService(&MockUserRepository{})
	user := &models.User{ID: 3, Email: "a@example.com"}

	service.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := service.issueToken(user)
	require.NoError(t, err)
	service.now = time.Now

	_, err = service.ParseToken(expired)
	assert.Error(t, err)

	valid, err := service.issueToken(user)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = service.ParseToken(tampered)
	assert.Error(t, err)

	other := NewAuthService(&MockUserRepository{}, config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour}, log.Discard())
	_, err = other.ParseToken(valid)
	assert.Error(t, err)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	users := &MockUserRepository{}
	service := newTestAuthService(users)

	users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "admin@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")) == nil
	})).Return(nil)

	user, err := service.CreateUser(ctx, " admin@example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	users.AssertExpectations(t)
}

func TestCreateUser_ShortPassword(t *testing.T) {
	_, err := newTestAuthService(&MockUserRepository{}).CreateUser(context.Background(), "a@example.com", "short")
	assert.ErrorIs(t, err, common.ErrValidation)
}
