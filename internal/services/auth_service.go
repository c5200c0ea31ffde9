package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/internal/config"
	"catalogadmin/internal/models"
	"catalogadmin/internal/repositories"
	"catalogadmin/pkg/log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	minPasswordLength     = 8
)

// AuthService issues and verifies session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseToken(tokenString string) (*TokenClaims, error)
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into the request identity.
func (c *TokenClaims) Identity() *common.Identity {
	id := &common.Identity{UserID: c.UserID, Email: c.Email}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Unix()
	}
	return id
}

type authService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
	logger    log.LoggerService
}

// NewAuthService creates a new authentication service. An empty secret is
// replaced by a random one, so tokens do not survive a restart.
func NewAuthService(users repositories.UserRepository, cfg config.AuthConfig, logger log.LoggerService) AuthService {
	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("auth.jwt_secret is not set, using a random per-process secret")
		secret = random.String(48)
	}
	return &authService{
		users:     users,
		jwtSecret: []byte(secret),
		tokenTTL:  cfg.TokenTTL,
		now:       time.Now,
		logger:    logger,
	}
}

// Login answers unknown email and wrong password identically.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user %d logged in", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, algorithm and expiry.
func (s *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *authService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, common.NewValidationError("Invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, common.NewValidationError("Password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("created user %d (%s)", user.ID, user.Email)
	return user, nil
}
