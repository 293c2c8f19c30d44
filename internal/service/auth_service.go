package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mnadhif/student-records-api/internal/models"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
)

// passwordHashCost matches the cost the original credential records were
// hashed with, so existing hashes keep verifying.
const passwordHashCost = 12

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthConfig defines configuration for session issuance.
type AuthConfig struct {
	Secret string
	// Lifetime is how long an issued session token stays valid.
	Lifetime time.Duration
	// RefreshWindow is the rolling window: a token presented more than this
	// long after issuance gets re-issued with a fresh expiry.
	RefreshWindow time.Duration
	Issuer        string
}

// AuthService provides signup, credential verification and session tokens.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config}
}

// Signup creates a new user credential record. The duplicate check is a
// pre-insert existence probe; two concurrent signups for the same email can
// race, which the system accepts.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing user")
	}
	if exists {
		return "", appErrors.Clone(appErrors.ErrDuplicateUser, "user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	return user.ID, nil
}

// Authenticate verifies credentials. An unknown email and a wrong password
// both return the same invalid-credentials error so callers cannot tell
// registered addresses apart from unregistered ones.
func (s *AuthService) Authenticate(ctx context.Context, req models.SigninRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	return user, nil
}

// IssueSession produces a signed session token for the user.
func (s *AuthService) IssueSession(user *models.User) (string, time.Time, error) {
	return s.issueToken(user.ID, user.Email, user.Name)
}

// RefreshSession re-issues a token from existing claims, sliding the expiry
// forward by the full lifetime.
func (s *AuthService) RefreshSession(claims *models.SessionClaims) (string, time.Time, error) {
	return s.issueToken(claims.Subject, claims.Email, claims.Name)
}

// ValidateSession parses and validates a session token returning the claims.
func (s *AuthService) ValidateSession(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	return claims, nil
}

// ShouldRefresh reports whether the token has aged past the rolling window
// and deserves a fresh expiry on the response.
func (s *AuthService) ShouldRefresh(claims *models.SessionClaims) bool {
	if claims.IssuedAt == nil {
		return false
	}
	return time.Since(claims.IssuedAt.Time) > s.config.RefreshWindow
}

func (s *AuthService) issueToken(userID, email, name string) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Lifetime)
	claims := &models.SessionClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, expiresAt, nil
}
