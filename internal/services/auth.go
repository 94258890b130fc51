package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/123NE456/kb-booking-app/internal/domain"
	"github.com/123NE456/kb-booking-app/internal/metrics"
	"github.com/123NE456/kb-booking-app/internal/util"
	apperrors "github.com/123NE456/kb-booking-app/pkg/errors"
)

// AuthService authenticates salon staff for the admin surface
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// LoginResult carries the issued bearer token
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login verifies credentials and issues a JWT token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	// Trim whitespace from credentials
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	log.Printf("[AUTH] Login attempt for user: %s", username)

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] Login failed: user '%s' not found", username)
			metrics.RecordAuthAttempt(false)
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
		}
		log.Printf("[AUTH] Login failed: database error for user '%s': %v", username, err)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to look up user", err)
	}

	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Printf("[AUTH] Login failed: invalid password for user '%s'", username)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")
	}

	if !user.IsActive {
		log.Printf("[AUTH] Login failed: user '%s' is inactive", username)
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}

	// Update last login
	now := time.Now()
	user.LastLogin = &now
	s.db.Save(&user)

	// Generate token
	token, err := util.GenerateToken(&user)
	if err != nil {
		log.Printf("[AUTH] Login failed: token generation error for user '%s': %v", username, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to generate token", err)
	}

	log.Printf("[AUTH] Login successful for user '%s' (id=%d, admin=%v)", username, user.ID, user.IsAdmin)
	metrics.RecordAuthAttempt(true)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Authenticate resolves a bearer token to an active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := util.ValidateToken(token)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "invalid or expired token")
	}

	user, err := util.GetUserFromToken(s.db.WithContext(ctx), claims)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user not found")
	}

	if !user.IsActive {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}

	return user, nil
}
