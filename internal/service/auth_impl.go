package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/infra"
	"boothtrack.in/internal/model"
)

// AuthServiceImpl implements domain.AuthService with opaque database-backed
// bearer tokens. One active token per user: repeated logins return the same
// key, logout deletes it.
type AuthServiceImpl struct {
	db     *gorm.DB
	tokens *infra.TokenCache
}

// NewAuthService creates the auth service. tokens may be nil when Redis is
// not configured; every lookup then goes to the database.
func NewAuthService(db *gorm.DB, tokens *infra.TokenCache) *AuthServiceImpl {
	return &AuthServiceImpl{db: db, tokens: tokens}
}

// Login validates username/password and returns the user's token.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*model.AuthToken, *model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &domain.AppError{Code: 401, Message: "Invalid credentials", Err: domain.ErrInvalidCredentials}
		}
		return nil, nil, domain.NewInternalError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, &domain.AppError{Code: 401, Message: "Invalid credentials", Err: domain.ErrInvalidCredentials}
	}

	if !user.IsActive {
		return nil, nil, &domain.AppError{Code: 403, Message: "User account is disabled", Err: domain.ErrAccountDisabled}
	}

	token, err := s.getOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return token, &user, nil
}

// MobileLogin resolves an employee by mobile number. A linked user account
// yields a token; an unlinked employee gets profile access only.
func (s *AuthServiceImpl) MobileLogin(ctx context.Context, mobileNumber string) (*domain.MobileLoginResult, error) {
	if mobileNumber == "" {
		return nil, domain.NewBadRequestError("Mobile number is required")
	}

	var employee model.Employee
	err := s.db.WithContext(ctx).Preload("User").Where("mobile_number = ?", mobileNumber).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Mobile number not found in employee records")
		}
		return nil, domain.NewInternalError("failed to look up employee", err)
	}

	result := &domain.MobileLoginResult{Employee: &employee}
	if employee.UserID == nil || employee.User == nil {
		// Employee exists but has no account: limited access, no session.
		return result, nil
	}

	token, err := s.getOrCreateToken(ctx, *employee.UserID)
	if err != nil {
		return nil, err
	}
	result.Token = token
	result.User = employee.User
	return result, nil
}

// Logout deletes the token. It never fails the caller: an unknown or already
// deleted token is treated the same as a successful logout.
func (s *AuthServiceImpl) Logout(ctx context.Context, tokenKey string) error {
	if tokenKey == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&model.AuthToken{}, "key = ?", tokenKey).Error; err != nil {
		log.Printf("AuthService: failed to delete token on logout: %v", err)
	}
	s.tokens.Invalidate(ctx, tokenKey)
	return nil
}

// Authenticate resolves a bearer token to its active user.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, tokenKey string) (*model.User, error) {
	if tokenKey == "" {
		return nil, &domain.AppError{Code: 401, Message: "Invalid token", Err: domain.ErrUnauthorized}
	}

	userID, cached := s.tokens.Get(ctx, tokenKey)
	if !cached {
		var token model.AuthToken
		if err := s.db.WithContext(ctx).Where("key = ?", tokenKey).First(&token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &domain.AppError{Code: 401, Message: "Invalid token", Err: domain.ErrUnauthorized}
			}
			return nil, domain.NewInternalError("failed to look up token", err)
		}
		userID = token.UserID
		s.tokens.Set(ctx, tokenKey, userID)
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.AppError{Code: 401, Message: "User inactive or deleted", Err: domain.ErrUnauthorized}
		}
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if !user.IsActive {
		return nil, &domain.AppError{Code: 401, Message: "User inactive or deleted", Err: domain.ErrUnauthorized}
	}
	return &user, nil
}

// getOrCreateToken returns the user's existing token or creates one. A race
// between concurrent logins is resolved by the unique index on user_id: the
// loser re-reads the winner's token.
func (s *AuthServiceImpl) getOrCreateToken(ctx context.Context, userID uint) (*model.AuthToken, error) {
	var token model.AuthToken
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewInternalError("failed to look up token", err)
	}

	token = model.AuthToken{Key: newTokenKey(), UserID: userID}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		if isUniqueViolation(err) {
			if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
				return nil, domain.NewInternalError("failed to load token after conflict", err)
			}
			return &token, nil
		}
		return nil, domain.NewInternalError("failed to create token", err)
	}
	return &token, nil
}

func newTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
