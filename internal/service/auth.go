package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusconnect/campusconnect-server/internal/auth"
	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/errors"
	"github.com/campusconnect/campusconnect-server/internal/id"
	"github.com/campusconnect/campusconnect-server/internal/store"
)

// AuthService handles registration, login and token refresh.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(s *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        s,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest contains the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse contains tokens and the authenticated user.
type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // Access token lifetime in seconds
}

// Register creates a new user account and logs it in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Record:           domain.Record{ID: userID},
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     passwordHash,
		BookmarksEnabled: true,
		LastLoginAt:      time.Now().UTC(),
	}
	user.InitTimestamps()

	if err := s.store.Users.Create(ctx, userID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user registered", "user_id", userID, "email", user.Email)
	}

	return s.issueTokens(ctx, user)
}

// Login authenticates a user with email and password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the email exists
			return nil, errors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.IsDeleted() {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	user.LastLoginAt = time.Now().UTC()

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", user.ID)
	}

	return resp, nil
}

// Refresh rotates a refresh token, returning new access and refresh tokens.
// The old refresh token is invalidated.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	hash := auth.HashRefreshToken(req.RefreshToken)
	user, err := s.store.GetUserByRefreshTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, errors.TokenExpired("refresh token expired")
	}
	if user.IsDeleted() {
		return nil, errors.Unauthorized("invalid refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout invalidates the user's refresh session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		return err
	}

	user.RefreshTokenHash = ""
	user.RefreshTokenExpiresAt = nil
	user.Touch()

	if err := s.store.Users.Update(ctx, userID, user); err != nil {
		return fmt.Errorf("clear refresh session: %w", err)
	}
	return nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
// Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}

// issueTokens generates a fresh access/refresh pair and persists the refresh
// session on the user record.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*AuthResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.tokenService.RefreshTokenDuration())
	user.RefreshTokenHash = auth.HashRefreshToken(refreshToken)
	user.RefreshTokenExpiresAt = &expiresAt
	user.Touch()

	if err := s.store.Users.Update(ctx, user.ID, user); err != nil {
		return nil, fmt.Errorf("persist refresh session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}
