package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mihrabhq/backend/internal/domain/audit"
	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/domain/shared"
	"github.com/mihrabhq/backend/internal/infrastructure/auth"
)

var (
	errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	errAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	errUserNotFound       = shared.NewDomainError("NOT_FOUND", "User not found")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	auditor    audit.Recorder
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	auditor audit.Recorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		auditor:    auditor,
		logger:     logger,
	}
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest, remoteAddr string) (*TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("Login attempt for unknown username", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, errAccountInactive
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, errInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.auditor.Record(audit.Entry{
		TenantID:    user.TenantID,
		UserID:      user.ID,
		Username:    user.Username,
		Action:      audit.ActionLogin,
		ObjectType:  "User",
		ObjectID:    user.ID,
		Description: "Logged in",
		IPAddress:   remoteAddr,
	})

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  *toUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The consumed
// refresh token is blacklisted so it can only be used once.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Blacklist lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid token")
	}
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, errUserNotFound
	}
	if !user.IsActive {
		return nil, errAccountInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL(time.Now())); err != nil {
		s.logger.Error("Failed to blacklist consumed refresh token", zap.Error(err))
	}

	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  *toUserResponse(user),
	}, nil
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, req RefreshRequest) error {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return mapTokenError(err)
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL(time.Now())); err != nil {
		s.logger.Error("Failed to blacklist refresh token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}
	return nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, actor identity.Actor) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		return nil, errUserNotFound
	}
	return toUserResponse(user), nil
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("UNAUTHORIZED", "Token has expired")
	default:
		return shared.NewDomainError("UNAUTHORIZED", "Invalid token")
	}
}
