package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mihrabhq/backend/internal/domain/identity"
	"github.com/mihrabhq/backend/internal/infrastructure/auth"
	"github.com/mihrabhq/backend/internal/interfaces/http/dto"
)

const (
	// ActorKey is the gin context key holding the authenticated actor
	ActorKey = "actor"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTAuth validates the bearer token and attaches the authenticated actor to
// the request context. Requests with revoked tokens are rejected; blacklist
// lookup failures are logged and the request proceeds.
func JWTAuth(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
			} else {
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		if blacklist != nil && claims.ID != "" {
			blacklisted, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if blacklisted {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		actor, err := actorFromClaims(claims, c.ClientIP())
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// GetActor returns the authenticated actor attached by JWTAuth.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, ok := c.Get(ActorKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func actorFromClaims(claims *auth.Claims, remoteAddr string) (identity.Actor, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return identity.Actor{}, err
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return identity.Actor{}, err
	}

	actor := identity.Actor{
		UserID:     userID,
		TenantID:   tenantID,
		Username:   claims.Username,
		Role:       identity.Role(claims.Role),
		RemoteAddr: remoteAddr,
	}
	if claims.PlaceID != "" {
		placeID, err := uuid.Parse(claims.PlaceID)
		if err != nil {
			return identity.Actor{}, err
		}
		actor.HomePlaceID = &placeID
	}
	return actor, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
