package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/pkg/jwt"
	"clinic-backoffice/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserTypeKey contextKey = "user_type"

	// RevokedTokenKeyPrefix marks tokens revoked by the auth service before they expire.
	RevokedTokenKeyPrefix = "revoked_token:"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

// Authenticate admits requests carrying a valid, unrevoked access token of a known staff type
// and stores the caller's identity in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		rawToken, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(rawToken) == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(strings.TrimSpace(rawToken))
		switch {
		case errors.Is(err, jwt.ErrNotAccessToken):
			response.Unauthorized(w, "Invalid token type")
			return
		case err != nil:
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		userType := entity.UserType(claims.UserType)
		if !userType.IsValid() {
			response.Forbidden(w, "Unknown user type")
			return
		}

		revoked, err := m.isRevoked(r.Context(), claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		ctx = context.WithValue(ctx, UserTypeKey, userType)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := m.redisClient.Exists(ctx, RevokedTokenKeyPrefix+tokenID).Result()
	return n > 0, err
}

// WithUserID returns a copy of ctx carrying the acting user's ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetUserTypeFromContext extracts the staff user type from context
func GetUserTypeFromContext(ctx context.Context) (entity.UserType, bool) {
	userType, ok := ctx.Value(UserTypeKey).(entity.UserType)
	return userType, ok
}
