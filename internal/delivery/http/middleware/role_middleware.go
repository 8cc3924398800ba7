package middleware

import (
	"net/http"

	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/pkg/response"
)

// RequireUserType creates a middleware that checks if the user has any of the allowed types.
// The type is read from context (set by AuthMiddleware from JWT claims)
func RequireUserType(allowed ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType, ok := GetUserTypeFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User type information not found")
				return
			}

			for _, t := range allowed {
				if userType == t {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireRegistry admits recorders and managers
func RequireRegistry(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeRecorder, entity.UserTypeManager)(next)
}

// RequireManager is a convenience middleware for owner-only endpoints
func RequireManager(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeManager)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeDoctor)(next)
}
