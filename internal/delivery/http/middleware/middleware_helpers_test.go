package middleware

import (
	"context"
	"net/http"

	"clinic-backoffice/internal/domain/entity"
)

func typePtr(t entity.UserType) *entity.UserType {
	return &t
}

func contextWithUserType(r *http.Request, t entity.UserType) context.Context {
	return context.WithValue(r.Context(), UserTypeKey, t)
}
