package repository

import (
	"context"
	"time"
)

// VerificationCodeRepository keeps pending email verification codes until they expire.
type VerificationCodeRepository interface {
	// SaveIfAbsent stores the code unless one is already pending; reports whether it was stored.
	SaveIfAbsent(ctx context.Context, email, code string, ttl time.Duration) (bool, error)
	Find(ctx context.Context, email string) (string, bool, error)
	Delete(ctx context.Context, email string) error
}
