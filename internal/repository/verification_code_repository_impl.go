package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	domainRepo "clinic-backoffice/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const verificationCodeKeyPrefix = "verification:email:"

type verificationCodeRepository struct {
	client *redis.Client
}

func NewVerificationCodeRepository(client *redis.Client) domainRepo.VerificationCodeRepository {
	return &verificationCodeRepository{client: client}
}

func verificationKey(email string) string {
	return verificationCodeKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (r *verificationCodeRepository) SaveIfAbsent(ctx context.Context, email, code string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, verificationKey(email), code, ttl).Result()
}

func (r *verificationCodeRepository) Find(ctx context.Context, email string) (string, bool, error) {
	code, err := r.client.Get(ctx, verificationKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return code, true, nil
}

func (r *verificationCodeRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, verificationKey(email)).Err()
}
