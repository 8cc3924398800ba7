package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/domain/repository"
	"clinic-backoffice/internal/service"

	"github.com/sirupsen/logrus"
)

var verificationCodeSpace = big.NewInt(1_000_000)

// VerificationUsecase confirms that a patient owns an email address.
type VerificationUsecase interface {
	SendCode(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) (*dto.VerificationResponse, error)
	Remove(ctx context.Context, email string) error
}

type verificationUsecase struct {
	log                 *logrus.Logger
	codeRepo            repository.VerificationCodeRepository
	notificationService service.NotificationService
	codeTTL             time.Duration
	generateCode        func() (string, error)
}

func NewVerificationUsecase(
	log *logrus.Logger,
	codeRepo repository.VerificationCodeRepository,
	notificationService service.NotificationService,
	codeTTL time.Duration,
) VerificationUsecase {
	return &verificationUsecase{
		log:                 log,
		codeRepo:            codeRepo,
		notificationService: notificationService,
		codeTTL:             codeTTL,
		generateCode:        randomCode,
	}
}

// SendCode stores a fresh 6-digit code and mails it. Only one code may be pending per email.
func (u *verificationUsecase) SendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidEmail
	}

	code, err := u.generateCode()
	if err != nil {
		u.log.Warnf("Failed to generate verification code: %+v", err)
		return err
	}

	stored, err := u.codeRepo.SaveIfAbsent(ctx, email, code, u.codeTTL)
	if err != nil {
		u.log.Warnf("Failed to store verification code: %+v", err)
		return err
	}
	if !stored {
		return ErrVerificationPending
	}

	u.notificationService.NotifyVerificationCode(ctx, email, code)
	return nil
}

// Verify reports whether code matches the pending one; a matching code is consumed.
func (u *verificationUsecase) Verify(ctx context.Context, email, code string) (*dto.VerificationResponse, error) {
	email = normalizeEmail(email)
	response := &dto.VerificationResponse{Email: email}

	pending, ok, err := u.codeRepo.Find(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find verification code: %+v", err)
		return nil, err
	}
	if !ok || subtle.ConstantTimeCompare([]byte(pending), []byte(strings.TrimSpace(code))) != 1 {
		return response, nil
	}

	if err := u.codeRepo.Delete(ctx, email); err != nil {
		u.log.Warnf("Failed to delete verification code: %+v", err)
	}
	response.Verified = true
	return response, nil
}

func (u *verificationUsecase) Remove(ctx context.Context, email string) error {
	if err := u.codeRepo.Delete(ctx, normalizeEmail(email)); err != nil {
		u.log.Warnf("Failed to delete verification code: %+v", err)
		return err
	}
	return nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, verificationCodeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
