package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	internal "github.com/frahmantamala/asset-management/internal"
)

// ErrNoVerification is returned by stores when no code was ever requested
// for an address.
var ErrNoVerification = errors.New("no verification for email")

// Service issues and checks email verification codes. Codes are single use:
// a successful check consumes the code and records the verification time.
type Service struct {
	store  Store
	sender Sender
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(store Store, sender Sender, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{store: store, sender: sender, ttl: ttl, logger: logger}
}

// Send generates a fresh code for the address and delivers it. Requesting
// again replaces any outstanding code.
func (s *Service) Send(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return internal.NewMissingFieldError("email")
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("otp generation failed", "error", err)
		return internal.NewInternalError("failed to generate verification code", err)
	}

	if err := s.store.Save(ctx, email, code, time.Now().UTC()); err != nil {
		s.logger.Error("failed to save verification code", "email", email, "error", err)
		return internal.NewStorageError("failed to save verification code", err)
	}

	if err := s.sender.Send(ctx, email, code); err != nil {
		s.logger.Error("failed to send verification code", "email", email, "error", err)
		return internal.NewInternalError("failed to send verification code", err)
	}

	s.logger.Info("verification code sent", "email", email)
	return nil
}

// Verify checks the submitted code. Expired codes report expiry; anything
// else that does not match reports an invalid code. On success the code is
// consumed and the address marked verified.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	v, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNoVerification) {
			return internal.ErrOtpInvalid
		}
		s.logger.Error("verification lookup failed", "email", email, "error", err)
		return internal.NewStorageError("failed to look up verification", err)
	}

	if v.Code == "" {
		// Already consumed; a stale re-submission is just invalid.
		return internal.ErrOtpInvalid
	}
	if time.Since(v.CreatedAt) > s.ttl {
		// The stale entry is gone either way; the caller must request a
		// fresh code.
		if err := s.store.Delete(ctx, email); err != nil {
			s.logger.Error("failed to drop expired verification", "email", email, "error", err)
		}
		return internal.ErrOtpExpired
	}
	if subtle.ConstantTimeCompare([]byte(v.Code), []byte(code)) != 1 {
		s.logger.Warn("verification code mismatch", "email", email)
		return internal.ErrOtpInvalid
	}

	if err := s.store.MarkVerified(ctx, email, time.Now().UTC()); err != nil {
		s.logger.Error("failed to mark email verified", "email", email, "error", err)
		return internal.NewStorageError("failed to record verification", err)
	}

	s.logger.Info("email verified", "email", email)
	return nil
}

// IsVerified reports whether the address completed verification.
func (s *Service) IsVerified(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	v, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNoVerification) {
			return false, nil
		}
		return false, err
	}
	return v.VerifiedAt != nil, nil
}
