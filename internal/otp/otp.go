package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Store persists verification state, keyed by lowercased email.
type Store interface {
	Save(ctx context.Context, email, code string, createdAt time.Time) error
	Get(ctx context.Context, email string) (*Verification, error)
	MarkVerified(ctx context.Context, email string, at time.Time) error
	Delete(ctx context.Context, email string) error
}

// Sender delivers a verification code to an address.
type Sender interface {
	Send(ctx context.Context, email, code string) error
}

// Verification is the stored state for one email address.
type Verification struct {
	Email      string
	Code       string
	CreatedAt  time.Time
	VerifiedAt *time.Time
}

// generateCode returns a 6-digit zero-padded code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
