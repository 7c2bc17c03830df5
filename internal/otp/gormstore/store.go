package gormstore

import (
	"context"
	"errors"
	"time"

	otpDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/otp"
	"github.com/frahmantamala/asset-management/internal/otp"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists verification codes via GORM.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) otp.Store {
	return &Store{db: db}
}

// Save upserts the row so re-requesting a code replaces the previous one and
// clears any earlier verification.
func (s *Store) Save(ctx context.Context, email, code string, createdAt time.Time) error {
	row := &otpDatamodel.EmailVerification{
		Email:     email,
		Code:      code,
		CreatedAt: createdAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "created_at", "verified_at"}),
		}).
		Create(row).Error
}

func (s *Store) Get(ctx context.Context, email string) (*otp.Verification, error) {
	var row otpDatamodel.EmailVerification
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, otp.ErrNoVerification
	}
	if err != nil {
		return nil, err
	}
	return &otp.Verification{
		Email:      row.Email,
		Code:       row.Code,
		CreatedAt:  row.CreatedAt,
		VerifiedAt: row.VerifiedAt,
	}, nil
}

// Delete drops the verification row. Deleting an absent row is not an
// error.
func (s *Store) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&otpDatamodel.EmailVerification{}).Error
}

// MarkVerified consumes the code and stamps the verification time.
func (s *Store) MarkVerified(ctx context.Context, email string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&otpDatamodel.EmailVerification{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"code":        "",
			"verified_at": at,
		}).Error
}
