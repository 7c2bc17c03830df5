package postgres

import (
	"context"
	"errors"
	"time"

	adminDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/admin"
	"github.com/frahmantamala/asset-management/internal/admin"
	"gorm.io/gorm"
)

// Repository implements admin.Repository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) admin.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *admin.Admin) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(admin.ToDataModel(a)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return admin.ErrDuplicate
	}
	return err
}

func (r *Repository) GetByAdminID(ctx context.Context, adminID string) (*admin.Admin, error) {
	var row adminDatamodel.Admin
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, admin.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return admin.FromDataModel(&row), nil
}
