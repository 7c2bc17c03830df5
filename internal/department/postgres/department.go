package postgres

import (
	"context"
	"errors"
	"time"

	departmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/department"
	"github.com/frahmantamala/asset-management/internal/department"
	"gorm.io/gorm"
)

// Repository implements department.Repository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) department.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *department.Department) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(department.ToDataModel(d)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return department.ErrDuplicate
	}
	return err
}

func (r *Repository) GetByDepartmentID(ctx context.Context, departmentID string) (*department.Department, error) {
	var row departmentDatamodel.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, department.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return department.FromDataModel(&row), nil
}

func (r *Repository) Exists(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&departmentDatamodel.Department{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
