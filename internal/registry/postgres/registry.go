package postgres

import (
	"context"
	"errors"

	registryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/registry"
	"github.com/frahmantamala/asset-management/internal/registry"
	"gorm.io/gorm"
)

// Repository implements the registry.RepositoryAPI interface using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) registry.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Exists(ctx context.Context, namespace, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&registryDatamodel.Identifier{}).
		Where("namespace = ? AND value = ?", namespace, value).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Insert(ctx context.Context, namespace, value string) error {
	row := &registryDatamodel.Identifier{
		Namespace: namespace,
		Value:     value,
	}
	err := r.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return registry.ErrAlreadyReserved
	}
	return err
}

func (r *Repository) Remove(ctx context.Context, namespace, value string) error {
	return r.db.WithContext(ctx).
		Where("namespace = ? AND value = ?", namespace, value).
		Delete(&registryDatamodel.Identifier{}).Error
}
