package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/asset-management/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM.
// The connection must be opened with TranslateError so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	err := r.db.WithContext(ctx).Create(asset.ToDataModel(a)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return asset.ErrDuplicate
	}
	return err
}

func (r *AssetRepository) GetByID(ctx context.Context, assetID string) (*asset.Asset, error) {
	var row assetDatamodel.Asset
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, asset.ErrNotFound
		}
		return nil, err
	}
	return asset.FromDataModel(&row), nil
}

func (r *AssetRepository) ListAll(ctx context.Context, limit, offset int) ([]*asset.Asset, error) {
	var rows []*assetDatamodel.Asset
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return asset.FromDataModelSlice(rows), nil
}

func (r *AssetRepository) ListByDepartment(ctx context.Context, departmentID string, limit, offset int) ([]*asset.Asset, error) {
	var rows []*assetDatamodel.Asset
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", departmentID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return asset.FromDataModelSlice(rows), nil
}

func (r *AssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	return r.db.WithContext(ctx).Save(asset.ToDataModel(a)).Error
}

// Delete reports whether a row was actually removed, so a second delete of
// the same id yields false rather than an error.
func (r *AssetRepository) Delete(ctx context.Context, assetID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&assetDatamodel.Asset{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
