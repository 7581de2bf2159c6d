package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

// List 分页列出BOM
func (r *BOMRepository) List(ctx context.Context, limit, offset *int) ([]entity.BOM, error) {
	l, o := Paginate(limit, offset)
	var boms []entity.BOM
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&boms).Error
	return boms, err
}

// GetByID 根据ID查找BOM
func (r *BOMRepository) GetByID(ctx context.Context, id uint) (*entity.BOM, error) {
	var bom entity.BOM
	if err := r.db.WithContext(ctx).First(&bom, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &bom, nil
}

// Create 创建BOM
func (r *BOMRepository) Create(ctx context.Context, bom *entity.BOM) error {
	return r.db.WithContext(ctx).Create(bom).Error
}

// Delete 删除BOM
func (r *BOMRepository) Delete(ctx context.Context, bom *entity.BOM) error {
	return r.db.WithContext(ctx).Delete(bom).Error
}

type BOMItemRepository struct {
	db *gorm.DB
}

func NewBOMItemRepository(db *gorm.DB) *BOMItemRepository {
	return &BOMItemRepository{db: db}
}

// List 分页列出BOM行项
func (r *BOMItemRepository) List(ctx context.Context, limit, offset *int) ([]entity.BOMItem, error) {
	l, o := Paginate(limit, offset)
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&items).Error
	return items, err
}

// GetByID 根据ID查找BOM行项
func (r *BOMItemRepository) GetByID(ctx context.Context, id uint) (*entity.BOMItem, error) {
	var item entity.BOMItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// ListByBOM 列出BOM的全部行项，按ID升序保证稳定顺序
func (r *BOMItemRepository) ListByBOM(ctx context.Context, bomID uint) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).
		Where("bom_id = ?", bomID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Create 创建BOM行项
func (r *BOMItemRepository) Create(ctx context.Context, item *entity.BOMItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Delete 删除BOM行项
func (r *BOMItemRepository) Delete(ctx context.Context, item *entity.BOMItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
