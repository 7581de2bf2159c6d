package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

// List 分页列出零件
func (r *PartRepository) List(ctx context.Context, limit, offset *int) ([]entity.Part, error) {
	l, o := Paginate(limit, offset)
	var parts []entity.Part
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&parts).Error
	return parts, err
}

// GetByID 根据ID查找零件
func (r *PartRepository) GetByID(ctx context.Context, id uint) (*entity.Part, error) {
	var part entity.Part
	if err := r.db.WithContext(ctx).First(&part, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &part, nil
}

// Create 创建零件
func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

// Save 保存零件全部字段
func (r *PartRepository) Save(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// Delete 删除零件
func (r *PartRepository) Delete(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Delete(part).Error
}
