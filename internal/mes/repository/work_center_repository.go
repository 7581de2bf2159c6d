package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type WorkCenterRepository struct {
	db *gorm.DB
}

func NewWorkCenterRepository(db *gorm.DB) *WorkCenterRepository {
	return &WorkCenterRepository{db: db}
}

// List 分页列出工作中心
func (r *WorkCenterRepository) List(ctx context.Context, limit, offset *int) ([]entity.WorkCenter, error) {
	l, o := Paginate(limit, offset)
	var centers []entity.WorkCenter
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&centers).Error
	return centers, err
}

// GetByID 根据ID查找工作中心
func (r *WorkCenterRepository) GetByID(ctx context.Context, id uint) (*entity.WorkCenter, error) {
	var wc entity.WorkCenter
	if err := r.db.WithContext(ctx).First(&wc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &wc, nil
}

// GetByCode 根据编码查找工作中心
func (r *WorkCenterRepository) GetByCode(ctx context.Context, code string) (*entity.WorkCenter, error) {
	var wc entity.WorkCenter
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&wc).Error; err != nil {
		return nil, notFound(err)
	}
	return &wc, nil
}

// Create 创建工作中心
func (r *WorkCenterRepository) Create(ctx context.Context, wc *entity.WorkCenter) error {
	return r.db.WithContext(ctx).Create(wc).Error
}

// Save 保存工作中心全部字段
func (r *WorkCenterRepository) Save(ctx context.Context, wc *entity.WorkCenter) error {
	return r.db.WithContext(ctx).Save(wc).Error
}

// Delete 删除工作中心
func (r *WorkCenterRepository) Delete(ctx context.Context, wc *entity.WorkCenter) error {
	return r.db.WithContext(ctx).Delete(wc).Error
}
