package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type QualityRepository struct {
	db *gorm.DB
}

func NewQualityRepository(db *gorm.DB) *QualityRepository {
	return &QualityRepository{db: db}
}

// List 分页列出质检记录
func (r *QualityRepository) List(ctx context.Context, limit, offset *int) ([]entity.Quality, error) {
	l, o := Paginate(limit, offset)
	var records []entity.Quality
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&records).Error
	return records, err
}

// GetByID 根据ID查找质检记录
func (r *QualityRepository) GetByID(ctx context.Context, id uint) (*entity.Quality, error) {
	var q entity.Quality
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

// FirstByPart 取零件的第一条质检记录
func (r *QualityRepository) FirstByPart(ctx context.Context, partID uint) (*entity.Quality, error) {
	var q entity.Quality
	if err := r.db.WithContext(ctx).Where("part_id = ?", partID).First(&q).Error; err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

// Create 创建质检记录
func (r *QualityRepository) Create(ctx context.Context, q *entity.Quality) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// Save 保存质检记录全部字段
func (r *QualityRepository) Save(ctx context.Context, q *entity.Quality) error {
	return r.db.WithContext(ctx).Save(q).Error
}

// Delete 删除质检记录
func (r *QualityRepository) Delete(ctx context.Context, q *entity.Quality) error {
	return r.db.WithContext(ctx).Delete(q).Error
}
