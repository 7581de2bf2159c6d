package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List 分页列出部门
func (r *DepartmentRepository) List(ctx context.Context, limit, offset *int) ([]entity.Department, error) {
	l, o := Paginate(limit, offset)
	var depts []entity.Department
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&depts).Error
	return depts, err
}

// GetByID 根据ID查找部门
func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*entity.Department, error) {
	var dept entity.Department
	if err := r.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &dept, nil
}

// GetByTitle 根据标题查找部门
func (r *DepartmentRepository) GetByTitle(ctx context.Context, title string) (*entity.Department, error) {
	var dept entity.Department
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&dept).Error; err != nil {
		return nil, notFound(err)
	}
	return &dept, nil
}

// Create 创建部门
func (r *DepartmentRepository) Create(ctx context.Context, dept *entity.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

// Save 保存部门全部字段
func (r *DepartmentRepository) Save(ctx context.Context, dept *entity.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// Delete 删除部门
func (r *DepartmentRepository) Delete(ctx context.Context, dept *entity.Department) error {
	return r.db.WithContext(ctx).Delete(dept).Error
}
