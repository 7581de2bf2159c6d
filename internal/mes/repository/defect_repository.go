package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type DefectCategoryRepository struct {
	db *gorm.DB
}

func NewDefectCategoryRepository(db *gorm.DB) *DefectCategoryRepository {
	return &DefectCategoryRepository{db: db}
}

// List 分页列出缺陷类别
func (r *DefectCategoryRepository) List(ctx context.Context, limit, offset *int) ([]entity.DefectCategory, error) {
	l, o := Paginate(limit, offset)
	var cats []entity.DefectCategory
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&cats).Error
	return cats, err
}

// GetByID 根据ID查找缺陷类别
func (r *DefectCategoryRepository) GetByID(ctx context.Context, id uint) (*entity.DefectCategory, error) {
	var cat entity.DefectCategory
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

// GetByTitle 根据标题查找缺陷类别
func (r *DefectCategoryRepository) GetByTitle(ctx context.Context, title string) (*entity.DefectCategory, error) {
	var cat entity.DefectCategory
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&cat).Error; err != nil {
		return nil, notFound(err)
	}
	return &cat, nil
}

// Create 创建缺陷类别
func (r *DefectCategoryRepository) Create(ctx context.Context, cat *entity.DefectCategory) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// Save 保存缺陷类别全部字段
func (r *DefectCategoryRepository) Save(ctx context.Context, cat *entity.DefectCategory) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete 删除缺陷类别
func (r *DefectCategoryRepository) Delete(ctx context.Context, cat *entity.DefectCategory) error {
	return r.db.WithContext(ctx).Delete(cat).Error
}

type DefectRepository struct {
	db *gorm.DB
}

func NewDefectRepository(db *gorm.DB) *DefectRepository {
	return &DefectRepository{db: db}
}

// List 分页列出缺陷
func (r *DefectRepository) List(ctx context.Context, limit, offset *int) ([]entity.Defect, error) {
	l, o := Paginate(limit, offset)
	var defects []entity.Defect
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&defects).Error
	return defects, err
}

// GetByID 根据ID查找缺陷
func (r *DefectRepository) GetByID(ctx context.Context, id uint) (*entity.Defect, error) {
	var defect entity.Defect
	if err := r.db.WithContext(ctx).First(&defect, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &defect, nil
}

// FirstByPart 取零件的第一条缺陷（可能存在多条，仅返回首条）
func (r *DefectRepository) FirstByPart(ctx context.Context, partID uint) (*entity.Defect, error) {
	var defect entity.Defect
	if err := r.db.WithContext(ctx).Where("part_id = ?", partID).First(&defect).Error; err != nil {
		return nil, notFound(err)
	}
	return &defect, nil
}

// FirstByCategory 取缺陷类别的第一条缺陷
func (r *DefectRepository) FirstByCategory(ctx context.Context, categoryID uint) (*entity.Defect, error) {
	var defect entity.Defect
	if err := r.db.WithContext(ctx).Where("defect_category_id = ?", categoryID).First(&defect).Error; err != nil {
		return nil, notFound(err)
	}
	return &defect, nil
}

// FirstByPartAndCategory 取同时满足零件与类别的第一条缺陷
func (r *DefectRepository) FirstByPartAndCategory(ctx context.Context, partID, categoryID uint) (*entity.Defect, error) {
	var defect entity.Defect
	err := r.db.WithContext(ctx).
		Where("part_id = ? AND defect_category_id = ?", partID, categoryID).
		First(&defect).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &defect, nil
}

// FirstByPartAndDepartment 取零件下属于指定部门的第一条缺陷
func (r *DefectRepository) FirstByPartAndDepartment(ctx context.Context, partID, departmentID uint) (*entity.Defect, error) {
	var defect entity.Defect
	err := r.db.WithContext(ctx).
		Joins("JOIN parts ON parts.id = defects.part_id").
		Where("defects.part_id = ? AND parts.department_id = ?", partID, departmentID).
		First(&defect).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &defect, nil
}

// Create 创建缺陷
func (r *DefectRepository) Create(ctx context.Context, defect *entity.Defect) error {
	return r.db.WithContext(ctx).Create(defect).Error
}

// Save 保存缺陷全部字段
func (r *DefectRepository) Save(ctx context.Context, defect *entity.Defect) error {
	return r.db.WithContext(ctx).Save(defect).Error
}

// Delete 删除缺陷
func (r *DefectRepository) Delete(ctx context.Context, defect *entity.Defect) error {
	return r.db.WithContext(ctx).Delete(defect).Error
}
