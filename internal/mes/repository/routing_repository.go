package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type RoutingRepository struct {
	db *gorm.DB
}

func NewRoutingRepository(db *gorm.DB) *RoutingRepository {
	return &RoutingRepository{db: db}
}

// List 分页列出工艺路线
func (r *RoutingRepository) List(ctx context.Context, limit, offset *int) ([]entity.Routing, error) {
	l, o := Paginate(limit, offset)
	var routings []entity.Routing
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&routings).Error
	return routings, err
}

// GetByID 根据ID查找工艺路线
func (r *RoutingRepository) GetByID(ctx context.Context, id uint) (*entity.Routing, error) {
	var routing entity.Routing
	if err := r.db.WithContext(ctx).First(&routing, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &routing, nil
}

// Create 创建工艺路线
func (r *RoutingRepository) Create(ctx context.Context, routing *entity.Routing) error {
	return r.db.WithContext(ctx).Create(routing).Error
}

// Delete 删除工艺路线
func (r *RoutingRepository) Delete(ctx context.Context, routing *entity.Routing) error {
	return r.db.WithContext(ctx).Delete(routing).Error
}

type RoutingStepRepository struct {
	db *gorm.DB
}

func NewRoutingStepRepository(db *gorm.DB) *RoutingStepRepository {
	return &RoutingStepRepository{db: db}
}

// List 分页列出工艺步骤
func (r *RoutingStepRepository) List(ctx context.Context, limit, offset *int) ([]entity.RoutingStep, error) {
	l, o := Paginate(limit, offset)
	var steps []entity.RoutingStep
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&steps).Error
	return steps, err
}

// GetByID 根据ID查找工艺步骤
func (r *RoutingStepRepository) GetByID(ctx context.Context, id uint) (*entity.RoutingStep, error) {
	var step entity.RoutingStep
	if err := r.db.WithContext(ctx).First(&step, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &step, nil
}

// ListByRouting 列出工艺路线的全部步骤，按 sequence 升序
func (r *RoutingStepRepository) ListByRouting(ctx context.Context, routingID uint) ([]entity.RoutingStep, error) {
	var steps []entity.RoutingStep
	err := r.db.WithContext(ctx).
		Where("routing_id = ?", routingID).
		Order("sequence ASC").
		Find(&steps).Error
	return steps, err
}

// Create 创建工艺步骤
func (r *RoutingStepRepository) Create(ctx context.Context, step *entity.RoutingStep) error {
	return r.db.WithContext(ctx).Create(step).Error
}

// Delete 删除工艺步骤
func (r *RoutingStepRepository) Delete(ctx context.Context, step *entity.RoutingStep) error {
	return r.db.WithContext(ctx).Delete(step).Error
}
