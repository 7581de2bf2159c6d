package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// List 分页列出工单
func (r *WorkOrderRepository) List(ctx context.Context, limit, offset *int) ([]entity.WorkOrder, error) {
	l, o := Paginate(limit, offset)
	var orders []entity.WorkOrder
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&orders).Error
	return orders, err
}

// GetByID 根据ID查找工单
func (r *WorkOrderRepository) GetByID(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	if err := r.db.WithContext(ctx).First(&wo, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &wo, nil
}

// GetByNumber 根据工单号查找工单
func (r *WorkOrderRepository) GetByNumber(ctx context.Context, number string) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&wo).Error; err != nil {
		return nil, notFound(err)
	}
	return &wo, nil
}

// Create 创建工单
func (r *WorkOrderRepository) Create(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

// Save 保存工单全部字段
func (r *WorkOrderRepository) Save(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Save(wo).Error
}

// Delete 删除工单
func (r *WorkOrderRepository) Delete(ctx context.Context, wo *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Delete(wo).Error
}

type WorkOrderOpRepository struct {
	db *gorm.DB
}

func NewWorkOrderOpRepository(db *gorm.DB) *WorkOrderOpRepository {
	return &WorkOrderOpRepository{db: db}
}

// List 分页列出工序
func (r *WorkOrderOpRepository) List(ctx context.Context, limit, offset *int) ([]entity.WorkOrderOp, error) {
	l, o := Paginate(limit, offset)
	var ops []entity.WorkOrderOp
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&ops).Error
	return ops, err
}

// GetByID 根据ID查找工序
func (r *WorkOrderOpRepository) GetByID(ctx context.Context, id uint) (*entity.WorkOrderOp, error) {
	var op entity.WorkOrderOp
	if err := r.db.WithContext(ctx).First(&op, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &op, nil
}

// ListByWorkOrder 列出工单的全部工序，sequence 决定执行顺序，必须升序返回
func (r *WorkOrderOpRepository) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]entity.WorkOrderOp, error) {
	var ops []entity.WorkOrderOp
	err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Order("sequence ASC").
		Find(&ops).Error
	return ops, err
}

// Create 创建工序
func (r *WorkOrderOpRepository) Create(ctx context.Context, op *entity.WorkOrderOp) error {
	return r.db.WithContext(ctx).Create(op).Error
}

// Delete 删除工序
func (r *WorkOrderOpRepository) Delete(ctx context.Context, op *entity.WorkOrderOp) error {
	return r.db.WithContext(ctx).Delete(op).Error
}
