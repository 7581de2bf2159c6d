package repository

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// List 分页列出操作日志
func (r *ActivityLogRepository) List(ctx context.Context, limit, offset *int) ([]entity.ActivityLog, error) {
	l, o := Paginate(limit, offset)
	var logs []entity.ActivityLog
	err := r.db.WithContext(ctx).Offset(o).Limit(l).Find(&logs).Error
	return logs, err
}

// ListByWorkOrder 列出工单相关的操作日志
func (r *ActivityLogRepository) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID).
		Find(&logs).Error
	return logs, err
}

// Create 追加操作日志
func (r *ActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
