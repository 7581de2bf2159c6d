package entity

import "time"

// 工单/工序状态默认值。状态为自由字符串，不做状态机校验。
const (
	WOStatusOpen    = "open"
	OpStatusPending = "pending"
)

// WorkOrder 生产工单
type WorkOrder struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Number       string `json:"number" gorm:"size:50;not null;uniqueIndex"`
	Status       string `json:"status" gorm:"size:20;not null;default:open"`
	Quantity     int    `json:"quantity" gorm:"not null"`
	PartID       uint   `json:"part_id" gorm:"not null;index"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
	WorkCenterID *uint  `json:"work_center_id" gorm:"index"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

// WorkOrderOp 工单工序，按 sequence 定义执行顺序
type WorkOrderOp struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	WorkOrderID  uint       `json:"work_order_id" gorm:"not null;index"`
	Sequence     int        `json:"sequence" gorm:"not null"`
	WorkCenterID *uint      `json:"work_center_id" gorm:"index"`
	Status       string     `json:"status" gorm:"size:20;not null;default:pending"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

func (WorkOrderOp) TableName() string {
	return "work_order_ops"
}
