package entity

import "time"

// ActivityLog 操作日志，仅追加，created_at 入库时生成后不再变更
type ActivityLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       *uint     `json:"user_id" gorm:"index"`
	PartID       *uint     `json:"part_id" gorm:"index"`
	DepartmentID *uint     `json:"department_id" gorm:"index"`
	WorkOrderID  *uint     `json:"work_order_id" gorm:"index"`
	EventType    string    `json:"event_type" gorm:"size:50;not null"`
	Message      string    `json:"message" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
