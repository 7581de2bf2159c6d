package entity

// Routing 工艺路线
type Routing struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:100;not null"`
	PartID  uint    `json:"part_id" gorm:"not null;index"`
	Version *string `json:"version" gorm:"size:20"`
}

func (Routing) TableName() string {
	return "routings"
}

// RoutingStep 工艺步骤，按 sequence 定义执行顺序
type RoutingStep struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	RoutingID       uint    `json:"routing_id" gorm:"not null;index"`
	Sequence        int     `json:"sequence" gorm:"not null"`
	WorkCenterID    *uint   `json:"work_center_id" gorm:"index"`
	Description     string  `json:"description" gorm:"size:255"`
	StandardMinutes float64 `json:"standard_minutes" gorm:"type:decimal(10,2);default:0"`
}

func (RoutingStep) TableName() string {
	return "routing_steps"
}
