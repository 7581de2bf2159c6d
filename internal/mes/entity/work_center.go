package entity

// WorkCenter 工作中心
type WorkCenter struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"size:100;not null"`
	Code         *string `json:"code" gorm:"size:50;uniqueIndex"`
	DepartmentID *uint   `json:"department_id" gorm:"index"`
}

func (WorkCenter) TableName() string {
	return "work_centers"
}
