package entity

// Part 零件
type Part struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:50;not null"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
}

func (Part) TableName() string {
	return "parts"
}
