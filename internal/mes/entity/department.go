package entity

// Department 部门
type Department struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:50;not null;uniqueIndex"`
	Description string `json:"description" gorm:"size:255"`
}

func (Department) TableName() string {
	return "departments"
}
