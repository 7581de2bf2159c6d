package entity

// User 车间用户
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:50;not null;uniqueIndex"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
	Job          string `json:"job" gorm:"size:50"`
	Time         int    `json:"time"`
}

func (User) TableName() string {
	return "users"
}
