package entity

// DefectCategory 缺陷类别
type DefectCategory struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Title        string `json:"title" gorm:"size:50;not null"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
}

func (DefectCategory) TableName() string {
	return "defect_categories"
}

// Defect 缺陷记录
type Defect struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Title            string `json:"title" gorm:"size:50;not null"`
	Description      string `json:"description" gorm:"size:255"`
	PartID           uint   `json:"part_id" gorm:"not null;index"`
	DefectCategoryID uint   `json:"defect_category_id" gorm:"not null;index"`
}

func (Defect) TableName() string {
	return "defects"
}
