package entity

// Quality 质检记录
type Quality struct {
	ID          uint `json:"id" gorm:"primaryKey"`
	PassFail    bool `json:"pass_fail" gorm:"not null"`
	DefectCount int  `json:"defect_count" gorm:"default:0"`
	PartID      uint `json:"part_id" gorm:"not null;index"`
}

func (Quality) TableName() string {
	return "quality"
}
