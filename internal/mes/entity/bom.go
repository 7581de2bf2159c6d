package entity

// BOM 物料清单（装配件）
type BOM struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	PartID   uint    `json:"part_id" gorm:"not null;index"`
	Revision *string `json:"revision" gorm:"size:20"`
}

func (BOM) TableName() string {
	return "boms"
}

// BOMItem BOM行项
type BOMItem struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	BOMID           uint    `json:"bom_id" gorm:"not null;index"`
	ComponentPartID uint    `json:"component_part_id" gorm:"not null;index"`
	Quantity        float64 `json:"quantity" gorm:"type:decimal(12,4);not null"`
}

func (BOMItem) TableName() string {
	return "bom_items"
}
