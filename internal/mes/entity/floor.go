package entity

// Floor 车间平面图
type Floor struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"size:255"`
}

func (Floor) TableName() string {
	return "floors"
}

// FloorZone 平面图区域，polygon 为有序坐标串，如 "0,0 10,0 10,10 0,10"
type FloorZone struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FloorID      uint   `json:"floor_id" gorm:"not null;index"`
	Name         string `json:"name" gorm:"size:100;not null"`
	ZoneType     string `json:"zone_type" gorm:"size:50"`
	DepartmentID *uint  `json:"department_id" gorm:"index"`
	WorkCenterID *uint  `json:"work_center_id" gorm:"index"`
	Polygon      string `json:"polygon" gorm:"type:text"`
}

func (FloorZone) TableName() string {
	return "floor_zones"
}
