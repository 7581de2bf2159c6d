package service

// 每个写操作使用字段完全枚举的输入结构体，可选字段用指针表达，
// 不接受开放式键值载荷。更新为全字段替换：调用方要保留某字段需回传当前值。

type DepartmentInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UserInput struct {
	Username     string `json:"username" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
	Job          string `json:"job"`
	Time         int    `json:"time"`
}

type PartInput struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
}

type DefectCategoryInput struct {
	Title        string `json:"title" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
}

type DefectInput struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	PartID           uint   `json:"part_id" binding:"required"`
	DefectCategoryID uint   `json:"defect_category_id" binding:"required"`
}

type QualityInput struct {
	PassFail    *bool `json:"pass_fail" binding:"required"`
	DefectCount int   `json:"defect_count"`
	PartID      uint  `json:"part_id" binding:"required"`
}

type WorkCenterInput struct {
	Name         string  `json:"name" binding:"required"`
	Code         *string `json:"code"`
	DepartmentID *uint   `json:"department_id"`
}

type WorkOrderInput struct {
	Number       string `json:"number" binding:"required"`
	Status       string `json:"status"`
	Quantity     int    `json:"quantity" binding:"required"`
	PartID       uint   `json:"part_id" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
	WorkCenterID *uint  `json:"work_center_id"`
}

type WorkOrderOpInput struct {
	WorkOrderID  uint   `json:"work_order_id" binding:"required"`
	Sequence     int    `json:"sequence" binding:"required"`
	WorkCenterID *uint  `json:"work_center_id"`
	Status       string `json:"status"`
}

type RoutingInput struct {
	Name    string  `json:"name" binding:"required"`
	PartID  uint    `json:"part_id" binding:"required"`
	Version *string `json:"version"`
}

type RoutingStepInput struct {
	RoutingID       uint    `json:"routing_id" binding:"required"`
	Sequence        int     `json:"sequence" binding:"required"`
	WorkCenterID    *uint   `json:"work_center_id"`
	Description     string  `json:"description"`
	StandardMinutes float64 `json:"standard_minutes"`
}

type BOMInput struct {
	PartID   uint    `json:"part_id" binding:"required"`
	Revision *string `json:"revision"`
}

type BOMItemInput struct {
	BOMID           uint    `json:"bom_id" binding:"required"`
	ComponentPartID uint    `json:"component_part_id" binding:"required"`
	Quantity        float64 `json:"quantity" binding:"required"`
}

type ActivityLogInput struct {
	UserID       *uint  `json:"user_id"`
	PartID       *uint  `json:"part_id"`
	DepartmentID *uint  `json:"department_id"`
	WorkOrderID  *uint  `json:"work_order_id"`
	EventType    string `json:"event_type" binding:"required"`
	Message      string `json:"message"`
}

type FloorInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type FloorZoneInput struct {
	FloorID      uint   `json:"floor_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ZoneType     string `json:"zone_type"`
	DepartmentID *uint  `json:"department_id"`
	WorkCenterID *uint  `json:"work_center_id"`
	Polygon      string `json:"polygon"`
}
