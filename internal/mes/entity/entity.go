package entity

// All 返回全部实体，用于AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Department{},
		&User{},
		&Part{},
		&DefectCategory{},
		&Defect{},
		&Quality{},
		&WorkCenter{},
		&WorkOrder{},
		&WorkOrderOp{},
		&Routing{},
		&RoutingStep{},
		&BOM{},
		&BOMItem{},
		&ActivityLog{},
		&Floor{},
		&FloorZone{},
	}
}
