package repository

import (
	"errors"

	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Department     *DepartmentRepository
	User           *UserRepository
	Part           *PartRepository
	DefectCategory *DefectCategoryRepository
	Defect         *DefectRepository
	Quality        *QualityRepository
	WorkCenter     *WorkCenterRepository
	WorkOrder      *WorkOrderRepository
	WorkOrderOp    *WorkOrderOpRepository
	Routing        *RoutingRepository
	RoutingStep    *RoutingStepRepository
	BOM            *BOMRepository
	BOMItem        *BOMItemRepository
	ActivityLog    *ActivityLogRepository
	Floor          *FloorRepository
	FloorZone      *FloorZoneRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Department:     NewDepartmentRepository(db),
		User:           NewUserRepository(db),
		Part:           NewPartRepository(db),
		DefectCategory: NewDefectCategoryRepository(db),
		Defect:         NewDefectRepository(db),
		Quality:        NewQualityRepository(db),
		WorkCenter:     NewWorkCenterRepository(db),
		WorkOrder:      NewWorkOrderRepository(db),
		WorkOrderOp:    NewWorkOrderOpRepository(db),
		Routing:        NewRoutingRepository(db),
		RoutingStep:    NewRoutingStepRepository(db),
		BOM:            NewBOMRepository(db),
		BOMItem:        NewBOMItemRepository(db),
		ActivityLog:    NewActivityLogRepository(db),
		Floor:          NewFloorRepository(db),
		FloorZone:      NewFloorZoneRepository(db),
	}
}

// notFound 将gorm的未找到错误统一为ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
