package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

// QueryService 组合各仓库提供只读查询。单条查询未命中返回NotFoundError，
// 集合查询未命中返回空切片而不是错误。
type QueryService struct {
	repos *repository.Repositories
}

func NewQueryService(repos *repository.Repositories) *QueryService {
	return &QueryService{repos: repos}
}

// asNotFound 将仓库的未命中错误转为带实体与键的领域错误
func asNotFound(err error, entity string, key interface{}) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr(entity, key)
	}
	return fmt.Errorf("lookup %s %v: %w", entity, key, err)
}

// ---- Departments ----

func (s *QueryService) GetAllDepartments(ctx context.Context, limit, offset *int) ([]entity.Department, error) {
	return s.repos.Department.List(ctx, limit, offset)
}

func (s *QueryService) GetDepartment(ctx context.Context, id uint) (*entity.Department, error) {
	dept, err := s.repos.Department.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "department", id)
	}
	return dept, nil
}

func (s *QueryService) GetDepartmentByTitle(ctx context.Context, title string) (*entity.Department, error) {
	dept, err := s.repos.Department.GetByTitle(ctx, title)
	if err != nil {
		return nil, asNotFound(err, "department", title)
	}
	return dept, nil
}

// ---- Users ----

func (s *QueryService) GetAllUsers(ctx context.Context, limit, offset *int) ([]entity.User, error) {
	return s.repos.User.List(ctx, limit, offset)
}

func (s *QueryService) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "user", id)
	}
	return user, nil
}

func (s *QueryService) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repos.User.GetByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err, "user", username)
	}
	return user, nil
}

// ---- Parts ----

func (s *QueryService) GetAllParts(ctx context.Context, limit, offset *int) ([]entity.Part, error) {
	return s.repos.Part.List(ctx, limit, offset)
}

func (s *QueryService) GetPart(ctx context.Context, id uint) (*entity.Part, error) {
	part, err := s.repos.Part.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "part", id)
	}
	return part, nil
}

// ---- Defect categories ----

func (s *QueryService) GetAllDefectCategories(ctx context.Context, limit, offset *int) ([]entity.DefectCategory, error) {
	return s.repos.DefectCategory.List(ctx, limit, offset)
}

func (s *QueryService) GetDefectCategory(ctx context.Context, id uint) (*entity.DefectCategory, error) {
	cat, err := s.repos.DefectCategory.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "defect category", id)
	}
	return cat, nil
}

// ---- Defects ----

func (s *QueryService) GetAllDefects(ctx context.Context, limit, offset *int) ([]entity.Defect, error) {
	return s.repos.Defect.List(ctx, limit, offset)
}

func (s *QueryService) GetDefect(ctx context.Context, id uint) (*entity.Defect, error) {
	defect, err := s.repos.Defect.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "defect", id)
	}
	return defect, nil
}

// GetDefectByPart 返回零件的首条缺陷。多谓词查询取首条命中，
// 不保证唯一，调用方不可据此假设只有一条。
func (s *QueryService) GetDefectByPart(ctx context.Context, partID uint) (*entity.Defect, error) {
	defect, err := s.repos.Defect.FirstByPart(ctx, partID)
	if err != nil {
		return nil, asNotFound(err, "defect for part", partID)
	}
	return defect, nil
}

func (s *QueryService) GetDefectByCategory(ctx context.Context, categoryID uint) (*entity.Defect, error) {
	defect, err := s.repos.Defect.FirstByCategory(ctx, categoryID)
	if err != nil {
		return nil, asNotFound(err, "defect for category", categoryID)
	}
	return defect, nil
}

func (s *QueryService) GetDefectByPartAndCategory(ctx context.Context, partID, categoryID uint) (*entity.Defect, error) {
	defect, err := s.repos.Defect.FirstByPartAndCategory(ctx, partID, categoryID)
	if err != nil {
		return nil, asNotFound(err, "defect for part and category", fmt.Sprintf("%d/%d", partID, categoryID))
	}
	return defect, nil
}

func (s *QueryService) GetDefectByPartAndDepartment(ctx context.Context, partID, departmentID uint) (*entity.Defect, error) {
	defect, err := s.repos.Defect.FirstByPartAndDepartment(ctx, partID, departmentID)
	if err != nil {
		return nil, asNotFound(err, "defect for part and department", fmt.Sprintf("%d/%d", partID, departmentID))
	}
	return defect, nil
}

// ---- Quality ----

func (s *QueryService) GetAllQualities(ctx context.Context, limit, offset *int) ([]entity.Quality, error) {
	return s.repos.Quality.List(ctx, limit, offset)
}

func (s *QueryService) GetQuality(ctx context.Context, id uint) (*entity.Quality, error) {
	q, err := s.repos.Quality.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "quality", id)
	}
	return q, nil
}

func (s *QueryService) GetQualityByPart(ctx context.Context, partID uint) (*entity.Quality, error) {
	q, err := s.repos.Quality.FirstByPart(ctx, partID)
	if err != nil {
		return nil, asNotFound(err, "quality for part", partID)
	}
	return q, nil
}

// ---- Work centers ----

func (s *QueryService) GetAllWorkCenters(ctx context.Context, limit, offset *int) ([]entity.WorkCenter, error) {
	return s.repos.WorkCenter.List(ctx, limit, offset)
}

func (s *QueryService) GetWorkCenter(ctx context.Context, id uint) (*entity.WorkCenter, error) {
	wc, err := s.repos.WorkCenter.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "work center", id)
	}
	return wc, nil
}

// ---- Work orders ----

func (s *QueryService) GetAllWorkOrders(ctx context.Context, limit, offset *int) ([]entity.WorkOrder, error) {
	return s.repos.WorkOrder.List(ctx, limit, offset)
}

func (s *QueryService) GetWorkOrder(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	wo, err := s.repos.WorkOrder.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "work order", id)
	}
	return wo, nil
}

func (s *QueryService) GetWorkOrderByNumber(ctx context.Context, number string) (*entity.WorkOrder, error) {
	wo, err := s.repos.WorkOrder.GetByNumber(ctx, number)
	if err != nil {
		return nil, asNotFound(err, "work order", number)
	}
	return wo, nil
}

// ---- Work order ops ----

func (s *QueryService) GetAllWorkOrderOps(ctx context.Context, limit, offset *int) ([]entity.WorkOrderOp, error) {
	return s.repos.WorkOrderOp.List(ctx, limit, offset)
}

func (s *QueryService) GetWorkOrderOps(ctx context.Context, workOrderID uint) ([]entity.WorkOrderOp, error) {
	return s.repos.WorkOrderOp.ListByWorkOrder(ctx, workOrderID)
}

// ---- Routings ----

func (s *QueryService) GetAllRoutings(ctx context.Context, limit, offset *int) ([]entity.Routing, error) {
	return s.repos.Routing.List(ctx, limit, offset)
}

func (s *QueryService) GetRouting(ctx context.Context, id uint) (*entity.Routing, error) {
	routing, err := s.repos.Routing.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "routing", id)
	}
	return routing, nil
}

func (s *QueryService) GetAllRoutingSteps(ctx context.Context, limit, offset *int) ([]entity.RoutingStep, error) {
	return s.repos.RoutingStep.List(ctx, limit, offset)
}

func (s *QueryService) GetRoutingSteps(ctx context.Context, routingID uint) ([]entity.RoutingStep, error) {
	return s.repos.RoutingStep.ListByRouting(ctx, routingID)
}

// ---- BOMs ----

func (s *QueryService) GetAllBOMs(ctx context.Context, limit, offset *int) ([]entity.BOM, error) {
	return s.repos.BOM.List(ctx, limit, offset)
}

func (s *QueryService) GetBOM(ctx context.Context, id uint) (*entity.BOM, error) {
	bom, err := s.repos.BOM.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "bom", id)
	}
	return bom, nil
}

func (s *QueryService) GetAllBOMItems(ctx context.Context, limit, offset *int) ([]entity.BOMItem, error) {
	return s.repos.BOMItem.List(ctx, limit, offset)
}

func (s *QueryService) GetBOMItems(ctx context.Context, bomID uint) ([]entity.BOMItem, error) {
	return s.repos.BOMItem.ListByBOM(ctx, bomID)
}

// ---- Activity logs ----

func (s *QueryService) GetAllActivityLogs(ctx context.Context, limit, offset *int) ([]entity.ActivityLog, error) {
	return s.repos.ActivityLog.List(ctx, limit, offset)
}

func (s *QueryService) GetActivityLogsForWorkOrder(ctx context.Context, workOrderID uint) ([]entity.ActivityLog, error) {
	return s.repos.ActivityLog.ListByWorkOrder(ctx, workOrderID)
}

// ---- Floors & zones ----

func (s *QueryService) GetAllFloors(ctx context.Context, limit, offset *int) ([]entity.Floor, error) {
	return s.repos.Floor.List(ctx, limit, offset)
}

func (s *QueryService) GetFloor(ctx context.Context, id uint) (*entity.Floor, error) {
	floor, err := s.repos.Floor.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "floor", id)
	}
	return floor, nil
}

func (s *QueryService) GetAllFloorZones(ctx context.Context, limit, offset *int) ([]entity.FloorZone, error) {
	return s.repos.FloorZone.List(ctx, limit, offset)
}

func (s *QueryService) GetFloorZone(ctx context.Context, id uint) (*entity.FloorZone, error) {
	zone, err := s.repos.FloorZone.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "floor zone", id)
	}
	return zone, nil
}

func (s *QueryService) GetFloorZonesByFloor(ctx context.Context, floorID uint) ([]entity.FloorZone, error) {
	return s.repos.FloorZone.ListByFloor(ctx, floorID)
}
