package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// ---- WorkCenter ----

func (s *MutationService) CreateWorkCenter(ctx context.Context, in WorkCenterInput) (*entity.WorkCenter, error) {
	if in.Name == "" {
		return nil, validationErr("name", "must not be empty")
	}
	if s.policy.UniqueWorkCenterCode && in.Code != nil && *in.Code != "" {
		_, err := s.repos.WorkCenter.GetByCode(ctx, *in.Code)
		absent, err := checkAbsent(err)
		if err != nil {
			return nil, fmt.Errorf("check work center code: %w", err)
		}
		if !absent {
			return nil, conflictErr("work center", "code", *in.Code)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	wc := &entity.WorkCenter{
		Name:         in.Name,
		Code:         in.Code,
		DepartmentID: in.DepartmentID,
	}
	if err := s.repos.WorkCenter.Create(ctx, wc); err != nil {
		if isDuplicate(err) && in.Code != nil {
			return nil, conflictErr("work center", "code", *in.Code)
		}
		return nil, fmt.Errorf("create work center: %w", err)
	}
	return wc, nil
}

// ---- WorkOrder ----

func (s *MutationService) CreateWorkOrder(ctx context.Context, in WorkOrderInput) (*entity.WorkOrder, error) {
	if in.Quantity <= 0 {
		return nil, validationErr("quantity", "must be positive")
	}
	_, err := s.repos.WorkOrder.GetByNumber(ctx, in.Number)
	absent, err := checkAbsent(err)
	if err != nil {
		return nil, fmt.Errorf("check work order number: %w", err)
	}
	if !absent {
		return nil, conflictErr("work order", "number", in.Number)
	}

	part, err := s.repos.Part.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}
	if in.WorkCenterID != nil {
		if _, err := s.repos.WorkCenter.GetByID(ctx, *in.WorkCenterID); err != nil {
			return nil, asNotFound(err, "work center", *in.WorkCenterID)
		}
	}
	if in.DepartmentID != nil {
		if _, err := s.repos.Department.GetByID(ctx, *in.DepartmentID); err != nil {
			return nil, asNotFound(err, "department", *in.DepartmentID)
		}
	}

	// 未指定部门时继承零件所属部门，零件已在上一步确认存在
	departmentID := in.DepartmentID
	if departmentID == nil {
		departmentID = part.DepartmentID
	}

	status := in.Status
	if status == "" {
		status = entity.WOStatusOpen
	}

	wo := &entity.WorkOrder{
		Number:       in.Number,
		Status:       status,
		Quantity:     in.Quantity,
		PartID:       in.PartID,
		DepartmentID: departmentID,
		WorkCenterID: in.WorkCenterID,
	}
	if err := s.repos.WorkOrder.Create(ctx, wo); err != nil {
		if isDuplicate(err) {
			return nil, conflictErr("work order", "number", in.Number)
		}
		return nil, fmt.Errorf("create work order: %w", err)
	}
	return wo, nil
}

// ---- WorkOrderOp ----

func (s *MutationService) CreateWorkOrderOp(ctx context.Context, in WorkOrderOpInput) (*entity.WorkOrderOp, error) {
	if _, err := s.repos.WorkOrder.GetByID(ctx, in.WorkOrderID); err != nil {
		return nil, asNotFound(err, "work order", in.WorkOrderID)
	}
	if in.WorkCenterID != nil {
		if _, err := s.repos.WorkCenter.GetByID(ctx, *in.WorkCenterID); err != nil {
			return nil, asNotFound(err, "work center", *in.WorkCenterID)
		}
	}

	status := in.Status
	if status == "" {
		status = entity.OpStatusPending
	}

	op := &entity.WorkOrderOp{
		WorkOrderID:  in.WorkOrderID,
		Sequence:     in.Sequence,
		WorkCenterID: in.WorkCenterID,
		Status:       status,
	}
	if err := s.repos.WorkOrderOp.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("create work order op: %w", err)
	}
	return op, nil
}

// ---- Routing ----

func (s *MutationService) CreateRouting(ctx context.Context, in RoutingInput) (*entity.Routing, error) {
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}

	routing := &entity.Routing{
		Name:    in.Name,
		PartID:  in.PartID,
		Version: in.Version,
	}
	if err := s.repos.Routing.Create(ctx, routing); err != nil {
		return nil, fmt.Errorf("create routing: %w", err)
	}
	return routing, nil
}

func (s *MutationService) CreateRoutingStep(ctx context.Context, in RoutingStepInput) (*entity.RoutingStep, error) {
	if in.StandardMinutes < 0 {
		return nil, validationErr("standard_minutes", "must not be negative")
	}
	if _, err := s.repos.Routing.GetByID(ctx, in.RoutingID); err != nil {
		return nil, asNotFound(err, "routing", in.RoutingID)
	}
	if in.WorkCenterID != nil {
		if _, err := s.repos.WorkCenter.GetByID(ctx, *in.WorkCenterID); err != nil {
			return nil, asNotFound(err, "work center", *in.WorkCenterID)
		}
	}

	step := &entity.RoutingStep{
		RoutingID:       in.RoutingID,
		Sequence:        in.Sequence,
		WorkCenterID:    in.WorkCenterID,
		Description:     in.Description,
		StandardMinutes: in.StandardMinutes,
	}
	if err := s.repos.RoutingStep.Create(ctx, step); err != nil {
		return nil, fmt.Errorf("create routing step: %w", err)
	}
	return step, nil
}

// ---- BOM ----

func (s *MutationService) CreateBOM(ctx context.Context, in BOMInput) (*entity.BOM, error) {
	if _, err := s.repos.Part.GetByID(ctx, in.PartID); err != nil {
		return nil, asNotFound(err, "part", in.PartID)
	}

	bom := &entity.BOM{PartID: in.PartID, Revision: in.Revision}
	if err := s.repos.BOM.Create(ctx, bom); err != nil {
		return nil, fmt.Errorf("create bom: %w", err)
	}
	return bom, nil
}

func (s *MutationService) CreateBOMItem(ctx context.Context, in BOMItemInput) (*entity.BOMItem, error) {
	if in.Quantity <= 0 {
		return nil, validationErr("quantity", "must be positive")
	}
	if _, err := s.repos.BOM.GetByID(ctx, in.BOMID); err != nil {
		return nil, asNotFound(err, "bom", in.BOMID)
	}
	if _, err := s.repos.Part.GetByID(ctx, in.ComponentPartID); err != nil {
		return nil, asNotFound(err, "part", in.ComponentPartID)
	}

	item := &entity.BOMItem{
		BOMID:           in.BOMID,
		ComponentPartID: in.ComponentPartID,
		Quantity:        in.Quantity,
	}
	if err := s.repos.BOMItem.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create bom item: %w", err)
	}
	return item, nil
}

// ---- ActivityLog ----

// CreateActivityLog 追加操作日志。日志对 User/Part/Department/WorkOrder
// 为松散引用，不做外键校验；created_at 由存储层在插入时生成。
func (s *MutationService) CreateActivityLog(ctx context.Context, in ActivityLogInput) (*entity.ActivityLog, error) {
	log := &entity.ActivityLog{
		UserID:       in.UserID,
		PartID:       in.PartID,
		DepartmentID: in.DepartmentID,
		WorkOrderID:  in.WorkOrderID,
		EventType:    in.EventType,
		Message:      in.Message,
	}
	if err := s.repos.ActivityLog.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create activity log: %w", err)
	}

	s.events.Publish(ctx, log)
	return log, nil
}
