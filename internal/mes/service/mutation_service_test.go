package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func setupMutation(t *testing.T) (*MutationService, *QueryService, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewMutationService(repos, nil, testutil.TestPolicy()), NewQueryService(repos), repos
}

func isConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func isNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Scenario A: duplicate department title is rejected with Conflict.
func TestCreateDepartmentDuplicateTitle(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	dept, err := svc.CreateDepartment(ctx, DepartmentInput{Title: "Assembly"})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if dept.ID == 0 {
		t.Fatal("expected assigned id")
	}

	_, err = svc.CreateDepartment(ctx, DepartmentInput{Title: "Assembly"})
	if !isConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

// Scenario B: work order without department inherits the part's department.
func TestCreateWorkOrderInheritsDepartment(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	dept, err := svc.CreateDepartment(ctx, DepartmentInput{Title: "Machining"})
	if err != nil {
		t.Fatalf("create department: %v", err)
	}
	part, err := svc.CreatePart(ctx, PartInput{Name: "Bolt", DepartmentID: &dept.ID})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	wo, err := svc.CreateWorkOrder(ctx, WorkOrderInput{Number: "WO-1", PartID: part.ID, Quantity: 10})
	if err != nil {
		t.Fatalf("create work order: %v", err)
	}
	if wo.DepartmentID == nil || *wo.DepartmentID != dept.ID {
		t.Errorf("expected inherited department %d, got %v", dept.ID, wo.DepartmentID)
	}
	if wo.Status != entity.WOStatusOpen {
		t.Errorf("expected default status %q, got %q", entity.WOStatusOpen, wo.Status)
	}
}

// An explicit department on the work order wins over the part's department.
func TestCreateWorkOrderExplicitDepartmentWins(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	partDept, _ := svc.CreateDepartment(ctx, DepartmentInput{Title: "Machining"})
	woDept, _ := svc.CreateDepartment(ctx, DepartmentInput{Title: "Assembly"})
	part, err := svc.CreatePart(ctx, PartInput{Name: "Bolt", DepartmentID: &partDept.ID})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	wo, err := svc.CreateWorkOrder(ctx, WorkOrderInput{
		Number: "WO-2", PartID: part.ID, Quantity: 5, DepartmentID: &woDept.ID,
	})
	if err != nil {
		t.Fatalf("create work order: %v", err)
	}
	if wo.DepartmentID == nil || *wo.DepartmentID != woDept.ID {
		t.Errorf("expected explicit department %d, got %v", woDept.ID, wo.DepartmentID)
	}
}

// Scenario C: a missing part fails the work order create, and nothing is persisted.
func TestCreateWorkOrderMissingPart(t *testing.T) {
	svc, query, _ := setupMutation(t)
	ctx := context.Background()

	_, err := svc.CreateWorkOrder(ctx, WorkOrderInput{Number: "WO-1", PartID: 999, Quantity: 10})
	if !isNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	orders, err := query.GetAllWorkOrders(ctx, nil, nil)
	if err != nil {
		t.Fatalf("list work orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no work order rows, got %d", len(orders))
	}
}

func TestCreateWorkOrderRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	for _, qty := range []int{0, -3} {
		if _, err := svc.CreateWorkOrder(ctx, WorkOrderInput{Number: "WO-X", PartID: 1, Quantity: qty}); !isValidation(err) {
			t.Errorf("quantity %d: expected ValidationError, got %v", qty, err)
		}
	}
}

func TestCreateWorkOrderDuplicateNumber(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Gear"})
	if _, err := svc.CreateWorkOrder(ctx, WorkOrderInput{Number: "WO-1", PartID: part.ID, Quantity: 1}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateWorkOrder(ctx, WorkOrderInput{Number: "WO-1", PartID: part.ID, Quantity: 1}); !isConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

// Scenario D: deleting a floor removes its zones in the same transaction.
func TestDeleteFloorCascadesZones(t *testing.T) {
	svc, query, _ := setupMutation(t)
	ctx := context.Background()

	floor, err := svc.CreateFloor(ctx, FloorInput{Name: "Plant A"})
	if err != nil {
		t.Fatalf("create floor: %v", err)
	}
	zone, err := svc.CreateFloorZone(ctx, FloorZoneInput{
		FloorID: floor.ID, Name: "Zone 1", Polygon: "0,0 10,0 10,10 0,10",
	})
	if err != nil {
		t.Fatalf("create zone: %v", err)
	}

	if err := svc.DeleteFloor(ctx, floor.ID); err != nil {
		t.Fatalf("delete floor: %v", err)
	}

	if _, err := query.GetFloorZone(ctx, zone.ID); !isNotFound(err) {
		t.Errorf("expected zone to be gone, got %v", err)
	}
	if _, err := query.GetFloor(ctx, floor.ID); !isNotFound(err) {
		t.Errorf("expected floor to be gone, got %v", err)
	}
}

func TestUpdateKeepsUniquenessCheckConditional(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	dept, err := svc.CreateDepartment(ctx, DepartmentInput{Title: "Paint"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Same title resent: must not conflict with itself
	updated, err := svc.UpdateDepartment(ctx, dept.ID, DepartmentInput{Title: "Paint", Description: "booth 2"})
	if err != nil {
		t.Fatalf("update with unchanged title failed: %v", err)
	}
	if updated.Description != "booth 2" {
		t.Errorf("expected description replaced, got %q", updated.Description)
	}

	// Changing to a title held by another row must conflict
	if _, err := svc.CreateDepartment(ctx, DepartmentInput{Title: "Welding"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := svc.UpdateDepartment(ctx, dept.ID, DepartmentInput{Title: "Welding"}); !isConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestUpdateIsFullFieldReplacement(t *testing.T) {
	svc, query, _ := setupMutation(t)
	ctx := context.Background()

	dept, _ := svc.CreateDepartment(ctx, DepartmentInput{Title: "QA"})
	user, err := svc.CreateUser(ctx, UserInput{Username: "chen", DepartmentID: &dept.ID, Job: "inspector", Time: 8})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Omitted fields are zeroed, not preserved
	if _, err := svc.UpdateUser(ctx, user.ID, UserInput{Username: "chen"}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	got, err := query.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Job != "" || got.Time != 0 || got.DepartmentID != nil {
		t.Errorf("expected full replacement, got %+v", got)
	}
}

func TestUpdateMissingRowReturnsNotFound(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	if _, err := svc.UpdateDepartment(ctx, 404, DepartmentInput{Title: "X"}); !isNotFound(err) {
		t.Errorf("update: expected NotFoundError, got %v", err)
	}
	if err := svc.DeleteDepartment(ctx, 404); !isNotFound(err) {
		t.Errorf("delete: expected NotFoundError, got %v", err)
	}
}

func TestCreateUserValidatesDepartment(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	missing := uint(77)
	_, err := svc.CreateUser(ctx, UserInput{Username: "li", DepartmentID: &missing})
	if !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing department, got %v", err)
	}
}

func TestCreateDefectValidatesBothParents(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Shaft"})

	_, err := svc.CreateDefect(ctx, DefectInput{Title: "crack", PartID: part.ID, DefectCategoryID: 55})
	if !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing category, got %v", err)
	}
	_, err = svc.CreateDefect(ctx, DefectInput{Title: "crack", PartID: 55, DefectCategoryID: 1})
	if !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing part, got %v", err)
	}
}

func TestDefectCategoryUniquenessPolicy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	strict := NewMutationService(repos, nil, config.PolicyConfig{UniqueDefectCategoryTitle: true})
	if _, err := strict.CreateDefectCategory(ctx, DefectCategoryInput{Title: "surface"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := strict.CreateDefectCategory(ctx, DefectCategoryInput{Title: "surface"}); !isConflict(err) {
		t.Fatalf("strict policy: expected ConflictError, got %v", err)
	}

	loose := NewMutationService(repos, nil, config.PolicyConfig{UniqueDefectCategoryTitle: false})
	if _, err := loose.CreateDefectCategory(ctx, DefectCategoryInput{Title: "surface"}); err != nil {
		t.Fatalf("loose policy: duplicate title should be allowed, got %v", err)
	}
}

func TestWorkCenterCodeUniquenessPolicy(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	code := "WC-01"
	if _, err := svc.CreateWorkCenter(ctx, WorkCenterInput{Name: "Lathe 1", Code: &code}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateWorkCenter(ctx, WorkCenterInput{Name: "Lathe 2", Code: &code}); !isConflict(err) {
		t.Fatalf("expected ConflictError on duplicate code, got %v", err)
	}

	// Work centers without a code never conflict
	if _, err := svc.CreateWorkCenter(ctx, WorkCenterInput{Name: "Bench 1"}); err != nil {
		t.Fatalf("codeless create: %v", err)
	}
	if _, err := svc.CreateWorkCenter(ctx, WorkCenterInput{Name: "Bench 2"}); err != nil {
		t.Fatalf("second codeless create: %v", err)
	}
}

func TestCreateQualityValidation(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Plate"})
	pass := true

	if _, err := svc.CreateQuality(ctx, QualityInput{PassFail: &pass, DefectCount: -1, PartID: part.ID}); !isValidation(err) {
		t.Errorf("expected ValidationError for negative defect count, got %v", err)
	}

	q, err := svc.CreateQuality(ctx, QualityInput{PassFail: &pass, DefectCount: 0, PartID: part.ID})
	if err != nil {
		t.Fatalf("create quality: %v", err)
	}
	if !q.PassFail {
		t.Error("expected pass_fail true")
	}
}

// pass_fail has no sensible default: omitting it is a validation failure,
// on create and update alike.
func TestQualityRequiresPassFail(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Plate"})

	if _, err := svc.CreateQuality(ctx, QualityInput{PartID: part.ID}); !isValidation(err) {
		t.Errorf("create: expected ValidationError for missing pass_fail, got %v", err)
	}

	pass := true
	q, err := svc.CreateQuality(ctx, QualityInput{PassFail: &pass, PartID: part.ID})
	if err != nil {
		t.Fatalf("create quality: %v", err)
	}
	if _, err := svc.UpdateQuality(ctx, q.ID, QualityInput{PartID: part.ID}); !isValidation(err) {
		t.Errorf("update: expected ValidationError for missing pass_fail, got %v", err)
	}
}

// Updates enforce the same non-empty natural keys as creates.
func TestUpdateRejectsEmptyNaturalKey(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	dept, _ := svc.CreateDepartment(ctx, DepartmentInput{Title: "Paint"})
	if _, err := svc.UpdateDepartment(ctx, dept.ID, DepartmentInput{Title: ""}); !isValidation(err) {
		t.Errorf("department: expected ValidationError for empty title, got %v", err)
	}

	user, _ := svc.CreateUser(ctx, UserInput{Username: "chen"})
	if _, err := svc.UpdateUser(ctx, user.ID, UserInput{Username: ""}); !isValidation(err) {
		t.Errorf("user: expected ValidationError for empty username, got %v", err)
	}

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Bolt"})
	if _, err := svc.UpdatePart(ctx, part.ID, PartInput{Name: ""}); !isValidation(err) {
		t.Errorf("part: expected ValidationError for empty name, got %v", err)
	}

	cat, _ := svc.CreateDefectCategory(ctx, DefectCategoryInput{Title: "surface"})
	if _, err := svc.UpdateDefectCategory(ctx, cat.ID, DefectCategoryInput{Title: ""}); !isValidation(err) {
		t.Errorf("defect category: expected ValidationError for empty title, got %v", err)
	}

	floor, _ := svc.CreateFloor(ctx, FloorInput{Name: "Plant A"})
	if _, err := svc.UpdateFloor(ctx, floor.ID, FloorInput{Name: ""}); !isValidation(err) {
		t.Errorf("floor: expected ValidationError for empty name, got %v", err)
	}
}

func TestCreateBOMItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	parent, _ := svc.CreatePart(ctx, PartInput{Name: "Frame"})
	comp, _ := svc.CreatePart(ctx, PartInput{Name: "Rivet"})
	bom, err := svc.CreateBOM(ctx, BOMInput{PartID: parent.ID})
	if err != nil {
		t.Fatalf("create bom: %v", err)
	}

	if _, err := svc.CreateBOMItem(ctx, BOMItemInput{BOMID: bom.ID, ComponentPartID: comp.ID, Quantity: 0}); !isValidation(err) {
		t.Errorf("expected ValidationError for zero quantity, got %v", err)
	}
	if _, err := svc.CreateBOMItem(ctx, BOMItemInput{BOMID: bom.ID, ComponentPartID: comp.ID, Quantity: 8}); err != nil {
		t.Fatalf("valid item failed: %v", err)
	}
}

func TestCreateRoutingStepValidation(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	part, _ := svc.CreatePart(ctx, PartInput{Name: "Axle"})
	routing, err := svc.CreateRouting(ctx, RoutingInput{Name: "std", PartID: part.ID})
	if err != nil {
		t.Fatalf("create routing: %v", err)
	}

	if _, err := svc.CreateRoutingStep(ctx, RoutingStepInput{RoutingID: routing.ID, Sequence: 1, StandardMinutes: -1}); !isValidation(err) {
		t.Errorf("expected ValidationError for negative minutes, got %v", err)
	}
	if _, err := svc.CreateRoutingStep(ctx, RoutingStepInput{RoutingID: 99, Sequence: 1}); !isNotFound(err) {
		t.Errorf("expected NotFoundError for missing routing, got %v", err)
	}
}

// Activity logs reference other entities loosely: no FK validation.
func TestCreateActivityLogSkipsFKValidation(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	missing := uint(12345)
	log, err := svc.CreateActivityLog(ctx, ActivityLogInput{
		EventType: "wo.created", Message: "by hand", WorkOrderID: &missing, UserID: &missing,
	})
	if err != nil {
		t.Fatalf("create activity log: %v", err)
	}
	if log.CreatedAt.IsZero() {
		t.Error("expected created_at to be populated")
	}
}

func TestFloorZoneValidatesReferences(t *testing.T) {
	svc, _, _ := setupMutation(t)
	ctx := context.Background()

	if _, err := svc.CreateFloorZone(ctx, FloorZoneInput{FloorID: 1, Name: "Z"}); !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing floor, got %v", err)
	}

	floor, _ := svc.CreateFloor(ctx, FloorInput{Name: "Plant B"})
	missing := uint(500)
	if _, err := svc.CreateFloorZone(ctx, FloorZoneInput{FloorID: floor.ID, Name: "Z", DepartmentID: &missing}); !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing department, got %v", err)
	}
	if _, err := svc.CreateFloorZone(ctx, FloorZoneInput{FloorID: floor.ID, Name: "Z", WorkCenterID: &missing}); !isNotFound(err) {
		t.Fatalf("expected NotFoundError for missing work center, got %v", err)
	}
}
