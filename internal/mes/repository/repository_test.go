package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func TestDepartmentRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	dept := &entity.Department{Title: "Assembly", Description: "final assembly"}
	if err := repos.Department.Create(ctx, dept); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dept.ID == 0 {
		t.Fatal("expected id to be assigned on create")
	}

	got, err := repos.Department.GetByID(ctx, dept.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got.Title != "Assembly" || got.Description != "final assembly" {
		t.Errorf("unexpected row: %+v", got)
	}

	byTitle, err := repos.Department.GetByTitle(ctx, "Assembly")
	if err != nil {
		t.Fatalf("get by title failed: %v", err)
	}
	if byTitle.ID != dept.ID {
		t.Errorf("expected id %d, got %d", dept.ID, byTitle.ID)
	}

	if err := repos.Department.Delete(ctx, got); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repos.Department.GetByID(ctx, dept.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetMissReturnsErrNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	if _, err := repos.Part.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("part miss: expected ErrNotFound, got %v", err)
	}
	if _, err := repos.User.GetByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("user miss: expected ErrNotFound, got %v", err)
	}
	if _, err := repos.WorkOrder.GetByNumber(ctx, "WO-MISSING"); !errors.Is(err, ErrNotFound) {
		t.Errorf("work order miss: expected ErrNotFound, got %v", err)
	}
}

func TestListAppliesPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	for _, name := range []string{"p1", "p2", "p3", "p4", "p5"} {
		if err := repos.Part.Create(ctx, &entity.Part{Name: name}); err != nil {
			t.Fatalf("seed part %s: %v", name, err)
		}
	}

	limit, offset := 2, 2
	page, err := repos.Part.List(ctx, &limit, &offset)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}

	all, err := repos.Part.List(ctx, nil, nil)
	if err != nil {
		t.Fatalf("list with defaults failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected all 5 rows under default limit, got %d", len(all))
	}
}

func TestWorkOrderOpsOrderedBySequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "gearbox", nil)
	wo := testutil.SeedWorkOrder(t, db, "WO-100", part.ID)

	// Insert out of order on purpose
	for _, seq := range []int{30, 10, 20} {
		op := &entity.WorkOrderOp{WorkOrderID: wo.ID, Sequence: seq, Status: entity.OpStatusPending}
		if err := repos.WorkOrderOp.Create(ctx, op); err != nil {
			t.Fatalf("create op seq %d: %v", seq, err)
		}
	}

	ops, err := repos.WorkOrderOp.ListByWorkOrder(ctx, wo.ID)
	if err != nil {
		t.Fatalf("list ops failed: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(ops))
	}
	for i, want := range []int{10, 20, 30} {
		if ops[i].Sequence != want {
			t.Errorf("position %d: expected sequence %d, got %d", i, want, ops[i].Sequence)
		}
	}
}

func TestRoutingStepsOrderedBySequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	part := testutil.SeedPart(t, db, "bracket", nil)
	routing := &entity.Routing{Name: "standard", PartID: part.ID}
	if err := repos.Routing.Create(ctx, routing); err != nil {
		t.Fatalf("create routing: %v", err)
	}

	for _, seq := range []int{3, 1, 2} {
		step := &entity.RoutingStep{RoutingID: routing.ID, Sequence: seq}
		if err := repos.RoutingStep.Create(ctx, step); err != nil {
			t.Fatalf("create step seq %d: %v", seq, err)
		}
	}

	steps, err := repos.RoutingStep.ListByRouting(ctx, routing.ID)
	if err != nil {
		t.Fatalf("list steps failed: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if steps[i].Sequence != want {
			t.Errorf("position %d: expected sequence %d, got %d", i, want, steps[i].Sequence)
		}
	}
}

func TestBOMItemsOrderedByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	parent := testutil.SeedPart(t, db, "assembly", nil)
	compA := testutil.SeedPart(t, db, "bolt", nil)
	compB := testutil.SeedPart(t, db, "nut", nil)

	bom := &entity.BOM{PartID: parent.ID}
	if err := repos.BOM.Create(ctx, bom); err != nil {
		t.Fatalf("create bom: %v", err)
	}

	first := &entity.BOMItem{BOMID: bom.ID, ComponentPartID: compA.ID, Quantity: 4}
	second := &entity.BOMItem{BOMID: bom.ID, ComponentPartID: compB.ID, Quantity: 4}
	if err := repos.BOMItem.Create(ctx, first); err != nil {
		t.Fatalf("create first item: %v", err)
	}
	if err := repos.BOMItem.Create(ctx, second); err != nil {
		t.Fatalf("create second item: %v", err)
	}

	items, err := repos.BOMItem.ListByBOM(ctx, bom.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID >= items[1].ID {
		t.Errorf("expected insertion order by id, got %d then %d", items[0].ID, items[1].ID)
	}
}

func TestFloorZoneDeleteByFloor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	floor := testutil.SeedFloor(t, db, "Plant A")
	other := testutil.SeedFloor(t, db, "Plant B")

	for _, f := range []uint{floor.ID, floor.ID, other.ID} {
		if err := repos.FloorZone.Create(ctx, &entity.FloorZone{FloorID: f, Name: "zone"}); err != nil {
			t.Fatalf("create zone: %v", err)
		}
	}

	if err := repos.FloorZone.DeleteByFloor(ctx, floor.ID); err != nil {
		t.Fatalf("delete by floor failed: %v", err)
	}

	remaining, err := repos.FloorZone.List(ctx, nil, nil)
	if err != nil {
		t.Fatalf("list zones failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].FloorID != other.ID {
		t.Errorf("expected only the other floor's zone to remain, got %+v", remaining)
	}
}

func TestDefectFirstByPredicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	dept := testutil.SeedDepartment(t, db, "QA")
	part := testutil.SeedPart(t, db, "housing", &dept.ID)
	cat := &entity.DefectCategory{Title: "cosmetic"}
	if err := repos.DefectCategory.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}

	d1 := &entity.Defect{Title: "scratch", PartID: part.ID, DefectCategoryID: cat.ID}
	d2 := &entity.Defect{Title: "dent", PartID: part.ID, DefectCategoryID: cat.ID}
	if err := repos.Defect.Create(ctx, d1); err != nil {
		t.Fatalf("create defect: %v", err)
	}
	if err := repos.Defect.Create(ctx, d2); err != nil {
		t.Fatalf("create defect: %v", err)
	}

	got, err := repos.Defect.FirstByPart(ctx, part.ID)
	if err != nil {
		t.Fatalf("first by part failed: %v", err)
	}
	if got.ID != d1.ID {
		t.Errorf("expected first inserted defect %d, got %d", d1.ID, got.ID)
	}

	got, err = repos.Defect.FirstByPartAndCategory(ctx, part.ID, cat.ID)
	if err != nil {
		t.Fatalf("first by part and category failed: %v", err)
	}
	if got.ID != d1.ID {
		t.Errorf("expected defect %d, got %d", d1.ID, got.ID)
	}

	got, err = repos.Defect.FirstByPartAndDepartment(ctx, part.ID, dept.ID)
	if err != nil {
		t.Fatalf("first by part and department failed: %v", err)
	}
	if got.ID != d1.ID {
		t.Errorf("expected defect %d, got %d", d1.ID, got.ID)
	}

	if _, err := repos.Defect.FirstByPart(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown part, got %v", err)
	}
}
