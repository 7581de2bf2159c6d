package service

import (
	"context"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
	"gorm.io/gorm"
)

func setupQuery(t *testing.T) (*QueryService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewQueryService(repository.NewRepositories(db)), db
}

func TestSingularMissReturnsNotFound(t *testing.T) {
	svc, _ := setupQuery(t)
	ctx := context.Background()

	if _, err := svc.GetDepartment(ctx, 1); !isNotFound(err) {
		t.Errorf("department: expected NotFoundError, got %v", err)
	}
	if _, err := svc.GetUserByUsername(ctx, "ghost"); !isNotFound(err) {
		t.Errorf("user by username: expected NotFoundError, got %v", err)
	}
	if _, err := svc.GetWorkOrderByNumber(ctx, "WO-404"); !isNotFound(err) {
		t.Errorf("work order by number: expected NotFoundError, got %v", err)
	}
	if _, err := svc.GetDefectByPart(ctx, 1); !isNotFound(err) {
		t.Errorf("defect by part: expected NotFoundError, got %v", err)
	}
}

func TestCollectionMissReturnsEmptyNotError(t *testing.T) {
	svc, _ := setupQuery(t)
	ctx := context.Background()

	parts, err := svc.GetAllParts(ctx, nil, nil)
	if err != nil {
		t.Fatalf("empty list should not error: %v", err)
	}
	if len(parts) != 0 {
		t.Errorf("expected empty slice, got %d rows", len(parts))
	}

	ops, err := svc.GetWorkOrderOps(ctx, 42)
	if err != nil {
		t.Fatalf("ops of unknown work order should not error: %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("expected empty slice, got %d rows", len(ops))
	}
}

func TestGetByIDAfterSeed(t *testing.T) {
	svc, db := setupQuery(t)
	ctx := context.Background()

	dept := testutil.SeedDepartment(t, db, "Stamping")
	got, err := svc.GetDepartment(ctx, dept.ID)
	if err != nil {
		t.Fatalf("get department: %v", err)
	}
	if got.Title != "Stamping" {
		t.Errorf("expected title Stamping, got %q", got.Title)
	}

	byTitle, err := svc.GetDepartmentByTitle(ctx, "Stamping")
	if err != nil {
		t.Fatalf("get by title: %v", err)
	}
	if byTitle.ID != dept.ID {
		t.Errorf("expected id %d, got %d", dept.ID, byTitle.ID)
	}
}

// Multi-predicate defect lookups return the first storage-order match.
func TestDefectLookupsFirstMatch(t *testing.T) {
	svc, db := setupQuery(t)
	ctx := context.Background()

	dept := testutil.SeedDepartment(t, db, "QA")
	part := testutil.SeedPart(t, db, "casing", &dept.ID)

	cat := &entity.DefectCategory{Title: "finish"}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	first := &entity.Defect{Title: "blemish", PartID: part.ID, DefectCategoryID: cat.ID}
	second := &entity.Defect{Title: "chip", PartID: part.ID, DefectCategoryID: cat.ID}
	db.Create(first)
	db.Create(second)

	got, err := svc.GetDefectByPartAndCategory(ctx, part.ID, cat.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("expected first match %d, got %d", first.ID, got.ID)
	}

	got, err = svc.GetDefectByPartAndDepartment(ctx, part.ID, dept.ID)
	if err != nil {
		t.Fatalf("lookup by department failed: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("expected first match %d, got %d", first.ID, got.ID)
	}
}

func TestGetFloorZonesByFloor(t *testing.T) {
	svc, db := setupQuery(t)
	ctx := context.Background()

	floor := testutil.SeedFloor(t, db, "Plant C")
	db.Create(&entity.FloorZone{FloorID: floor.ID, Name: "inbound"})
	db.Create(&entity.FloorZone{FloorID: floor.ID, Name: "outbound"})

	zones, err := svc.GetFloorZonesByFloor(ctx, floor.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 2 {
		t.Errorf("expected 2 zones, got %d", len(zones))
	}
}
