package service

import (
	"context"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func TestExportWorkOrders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewExportService(repos)
	ctx := context.Background()

	dept := testutil.SeedDepartment(t, db, "Assembly")
	part := testutil.SeedPart(t, db, "Bolt", &dept.ID)
	testutil.SeedWorkOrder(t, db, "WO-1", part.ID)
	testutil.SeedWorkOrder(t, db, "WO-2", part.ID)

	f, filename, err := svc.ExportWorkOrders(ctx, nil, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()
	if filename != "work_orders.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	rows, err := f.GetRows("WorkOrders")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// Header plus two data rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "WO-1" || rows[2][0] != "WO-2" {
		t.Errorf("unexpected numbers: %v / %v", rows[1], rows[2])
	}
}

func TestExportBOM(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	mut := NewMutationService(repos, nil, testutil.TestPolicy())
	svc := NewExportService(repos)
	ctx := context.Background()

	parent, _ := mut.CreatePart(ctx, PartInput{Name: "Frame"})
	comp, _ := mut.CreatePart(ctx, PartInput{Name: "Rivet"})
	rev := "B"
	bom, err := mut.CreateBOM(ctx, BOMInput{PartID: parent.ID, Revision: &rev})
	if err != nil {
		t.Fatalf("create bom: %v", err)
	}
	if _, err := mut.CreateBOMItem(ctx, BOMItemInput{BOMID: bom.ID, ComponentPartID: comp.ID, Quantity: 12}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	f, filename, err := svc.ExportBOM(ctx, bom.ID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer f.Close()
	if filename != "BOM_Frame_B.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}

	rows, err := f.GetRows("BOM")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one item, got %d rows", len(rows))
	}
	if rows[1][1] != "Rivet" {
		t.Errorf("expected component name Rivet, got %v", rows[1])
	}

	if _, _, err := svc.ExportBOM(ctx, 999); !isNotFound(err) {
		t.Errorf("expected NotFoundError for missing bom, got %v", err)
	}
}
