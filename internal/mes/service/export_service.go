package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

// ExportService 导出工单与BOM为xlsx
type ExportService struct {
	repos *repository.Repositories
}

func NewExportService(repos *repository.Repositories) *ExportService {
	return &ExportService{repos: repos}
}

var workOrderExportHeaders = []string{
	"工单号", "状态", "数量", "零件", "部门", "工作中心",
}

// ExportWorkOrders 导出工单列表为xlsx
func (s *ExportService) ExportWorkOrders(ctx context.Context, limit, offset *int) (*excelize.File, string, error) {
	orders, err := s.repos.WorkOrder.List(ctx, limit, offset)
	if err != nil {
		return nil, "", fmt.Errorf("list work orders: %w", err)
	}

	f := excelize.NewFile()
	sheet := "WorkOrders"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range workOrderExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, wo := range orders {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), wo.Number)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), wo.Status)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), wo.Quantity)
		if part, err := s.repos.Part.GetByID(ctx, wo.PartID); err == nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), part.Name)
		}
		if wo.DepartmentID != nil {
			if dept, err := s.repos.Department.GetByID(ctx, *wo.DepartmentID); err == nil {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), dept.Title)
			}
		}
		if wo.WorkCenterID != nil {
			if wc, err := s.repos.WorkCenter.GetByID(ctx, *wo.WorkCenterID); err == nil {
				f.SetCellValue(sheet, fmt.Sprintf("F%d", row), wc.Name)
			}
		}
	}

	colWidths := []float64{16, 10, 8, 24, 16, 16}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f, "work_orders.xlsx", nil
}

var bomExportHeaders = []string{"序号", "组件零件", "数量"}

// ExportBOM 导出单张BOM的行项为xlsx
func (s *ExportService) ExportBOM(ctx context.Context, bomID uint) (*excelize.File, string, error) {
	bom, err := s.repos.BOM.GetByID(ctx, bomID)
	if err != nil {
		return nil, "", asNotFound(err, "bom", bomID)
	}
	part, err := s.repos.Part.GetByID(ctx, bom.PartID)
	if err != nil {
		return nil, "", asNotFound(err, "part", bom.PartID)
	}
	items, err := s.repos.BOMItem.ListByBOM(ctx, bomID)
	if err != nil {
		return nil, "", fmt.Errorf("list bom items: %w", err)
	}

	f := excelize.NewFile()
	sheet := "BOM"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for i, h := range bomExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rowIdx+1)
		if comp, err := s.repos.Part.GetByID(ctx, item.ComponentPartID); err == nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), comp.Name)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.ComponentPartID)
		}
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Quantity)
	}

	colWidths := []float64{6, 28, 10}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	revision := ""
	if bom.Revision != nil {
		revision = "_" + *bom.Revision
	}
	filename := fmt.Sprintf("BOM_%s%s.xlsx", part.Name, revision)
	return f, filename, nil
}
