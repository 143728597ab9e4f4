package generate_excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"usinagem-golang/internal/service/filter"
	"usinagem-golang/internal/storage"
)

type RecordLister interface {
	Records(ctx context.Context, spec filter.Spec) ([]storage.ProductionRecord, error)
}

type GenerateExcelService struct {
	records RecordLister
}

func NewGenerateService(records RecordLister) *GenerateExcelService {
	return &GenerateExcelService{records: records}
}

var reportHeaders = []string{
	"Fábrica", "Peça", "Material", "Data", "Quantidade", "Status",
	"Centro (h)", "Torno (h)", "Programação (h)", "Total (h)", "Requisição",
}

// GenerateExcel exporta os registros filtrados na mesma ordem das tabelas
// do dashboard (data decrescente).
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, spec filter.Spec) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	records, err := g.records.Records(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Apontamentos"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	for i, name := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, rec := range records {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, cellName(1, rowNum), rec.RequestingFactory)
		f.SetCellValue(sheet, cellName(2, rowNum), rec.PartName)
		f.SetCellValue(sheet, cellName(3, rowNum), rec.Material)
		f.SetCellValue(sheet, cellName(4, rowNum), rec.Date.Format("02/01/2006"))
		f.SetCellValue(sheet, cellName(5, rowNum), rec.Quantity)
		f.SetCellValue(sheet, cellName(6, rowNum), rec.Status)
		f.SetCellValue(sheet, cellName(7, rowNum), rec.CentroTime)
		f.SetCellValue(sheet, cellName(8, rowNum), rec.TornoTime)
		f.SetCellValue(sheet, cellName(9, rowNum), rec.ProgramacaoTime)
		f.SetCellValue(sheet, cellName(10, rowNum), rec.ManufacturingTime)
		if rec.RequestID != 0 {
			f.SetCellValue(sheet, cellName(11, rowNum), rec.RequestID)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
