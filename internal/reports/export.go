package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	detailSheet  = "Details"
)

// FileName is the download name for r in the given extension.
func FileName(r Report, ext string) string {
	return fmt.Sprintf("inventory-pro-%s-%s.%s", r.Kind, r.GeneratedAt.Format("2006-01-02"), ext)
}

// WriteCSV serialises the headline figures followed by the detail table.
func WriteCSV(w io.Writer, r Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	records := [][]string{
		{"Report", r.Title},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Metric", "Value"},
	}
	for _, s := range r.Stats {
		records = append(records, []string{s.Label, s.Value.StringFixed(2)})
	}
	if len(r.Table.Columns) > 0 {
		records = append(records, []string{}, r.Table.Columns)
		records = append(records, r.Table.Rows...)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes a workbook with a summary sheet and a detail sheet.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(summarySheet, "A1", r.Title); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "A2", "Generated "+r.GeneratedAt.Format("2006-01-02 15:04")); err != nil {
		return err
	}
	if err := f.SetSheetRow(summarySheet, "A4", &[]any{"Metric", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B4", bold); err != nil {
		return err
	}
	for i, s := range r.Stats {
		row := 5 + i
		value, _ := s.Value.Float64()
		if err := f.SetSheetRow(summarySheet, cell(1, row), &[]any{s.Label, value}); err != nil {
			return err
		}
		if s.Money {
			if err := f.SetCellStyle(summarySheet, cell(2, row), cell(2, row), money); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}

	if len(r.Table.Columns) > 0 {
		header := make([]any, len(r.Table.Columns))
		for i, c := range r.Table.Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
			return err
		}
		if err := f.SetCellStyle(detailSheet, "A1", cell(len(header), 1), bold); err != nil {
			return err
		}
		for i, row := range r.Table.Rows {
			values := make([]any, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(detailSheet, cell(1, i+2), &values); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(detailSheet, "A", "A", 28); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}
