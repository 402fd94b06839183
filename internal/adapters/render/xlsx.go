package render

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/medalboard/pkg/metrics"
)

// DataBar shades a numeric column with an in-cell bar.
type DataBar struct {
	Column int
	Color  string
}

// Sheet is one worksheet of a workbook. Columns and DataBar.Column are
// zero-based.
type Sheet struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]any
	Bars    []DataBar
	Width   float64
}

// XLSX writes the sheets to a single workbook in order.
func XLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("xlsx: %w", ErrNoChart)
	}
	start := time.Now()
	defer func() {
		metrics.RecordImageLatency("xlsx", float64(time.Since(start).Microseconds())/1000.0)
	}()

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	caption, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return fmt.Errorf("xlsx title style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return fmt.Errorf("xlsx sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("xlsx sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, header, caption); err != nil {
			return fmt.Errorf("xlsx sheet %q: %w", s.Name, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s Sheet, header, caption int) error {
	row := 1
	if s.Title != "" {
		if err := f.SetCellValue(s.Name, "A1", s.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", "A1", caption); err != nil {
			return err
		}
		row = 3
	}
	headerRow := row

	width := s.Width
	if width == 0 {
		width = 16
	}
	for i, name := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(s.Name, cell, name); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return err
		}
	}
	if len(s.Columns) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(s.Columns), row)
		if err := f.SetCellStyle(s.Name, first, last, header); err != nil {
			return err
		}
	}

	for _, values := range s.Rows {
		row++
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(s.Name, cell, v); err != nil {
				return err
			}
		}
	}

	if row == headerRow {
		return nil
	}
	for _, bar := range s.Bars {
		from, err := excelize.CoordinatesToCellName(bar.Column+1, headerRow+1)
		if err != nil {
			return err
		}
		to, err := excelize.CoordinatesToCellName(bar.Column+1, row)
		if err != nil {
			return err
		}
		err = f.SetConditionalFormat(s.Name, from+":"+to, []excelize.ConditionalFormatOptions{{
			Type:     "data_bar",
			Criteria: "=",
			MinType:  "min",
			MaxType:  "max",
			BarColor: bar.Color,
		}})
		if err != nil {
			return err
		}
	}
	return nil
}
