package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type styles struct {
	header    int
	wrap      int
	percent   int
	excellent int
	good      int
	fair      int
	poor      int
}

func fill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func newStyles(f *excelize.File) (*styles, error) {
	st := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      fill("4472C4"),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorder,
		}},
		{&st.wrap, &excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
			Border:    thinBorder,
		}},
		{&st.percent, &excelize.Style{NumFmt: 10}},
		{&st.excellent, &excelize.Style{Fill: fill("C6EFCE"), Border: thinBorder}},
		{&st.good, &excelize.Style{Fill: fill("FFEB9C"), Border: thinBorder}},
		{&st.fair, &excelize.Style{Fill: fill("FFC7CE"), Border: thinBorder}},
		{&st.poor, &excelize.Style{Fill: fill("FF9999"), Border: thinBorder}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

// forScore picks the fill for an ATS score band
func (s *styles) forScore(score int) int {
	switch {
	case score >= 90:
		return s.excellent
	case score >= 70:
		return s.good
	case score >= 50:
		return s.fair
	default:
		return s.poor
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		if col < len(widths) {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", row, err)
	}
	return nil
}

// finishTable freezes the header row and adds an auto-filter over the data
func finishTable(f *excelize.File, sheet string, cols, rows int) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if rows == 0 {
		return nil
	}
	last, _ := excelize.CoordinatesToCellName(cols, rows+1)
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("failed to add filter: %w", err)
	}
	return nil
}
