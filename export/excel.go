package export

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Sheet describes one worksheet of an exported workbook.
type Sheet struct {
	// SheetName names the worksheet tab. Empty falls back to SheetN.
	SheetName string
	// Title is rendered as a band merged across the header width above
	// everything else. Empty omits the band.
	Title string
	// Summary rows are rendered between title and header: the label spans
	// the left half of the columns, the value the right half.
	Summary [][2]string
	// Headers is the styled column header row.
	Headers []string
	// Rows hold the data cells, written as strings.
	Rows [][]any
}

const defaultColWidth = 16

// WriteExcel renders the sheets into one xlsx workbook.
func WriteExcel(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory file

	for i, sheet := range sheets {
		name := sheet.SheetName
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, errx.Wrap(err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, errx.Wrap(err)
			}
		}

		if err := writeSheet(f, name, sheet); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, sheet Sheet) error {
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	width := len(sheet.Headers)
	if width == 0 {
		return errx.New("sheet has no headers")
	}
	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return errx.Wrap(err)
	}
	if err := f.SetColWidth(name, "A", lastCol, defaultColWidth); err != nil {
		return errx.Wrap(err)
	}

	rowIdx := 1

	if sheet.Title != "" {
		if err := writeBand(f, name, rowIdx, 1, width, sheet.Title, styles.header); err != nil {
			return err
		}
		rowIdx++
	}

	half := width / 2
	if half == 0 {
		half = 1
	}
	for _, pair := range sheet.Summary {
		if err := writeBand(f, name, rowIdx, 1, half, pair[0], styles.summaryLabel); err != nil {
			return err
		}
		if half < width {
			if err := writeBand(f, name, rowIdx, half+1, width, pair[1], styles.summaryValue); err != nil {
				return err
			}
		}
		rowIdx++
	}

	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return errx.Wrap(err)
		}
		if err := f.SetCellStr(name, cell, header); err != nil {
			return errx.Wrap(err)
		}
	}
	if err := styleRow(f, name, rowIdx, width, styles.header); err != nil {
		return err
	}
	rowIdx++

	for _, row := range sheet.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return errx.Wrap(err)
			}
			if err := f.SetCellStr(name, cell, cast.ToString(value)); err != nil {
				return errx.Wrap(err)
			}
		}
		if err := styleRow(f, name, rowIdx, width, styles.data); err != nil {
			return err
		}
		rowIdx++
	}

	return nil
}

// writeBand writes a value merged across the columns [fromCol, toCol] of one
// row.
func writeBand(f *excelize.File, name string, row, fromCol, toCol int, value string, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return errx.Wrap(err)
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return errx.Wrap(err)
	}
	if from != to {
		if err := f.MergeCell(name, from, to); err != nil {
			return errx.Wrap(err)
		}
	}
	if err := f.SetCellStr(name, from, value); err != nil {
		return errx.Wrap(err)
	}
	if err := f.SetCellStyle(name, from, to, style); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

func styleRow(f *excelize.File, name string, row, width, style int) error {
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errx.Wrap(err)
	}
	to, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return errx.Wrap(err)
	}
	if err := f.SetCellStyle(name, from, to, style); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

type sheetStyles struct {
	header       int
	summaryLabel int
	summaryValue int
	data         int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	})
	if err != nil {
		return sheetStyles{}, errx.Wrap(err)
	}

	summaryLabel, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	})
	if err != nil {
		return sheetStyles{}, errx.Wrap(err)
	}

	summaryValue, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
		Border:    border,
		Alignment: center,
	})
	if err != nil {
		return sheetStyles{}, errx.Wrap(err)
	}

	data, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: center,
	})
	if err != nil {
		return sheetStyles{}, errx.Wrap(err)
	}

	return sheetStyles{
		header:       header,
		summaryLabel: summaryLabel,
		summaryValue: summaryValue,
		data:         data,
	}, nil
}
