package ledger

import (
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// MakeXLSX writes a worksheet as an Excel workbook with a single sheet named after the
// table. Cells that hold integers are stored as numbers so that they can be summed.
func MakeXLSX(f io.Writer, table Table, rows [][]string) error {
	header, records, err := split(rows)
	if err != nil {
		return err
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	if err := xlsx.SetAppProps(&excelize.AppProperties{Application: "love-sandwiches"}); err != nil {
		return err
	}

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, string(table)); err != nil {
		return err
	}

	sheet = string(table)

	bold, err := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := xlsx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	if len(header) > 0 {
		end, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}

		if err := xlsx.SetCellStyle(sheet, "A1", end, bold); err != nil {
			return err
		}
	}

	for r, record := range records {
		row := make([]any, len(record))
		for i, v := range record {
			if n, err := strconv.Atoi(v); err == nil {
				row[i] = n
			} else {
				row[i] = v
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}

		if err := xlsx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	_, err = xlsx.WriteTo(f)

	return err
}
