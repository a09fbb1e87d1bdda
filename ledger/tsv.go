package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// MakeTSV writes a worksheet as tab separated values. The first row must be the header.
func MakeTSV(f io.Writer, rows [][]string) error {
	header, records, err := split(rows)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func split(rows [][]string) ([]string, [][]string, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("Empty sheet")
	}

	// ... header
	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = clean(v)
	}

	if len(header) == 0 {
		return nil, nil, fmt.Errorf("Missing/invalid header row")
	}

	// ... records
	records := [][]string{}
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make([]string, len(header))
		for i := range record {
			if i < len(row) {
				record[i] = clean(row[i])
			}
		}

		records = append(records, record)
	}

	return header, records, nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
