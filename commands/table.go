package commands

import (
	"fmt"
	"strings"
)

// makeTable converts the values returned by the Sheets API to strings. The first row is
// the worksheet header and every column must be named. Names need not be unique since only
// the number of columns is used.
func makeTable(rows [][]any) ([][]string, error) {
	table := [][]string{}
	if len(rows) == 0 {
		return table, nil
	}

	header, err := makeHeader(rows[0])
	if err != nil {
		return nil, err
	}

	table = append(table, header)
	for _, row := range rows[1:] {
		table = append(table, makeRecord(row))
	}

	return table, nil
}

func makeHeader(row []any) ([]string, error) {
	if len(row) == 0 {
		return nil, fmt.Errorf("Missing/invalid header row")
	}

	header := makeRecord(row)

	for i, v := range header {
		if normalise(v) == "" {
			return nil, fmt.Errorf("Missing name for column %d", i+1)
		}
	}

	return header, nil
}

func makeRecord(row []any) []string {
	record := make([]string, len(row))
	for i, v := range row {
		switch s := v.(type) {
		case string:
			record[i] = clean(s)

		case nil:
			record[i] = ""

		default:
			record[i] = clean(fmt.Sprintf("%v", v))
		}
	}

	return record
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
