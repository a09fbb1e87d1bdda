package ledger

import (
	"context"
	"fmt"
	"math"
)

// HISTORY is the number of most recent entries kept per column.
const HISTORY = 5

// History returns the last five values of each column of a worksheet, header excluded.
// The result is column-major i.e. one slice per category and the slices are not
// necessarily aligned into rows if the columns have different lengths.
func (l *Ledger) History(ctx context.Context, table Table) ([][]int, error) {
	width, err := l.Width(ctx, table)
	if err != nil {
		return nil, err
	}

	columns := make([][]int, 0, width)
	for ix := 1; ix <= width; ix++ {
		values, err := l.sheets.Column(ctx, string(table), ix)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve '%v' column %d (%w)", table, ix, err)
		}

		column, err := last(values, HISTORY)
		if err != nil {
			return nil, fmt.Errorf("invalid '%v' column %d (%w)", table, ix, err)
		}

		columns = append(columns, column)
	}

	return columns, nil
}

// Project calculates the recommended stock for the next market as the mean of each
// column plus 10%, rounded to the nearest sandwich.
func Project(history [][]int) Row {
	row := make(Row, len(history))

	for i, column := range history {
		if len(column) == 0 {
			continue
		}

		sum := 0
		for _, v := range column {
			sum += v
		}

		mean := float64(sum) / float64(len(column))
		row[i] = int(math.Round(mean * 1.1))
	}

	return row
}

func last(values []string, N int) ([]int, error) {
	if len(values) > 0 {
		values = values[1:]
	}

	if len(values) > N {
		values = values[len(values)-N:]
	}

	return parse(values)
}
