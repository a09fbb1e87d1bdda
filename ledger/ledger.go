package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Table is the name of one of the worksheets in the Love Sandwiches spreadsheet.
type Table string

const (
	Sales   Table = "sales"
	Surplus Table = "surplus"
	Stock   Table = "stock"
)

// Tables lists the worksheets that may be written to.
var Tables = []Table{Sales, Surplus, Stock}

// Row is one entry per sandwich category, in header column order.
type Row []int

var ErrInvalidWorksheet = errors.New("Incorrect worksheet name entered, couldn't update..")
var ErrLengthMismatch = errors.New("stock and sales rows have different lengths")
var ErrNoStock = errors.New("no stock recorded")

// Worksheets is the external spreadsheet the ledger reads from and appends to. Rows and
// columns are numbered from 1 and include the header.
type Worksheets interface {
	Append(ctx context.Context, worksheet string, row []int) error
	Values(ctx context.Context, worksheet string) ([][]string, error)
	Column(ctx context.Context, worksheet string, column int) ([]string, error)
	Row(ctx context.Context, worksheet string, row int) ([]string, error)
}

type Ledger struct {
	sheets Worksheets
	out    io.Writer
	title  cases.Caser
}

func NewLedger(sheets Worksheets, out io.Writer) *Ledger {
	return &Ledger{
		sheets: sheets,
		out:    out,
		title:  cases.Title(language.English),
	}
}

// Valid returns true if the table is one of the sales, surplus or stock worksheets.
func (t Table) Valid() bool {
	for _, v := range Tables {
		if t == v {
			return true
		}
	}

	return false
}

func (t Table) String() string {
	return string(t)
}

// ParseTable returns the Table for a worksheet name, ignoring case and surrounding whitespace.
func ParseTable(s string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return t, fmt.Errorf("invalid worksheet '%v' - expected one of %v", s, Tables)
	}

	return t, nil
}

// Header returns the column names in the first row of the worksheet.
func (l *Ledger) Header(ctx context.Context, table Table) ([]string, error) {
	header, err := l.sheets.Row(ctx, string(table), 1)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve '%v' header row (%w)", table, err)
	}

	return header, nil
}

// Width is the number of columns in the worksheet header row. It is read on every call so
// that categories added to the spreadsheet are picked up without a restart.
func (l *Ledger) Width(ctx context.Context, table Table) (int, error) {
	header, err := l.Header(ctx, table)
	if err != nil {
		return 0, err
	}

	return len(header), nil
}

// Update appends a row to one of the sales, surplus or stock worksheets. Any other worksheet
// name is reported and nothing is written.
func (l *Ledger) Update(ctx context.Context, table Table, row Row) error {
	fmt.Fprintf(l.out, "Updating %v worksheet...\n\n", table)

	if !table.Valid() {
		fmt.Fprintf(l.out, "Internal error: %v\n", ErrInvalidWorksheet)
		return fmt.Errorf("%w ('%v')", ErrInvalidWorksheet, table)
	}

	if err := l.sheets.Append(ctx, string(table), row); err != nil {
		return fmt.Errorf("unable to append row to '%v' (%w)", table, err)
	}

	fmt.Fprintf(l.out, "%v worksheet appended successfully.\n\n", l.title.String(string(table)))

	return nil
}

// Surplus subtracts each sales figure from the matching entry in the most recent stock row.
// Positive values are waste, negative values are extra made after stock ran out.
func (l *Ledger) Surplus(ctx context.Context, sales Row) (Row, error) {
	fmt.Fprintf(l.out, "Calculating surplus data...\n\n")

	values, err := l.sheets.Values(ctx, string(Stock))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stock (%w)", err)
	}

	if len(values) < 2 {
		return nil, ErrNoStock
	}

	stock, err := parse(values[len(values)-1])
	if err != nil {
		return nil, fmt.Errorf("invalid stock row %d (%w)", len(values), err)
	}

	return surplus(stock, sales)
}

func surplus(stock, sales Row) (Row, error) {
	if len(stock) != len(sales) {
		return nil, fmt.Errorf("%w (stock:%d, sales:%d)", ErrLengthMismatch, len(stock), len(sales))
	}

	row := make(Row, len(sales))
	for i := range sales {
		row[i] = stock[i] - sales[i]
	}

	return row, nil
}
