package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

const MIMETYPE = "application/vnd.google-apps.spreadsheet"

var _ ledger.Worksheets = (*Google)(nil)

// Google is a Google Sheets spreadsheet accessed through the Sheets v4 API.
type Google struct {
	google      *sheets.Service
	spreadsheet *sheets.Spreadsheet
}

// OpenByID opens a spreadsheet given the ID from its URL.
func OpenByID(ctx context.Context, id string, options ...option.ClientOption) (*Google, error) {
	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	spreadsheet, err := getSpreadsheet(ctx, google, id)
	if err != nil {
		return nil, err
	}

	return &Google{
		google:      google,
		spreadsheet: spreadsheet,
	}, nil
}

// OpenByName finds a spreadsheet by its title using the Drive API and opens it. If there is
// more than one spreadsheet with the same name the most recently modified one is used.
func OpenByName(ctx context.Context, name string, options ...option.ClientOption) (*Google, error) {
	gdrive, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	id, err := findSpreadsheet(ctx, gdrive, name)
	if err != nil {
		return nil, err
	}

	return OpenByID(ctx, id, options...)
}

func (g *Google) ID() string {
	return g.spreadsheet.SpreadsheetId
}

func (g *Google) Title() string {
	if g.spreadsheet.Properties != nil {
		return g.spreadsheet.Properties.Title
	}

	return ""
}

// Append adds a row after the last row of data in the worksheet.
func (g *Google) Append(ctx context.Context, worksheet string, row []int) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	rq := sheets.ValueRange{
		Values: [][]any{values},
	}

	if _, err := g.google.Spreadsheets.Values.Append(g.ID(), quote(worksheet), &rq).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error appending to worksheet '%v' (%w)", worksheet, err)
	}

	return nil
}

// Values returns every row in the worksheet, including the header.
func (g *Google) Values(ctx context.Context, worksheet string) ([][]string, error) {
	response, err := g.google.Spreadsheets.Values.Get(g.ID(), quote(worksheet)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%v' (%w)", worksheet, err)
	}

	return makeTable(response.Values)
}

// Column returns the values in a column of the worksheet, numbered from 1.
func (g *Google) Column(ctx context.Context, worksheet string, column int) ([]string, error) {
	col, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return nil, err
	}

	area := fmt.Sprintf("%v!%v:%v", quote(worksheet), col, col)
	response, err := g.google.Spreadsheets.Values.Get(g.ID(), area).MajorDimension("COLUMNS").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve column %v from worksheet '%v' (%w)", col, worksheet, err)
	}

	if len(response.Values) == 0 {
		return []string{}, nil
	}

	return makeRecord(response.Values[0]), nil
}

// Row returns the values in a row of the worksheet, numbered from 1. Row 1 is the header
// and is checked for blank and duplicate column names.
func (g *Google) Row(ctx context.Context, worksheet string, row int) ([]string, error) {
	if row < 1 {
		return nil, fmt.Errorf("invalid row %v", row)
	}

	area := fmt.Sprintf("%v!%v:%v", quote(worksheet), row, row)
	response, err := g.google.Spreadsheets.Values.Get(g.ID(), area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve row %v from worksheet '%v' (%w)", row, worksheet, err)
	}

	if len(response.Values) == 0 {
		return []string{}, nil
	}

	if row == 1 {
		return makeHeader(response.Values[0])
	}

	return makeRecord(response.Values[0]), nil
}

// check verifies that the spreadsheet has a worksheet for each of the tables.
func (g *Google) check(tables ...ledger.Table) error {
	for _, table := range tables {
		if _, err := getSheet(g.spreadsheet, string(table)); err != nil {
			return err
		}
	}

	return nil
}

func getSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && normalise(sheet.Properties.Title) == normalise(name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet for '%s'", name)
}

func findSpreadsheet(ctx context.Context, gdrive *drive.Service, name string) (string, error) {
	page := ""
	latest := struct {
		id       string
		modified time.Time
	}{}

	q := fmt.Sprintf("name = '%v' and mimeType = '%v' and trashed = false", strings.ReplaceAll(name, "'", `\'`), MIMETYPE)

	for {
		call := gdrive.Files.List().Q(q).Fields("nextPageToken, files(id, name, modifiedTime)").Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		files, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("unable to search for spreadsheet '%v' (%w)", name, err)
		}

		for _, file := range files.Files {
			modified, err := time.Parse(time.RFC3339, file.ModifiedTime)
			if err != nil {
				warnf("spreadsheet '%v' (%v) has an invalid modified time '%v' - ignoring", name, file.Id, file.ModifiedTime)
				continue
			}

			if latest.id == "" || latest.modified.Before(modified) {
				latest.id = file.Id
				latest.modified = modified
			}
		}

		if page = files.NextPageToken; page == "" {
			break
		}
	}

	if latest.id == "" {
		return "", fmt.Errorf("unable to find spreadsheet '%v'", name)
	}

	return latest.id, nil
}

func quote(worksheet string) string {
	return "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
}
