package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

const ID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

type appendRequest struct {
	area             string
	valueInputOption string
	insertDataOption string
	values           [][]any
}

// stub is a minimal stand-in for the Sheets and Drive APIs, serving one spreadsheet.
type stub struct {
	worksheets map[string][][]any
	files      []any
	appended   []appendRequest
	queries    []string
}

func newStub() *stub {
	return &stub{
		files: []any{
			map[string]any{"id": "older", "name": "love_sandwiches", "modifiedTime": "2023-01-01T10:00:00.000Z"},
			map[string]any{"id": ID, "name": "love_sandwiches", "modifiedTime": "2024-06-01T10:00:00.000Z"},
		},
		worksheets: map[string][][]any{
			"sales": [][]any{
				{"cheese", "ham", "turkey"},
				{"1", "10", "100"},
				{"2", "20", "200"},
				{"3", "30"},
			},
			"surplus": [][]any{
				{"cheese", "ham", "turkey"},
			},
			"stock": [][]any{
				{"cheese", "ham", "turkey"},
				{"5", "25", "205"},
			},
		},
	}
}

func (s *stub) ServeHTTP(w http.ResponseWriter, rq *http.Request) {
	path := rq.URL.Path

	switch {
	case strings.HasSuffix(path, "/files"):
		s.queries = append(s.queries, rq.URL.Query().Get("q"))
		reply(w, map[string]any{"files": s.files})

	case strings.HasSuffix(path, "/spreadsheets/"+ID):
		list := []any{}
		for _, title := range []string{"sales", "surplus", "stock"} {
			list = append(list, map[string]any{"properties": map[string]any{"title": title}})
		}

		reply(w, map[string]any{
			"spreadsheetId": ID,
			"properties":    map[string]any{"title": "love_sandwiches"},
			"sheets":        list,
		})

	case strings.Contains(path, "/spreadsheets/"+ID+"/values/") && strings.HasSuffix(path, ":append"):
		var body sheets.ValueRange
		if err := json.NewDecoder(rq.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		area := strings.TrimSuffix(path[strings.Index(path, "/values/")+8:], ":append")
		s.appended = append(s.appended, appendRequest{
			area:             area,
			valueInputOption: rq.URL.Query().Get("valueInputOption"),
			insertDataOption: rq.URL.Query().Get("insertDataOption"),
			values:           body.Values,
		})

		if m := regexp.MustCompile(`^'(.+?)'$`).FindStringSubmatch(area); m != nil {
			s.worksheets[m[1]] = append(s.worksheets[m[1]], body.Values...)
		}

		reply(w, map[string]any{"spreadsheetId": ID})

	case strings.Contains(path, "/spreadsheets/"+ID+"/values/"):
		area := path[strings.Index(path, "/values/")+8:]
		values, ok := s.get(area, rq.URL.Query().Get("majorDimension"))
		if !ok {
			http.Error(w, "invalid range", http.StatusBadRequest)
			return
		}

		reply(w, map[string]any{"range": area, "values": values})

	default:
		http.NotFound(w, rq)
	}
}

func (s *stub) get(area string, dimension string) ([][]any, bool) {
	match := regexp.MustCompile(`^'(.+?)'(?:!(.+))?$`).FindStringSubmatch(area)
	if match == nil {
		return nil, false
	}

	rows, ok := s.worksheets[match[1]]
	if !ok {
		return nil, false
	}

	if match[2] == "" {
		return rows, true
	}

	if m := regexp.MustCompile(`^([0-9]+):([0-9]+)$`).FindStringSubmatch(match[2]); m != nil {
		row, _ := strconv.Atoi(m[1])
		if row > len(rows) {
			return [][]any{}, true
		}

		return [][]any{rows[row-1]}, true
	}

	if m := regexp.MustCompile(`^([A-Z]+):([A-Z]+)$`).FindStringSubmatch(match[2]); m != nil && dimension == "COLUMNS" {
		col, _ := excelize.ColumnNameToNumber(m[1])
		column := []any{}
		for _, row := range rows {
			if col <= len(row) {
				column = append(column, row[col-1])
			}
		}

		if len(column) == 0 {
			return [][]any{}, true
		}

		return [][]any{column}, true
	}

	return nil, false
}

func reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func openStub(t *testing.T, s *stub) *Google {
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	google, err := OpenByID(context.Background(), ID, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	return google
}

func TestOpenByName(t *testing.T) {
	s := newStub()
	srv := httptest.NewServer(s)
	defer srv.Close()

	google, err := OpenByName(context.Background(), "love_sandwiches", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	if google.ID() != ID {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", ID, google.ID())
	}

	if google.Title() != "love_sandwiches" {
		t.Errorf("Incorrect spreadsheet title - expected:%v, got:%v", "love_sandwiches", google.Title())
	}

	if len(s.queries) != 1 || !strings.Contains(s.queries[0], "name = 'love_sandwiches'") {
		t.Errorf("Incorrect Drive query %v", s.queries)
	}

	if err := google.check(ledger.Tables...); err != nil {
		t.Errorf("Unexpected error checking worksheets (%v)", err)
	}

	if err := google.check("inventory"); err == nil {
		t.Errorf("Expected error checking for 'inventory' worksheet")
	}
}

func TestOpenByNameWithInvalidModifiedTime(t *testing.T) {
	s := newStub()
	s.files = []any{
		map[string]any{"id": "garbled", "name": "love_sandwiches", "modifiedTime": "yesterday"},
		map[string]any{"id": ID, "name": "love_sandwiches", "modifiedTime": "2024-06-01T10:00:00.000Z"},
	}

	srv := httptest.NewServer(s)
	defer srv.Close()

	google, err := OpenByName(context.Background(), "love_sandwiches", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	if google.ID() != ID {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", ID, google.ID())
	}
}

func TestOpenByNameWithOnlyInvalidModifiedTimes(t *testing.T) {
	s := newStub()
	s.files = []any{
		map[string]any{"id": "garbled", "name": "love_sandwiches", "modifiedTime": "yesterday"},
	}

	srv := httptest.NewServer(s)
	defer srv.Close()

	if _, err := OpenByName(context.Background(), "love_sandwiches", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client())); err == nil {
		t.Errorf("Expected error opening spreadsheet with no usable match")
	}
}

func TestGoogleAppend(t *testing.T) {
	s := newStub()
	google := openStub(t, s)

	if err := google.Append(context.Background(), "surplus", []int{4, 5, -6}); err != nil {
		t.Fatalf("Unexpected error appending row (%v)", err)
	}

	if len(s.appended) != 1 {
		t.Fatalf("Expected 1 append request, got %v", len(s.appended))
	}

	rq := s.appended[0]
	if rq.area != "'surplus'" {
		t.Errorf("Incorrect append range - expected:%v, got:%v", "'surplus'", rq.area)
	}

	if rq.valueInputOption != "USER_ENTERED" || rq.insertDataOption != "INSERT_ROWS" {
		t.Errorf("Incorrect append options - got:%v, %v", rq.valueInputOption, rq.insertDataOption)
	}

	expected := [][]any{{float64(4), float64(5), float64(-6)}}
	if !reflect.DeepEqual(rq.values, expected) {
		t.Errorf("Incorrect appended values\n   expected: %v\n   got:      %v", expected, rq.values)
	}
}

func TestGoogleValues(t *testing.T) {
	expected := [][]string{
		{"cheese", "ham", "turkey"},
		{"5", "25", "205"},
	}

	google := openStub(t, newStub())

	values, err := google.Values(context.Background(), "stock")
	if err != nil {
		t.Fatalf("Unexpected error retrieving values (%v)", err)
	}

	if !reflect.DeepEqual(values, expected) {
		t.Errorf("Incorrect values\n   expected: %v\n   got:      %v", expected, values)
	}
}

func TestGoogleColumn(t *testing.T) {
	expected := []string{"turkey", "100", "200"}

	google := openStub(t, newStub())

	column, err := google.Column(context.Background(), "sales", 3)
	if err != nil {
		t.Fatalf("Unexpected error retrieving column (%v)", err)
	}

	if !reflect.DeepEqual(column, expected) {
		t.Errorf("Incorrect column\n   expected: %v\n   got:      %v", expected, column)
	}
}

func TestGoogleRow(t *testing.T) {
	google := openStub(t, newStub())

	header, err := google.Row(context.Background(), "sales", 1)
	if err != nil {
		t.Fatalf("Unexpected error retrieving header (%v)", err)
	}

	if !reflect.DeepEqual(header, []string{"cheese", "ham", "turkey"}) {
		t.Errorf("Incorrect header %v", header)
	}

	row, err := google.Row(context.Background(), "sales", 3)
	if err != nil {
		t.Fatalf("Unexpected error retrieving row (%v)", err)
	}

	if !reflect.DeepEqual(row, []string{"2", "20", "200"}) {
		t.Errorf("Incorrect row %v", row)
	}

	if _, err := google.Row(context.Background(), "sales", 0); err == nil {
		t.Errorf("Expected error retrieving row 0")
	}
}

func TestGoogleRowWithDuplicatedHeader(t *testing.T) {
	s := newStub()
	s.worksheets["sales"][0] = []any{"cheese", "ham", "cheese"}

	var out strings.Builder

	l := ledger.NewLedger(openStub(t, s), &out)

	row, err := l.Validate(context.Background(), ledger.Sales, []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("Unexpected error validating data (%v)", err)
	}

	if !reflect.DeepEqual(row, ledger.Row{1, 2, 3}) {
		t.Errorf("Incorrect row %v", row)
	}
}

func TestGoogleLedger(t *testing.T) {
	s := newStub()
	s.worksheets["sales"] = s.worksheets["sales"][:3]

	var out strings.Builder

	l := ledger.NewLedger(openStub(t, s), &out)

	history, err := l.History(context.Background(), ledger.Sales)
	if err != nil {
		t.Fatalf("Unexpected error retrieving history (%v)", err)
	}

	expected := [][]int{{1, 2}, {10, 20}, {100, 200}}
	if !reflect.DeepEqual(history, expected) {
		t.Errorf("Incorrect history\n   expected: %v\n   got:      %v", expected, history)
	}

	surplus, err := l.Surplus(context.Background(), ledger.Row{3, 30, 300})
	if err != nil {
		t.Fatalf("Unexpected error calculating surplus (%v)", err)
	}

	if !reflect.DeepEqual(surplus, ledger.Row{2, -5, -95}) {
		t.Errorf("Incorrect surplus %v", surplus)
	}
}

func TestSpreadsheetID(t *testing.T) {
	urls := []string{
		"https://docs.google.com/spreadsheets/d/" + ID,
		"https://docs.google.com/spreadsheets/d/" + ID + "/edit#gid=0",
	}

	for _, url := range urls {
		if id, err := spreadsheetID(url); err != nil {
			t.Errorf("Unexpected error parsing %v (%v)", url, err)
		} else if id != ID {
			t.Errorf("Incorrect ID for %v - expected:%v, got:%v", url, ID, id)
		}
	}

	if _, err := spreadsheetID("https://example.com/spreadsheets/d/" + ID); err == nil {
		t.Errorf("Expected error for invalid spreadsheet URL")
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"sales":      "'sales'",
		"Bob's list": "'Bob''s list'",
	}

	for name, expected := range tests {
		if q := quote(name); q != expected {
			t.Errorf("Incorrect quoted name - expected:%v, got:%v", expected, q)
		}
	}
}
