package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

var GetCmd = Get{
	command: command{},

	table: "",
	file:  "",
}

type Get struct {
	command
	table string
	file  string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a worksheet and stores it to a local TSV or Excel file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --table <worksheet> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] [--url <URL>] --table <worksheet> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the sales, surplus or stock worksheet to a TSV file or, if the file has an")
	fmt.Println("  .xlsx extension, to an Excel workbook")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    love-sandwiches --debug get --credentials "credentials.json" \`)
	fmt.Println(`                                --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                --table sales \`)
	fmt.Println(`                                --file "sales.xlsx"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.table, "table", cmd.table, "Worksheet to retrieve (sales, surplus or stock)")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV or .xlsx file name. Defaults to '<worksheet>-<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.table) == "" {
		return fmt.Errorf("--table is a required option")
	}

	table, err := ledger.ParseTable(cmd.table)
	if err != nil {
		return err
	}

	file := cmd.file
	if strings.TrimSpace(file) == "" {
		file = fmt.Sprintf("%v-%v", table, time.Now().Format("2006-01-02T150405.tsv"))
	}

	ctx := context.Background()

	google, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	rows, err := google.Values(ctx, string(table))
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data in worksheet '%v'", table)
	}

	if err := save(file, table, rows); err != nil {
		return err
	}

	infof("Retrieved %v worksheet to file %s", table, file)

	return nil
}

// save writes the rows to a temporary file and then renames it so that an existing
// file is only replaced by a complete one.
func save(file string, table ledger.Table, rows [][]string) error {
	format := func(w io.Writer) error {
		return ledger.MakeTSV(w, rows)
	}

	if strings.EqualFold(filepath.Ext(file), ".xlsx") {
		format = func(w io.Writer) error {
			return ledger.MakeXLSX(w, table, rows)
		}
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+string(table)+"-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := format(tmp); err != nil {
		return fmt.Errorf("error creating %v file (%v)", filepath.Ext(file), err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
