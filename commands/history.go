package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

var HistoryCmd = History{
	command: command{},

	table: string(ledger.Sales),
}

type History struct {
	command

	table string
}

func (cmd *History) Name() string {
	return "history"
}

func (cmd *History) Description() string {
	return "Displays the last 5 entries for each sandwich in a worksheet"
}

func (cmd *History) Usage() string {
	return "--credentials <file> [--url <url>] [--table <worksheet>]"
}

func (cmd *History) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] history [options] [--url <URL>] [--table <sales|surplus|stock>]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the last 5 entries for each sandwich in the sales, surplus or stock worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    love-sandwiches history --credentials "creds.json" --table surplus`)
	fmt.Println()
}

func (cmd *History) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("history")

	flagset.StringVar(&cmd.table, "table", cmd.table, "Worksheet (sales, surplus or stock). Defaults to sales")

	return flagset
}

func (cmd *History) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	table, err := ledger.ParseTable(cmd.table)
	if err != nil {
		return err
	}

	ctx := context.Background()

	google, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	return history(ctx, ledger.NewLedger(google, os.Stdout), table, os.Stdout)
}

func history(ctx context.Context, l *ledger.Ledger, table ledger.Table, w io.Writer) error {
	header, err := l.Header(ctx, table)
	if err != nil {
		return err
	}

	columns, err := l.History(ctx, table)
	if err != nil {
		return err
	}

	return printHistory(w, table, header, columns)
}

// printHistory lists the entries for each column on a line of its own, oldest first.
func printHistory(w io.Writer, table ledger.Table, header []string, columns [][]int) error {
	fmt.Fprintf(w, "Last %d entries in the %v worksheet:\n\n", ledger.HISTORY, table)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	for i, column := range columns {
		name := ""
		if i < len(header) {
			name = header[i]
		}

		values := make([]string, len(column))
		for j, v := range column {
			values[j] = fmt.Sprintf("%v", v)
		}

		fmt.Fprintf(tw, "%v\t%v\t\n", name, strings.Join(values, "\t"))
	}

	return tw.Flush()
}
