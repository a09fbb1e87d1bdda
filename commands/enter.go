package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

var EnterCmd = Enter{
	command: command{},

	withStock: false,
}

// Enter is the data entry command: it collects the sales figures for the last market,
// records them and the resulting surplus and optionally the stock for the next market.
type Enter struct {
	command

	withStock bool
}

func (cmd *Enter) Name() string {
	return "enter"
}

func (cmd *Enter) Description() string {
	return "Records the sales from the last market and calculates the surplus"
}

func (cmd *Enter) Usage() string {
	return "--credentials <file> [--url <url>] [--with-stock]"
}

func (cmd *Enter) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] enter [options] [--url <URL>] [--with-stock]\n", APP)
	fmt.Println()
	fmt.Println("  Prompts for the sales figures from the last market, appends them to the 'sales' worksheet")
	fmt.Println("  and appends the surplus (latest stock less sales) to the 'surplus' worksheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    love-sandwiches enter --credentials "creds.json" --spreadsheet "love_sandwiches"`)
	fmt.Println(`    love-sandwiches --debug enter --credentials "creds.json" \`)
	fmt.Println(`                                  --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                  --with-stock`)
	fmt.Println()
}

func (cmd *Enter) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("enter")

	flagset.BoolVar(&cmd.withStock, "with-stock", cmd.withStock, "Also calculates the stock for the next market from the last 5 markets and appends it to the 'stock' worksheet")

	return flagset
}

func (cmd *Enter) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	ctx := context.Background()

	google, err := cmd.open(ctx)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Opened spreadsheet '%v' (%v)", google.Title(), google.ID())
	}

	fmt.Printf("Welcome to Love Sandwiches Data Automation\n\n")

	return cmd.run(ctx, ledger.NewLedger(google, os.Stdout), os.Stdin)
}

func (cmd *Enter) run(ctx context.Context, l *ledger.Ledger, in io.Reader) error {
	sales, err := l.Collect(ctx, in, ledger.Sales)
	if err != nil {
		return err
	}

	if err := update(ctx, l, ledger.Sales, sales); err != nil {
		return err
	}

	surplus, err := l.Surplus(ctx, sales)
	if err != nil {
		return err
	}

	if err := update(ctx, l, ledger.Surplus, surplus); err != nil {
		return err
	}

	if cmd.withStock {
		history, err := l.History(ctx, ledger.Sales)
		if err != nil {
			return err
		}

		stock := ledger.Project(history)
		if err := update(ctx, l, ledger.Stock, stock); err != nil {
			return err
		}

		infof("Stock for next market: %v", stock)
	}

	return nil
}

// update appends a row to a worksheet. An invalid worksheet name has already been reported
// to the operator and does not stop the run.
func update(ctx context.Context, l *ledger.Ledger, table ledger.Table, row ledger.Row) error {
	if err := l.Update(ctx, table, row); errors.Is(err, ledger.ErrInvalidWorksheet) {
		warnf("%v", err)
	} else if err != nil {
		return err
	}

	return nil
}
