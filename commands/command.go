package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/love-sandwiches/love-sandwiches/ledger"
)

const APP = "love-sandwiches"

var ErrNoSpreadsheet = errors.New("--url or --spreadsheet is a required option")

type Options struct {
	Debug bool
}

// command holds the options shared by every command that talks to the spreadsheet.
type command struct {
	workdir     string
	credentials string
	tokens      string
	url         string
	spreadsheet string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	c.defaults()

	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for the OAuth2 tokens file. Defaults to <workdir>/.google")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL")
	flagset.StringVar(&c.spreadsheet, "spreadsheet", c.spreadsheet, "Spreadsheet name, used to find the spreadsheet when --url is not given")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.url) == "" && strings.TrimSpace(c.spreadsheet) == "" {
		return ErrNoSpreadsheet
	}

	if strings.TrimSpace(c.url) != "" {
		if _, err := spreadsheetID(c.url); err != nil {
			return err
		}
	}

	return nil
}

// open authorises access and returns the spreadsheet identified by either --url or --spreadsheet.
func (c *command) open(ctx context.Context) (*Google, error) {
	client, err := authorize(ctx, c.credentials, c.tokenDir(), SHEETS, DRIVE)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	var google *Google

	if url := strings.TrimSpace(c.url); url != "" {
		id, err := spreadsheetID(url)
		if err != nil {
			return nil, err
		}

		if c.debug {
			debugf("Spreadsheet - ID:%s", id)
		}

		google, err = OpenByID(ctx, id, withClient(client))
		if err != nil {
			return nil, err
		}
	} else {
		if c.debug {
			debugf("Spreadsheet - name:%s", c.spreadsheet)
		}

		google, err = OpenByName(ctx, c.spreadsheet, withClient(client))
		if err != nil {
			return nil, err
		}
	}

	if err := google.check(ledger.Tables...); err != nil {
		return nil, err
	}

	return google, nil
}

func (c *command) tokenDir() string {
	if c.tokens != "" {
		return c.tokens
	}

	return tokenDir(c.workdir)
}

func spreadsheetID(url string) (string, error) {
	match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`).FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	if count > 0 {
		fmt.Println("  Options:")
		flagset.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}

	fmt.Println()
	fmt.Println("  Global options:")
	fmt.Println("    --debug         Displays internal information for diagnosing errors")
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
