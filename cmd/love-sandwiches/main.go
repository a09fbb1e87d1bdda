package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/love-sandwiches/love-sandwiches/commands"
)

var cli = []lib.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.EnterCmd,
	&commands.HistoryCmd,
	&commands.GetCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	if err := commands.LoadEnv(); err != nil {
		log.Printf("%-5s could not load .env file (%v)", "WARN", err)
	}

	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
