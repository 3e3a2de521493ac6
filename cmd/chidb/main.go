package main

import (
	"fmt"
	"os"

	"github.com/jmininger/chidb/cmd/chidb/command"
	"github.com/mitchellh/cli"
)

func main() {
	args := os.Args[1:]

	commands := map[string]cli.CommandFactory{
		"open": func() (cli.Command, error) {
			return &command.OpenCommand{}, nil
		},
		"put": func() (cli.Command, error) {
			return &command.PutCommand{}, nil
		},
		"get": func() (cli.Command, error) {
			return &command.GetCommand{}, nil
		},
		"dump": func() (cli.Command, error) {
			return &command.DumpCommand{}, nil
		},
		"run": func() (cli.Command, error) {
			return &command.RunCommand{}, nil
		},
	}

	chidbCLI := &cli.CLI{
		Name:     "chidb",
		Args:     args,
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("chidb"),
	}

	exitCode, err := chidbCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
