package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/ptgen/driver"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <compiled grammar file path>",
		Short:   "Parse lines read interactively",
		Example: `  ptgen repl expr.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	cgram, err := readCompiledGrammar(args[0])
	if err != nil {
		return err
	}

	repl, err := readline.New(cgram.Name + "> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}

		tree, synErrs, err := parse(cgram, strings.NewReader(line), true)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		for _, synErr := range synErrs {
			pterm.Error.Println(formatSyntaxError(cgram, synErr))
		}
		if len(synErrs) > 0 || tree == nil {
			continue
		}
		driver.PrintTree(repl.Stdout(), tree)
	}
	return nil
}
