package main

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'ptgen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("ptgen.cli")
}

var traceKeys = []string{
	"ptgen.cli",
	"ptgen.automaton",
	"ptgen.compiler",
	"ptgen.driver",
}

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "ptgen",
	Short: "Generate a table-driven parser from a grammar",
	Long: `ptgen provides the following features:
- Compiles a grammar written in JSON into a parsing table and a lexer.
- Describes the states of the automaton, including its conflicts.
- Parses a text stream with a compiled grammar.
  This feature is primarily aimed at debugging the grammar.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUpTracing,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Error", "trace level [Debug|Info|Error]")
}

func setUpTracing(cmd *cobra.Command, args []string) error {
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("trace level is %v", *rootFlags.trace)
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}
