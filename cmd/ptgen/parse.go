package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/ptgen/driver"
	"github.com/nihei9/ptgen/spec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	cst    *bool
	pretty *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <compiled grammar file path>",
		Short:   "Parse a text stream",
		Example: `  cat src | ptgen parse expr.json --cst`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.cst = cmd.Flags().Bool("cst", false, "print a CST")
	parseFlags.pretty = cmd.Flags().Bool("pretty", false, "print a CST as a colored tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cgram, err := readCompiledGrammar(args[0])
	if err != nil {
		return err
	}

	src := io.Reader(os.Stdin)
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}

	tree, synErrs, err := parse(cgram, src, *parseFlags.cst || *parseFlags.pretty)
	if err != nil {
		return err
	}
	for _, synErr := range synErrs {
		pterm.Error.Println(formatSyntaxError(cgram, synErr))
	}
	if len(synErrs) > 0 || tree == nil {
		return nil
	}

	if *parseFlags.pretty {
		return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(leveledNodes(tree, pterm.LeveledList{}, 0))).Render()
	}
	driver.PrintTree(os.Stdout, tree)
	return nil
}

func parse(cgram *spec.CompiledGrammar, src io.Reader, makeCST bool) (*driver.Node, []*driver.SyntaxError, error) {
	toks, err := driver.NewTokenStream(cgram, src)
	if err != nil {
		return nil, nil, err
	}
	var opts []driver.ParserOption
	if makeCST {
		opts = append(opts, driver.MakeCST())
	}
	p, err := driver.NewParser(toks, driver.NewGrammar(cgram), opts...)
	if err != nil {
		return nil, nil, err
	}
	err = p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return p.CST(), p.SyntaxErrors(), nil
}

func formatSyntaxError(cgram *spec.CompiledGrammar, synErr *driver.SyntaxError) string {
	var b strings.Builder
	tok := synErr.Token
	var msg string
	switch {
	case tok.EOF():
		msg = "<eof>"
	case tok.Invalid():
		msg = fmt.Sprintf("'%v' (<invalid>)", string(tok.Lexeme()))
	default:
		msg = fmt.Sprintf("'%v' (%v)", string(tok.Lexeme()), cgram.ParsingTable.Tokens[tok.TerminalID()])
	}
	fmt.Fprintf(&b, "%v:%v: %v: %v", synErr.Row+1, synErr.Col+1, synErr.Message, msg)
	if len(synErr.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(synErr.ExpectedTerminals, ", "))
	}
	return b.String()
}

func leveledNodes(node *driver.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := node.KindName
	switch {
	case node.Error:
		text = "!" + node.KindName
	case node.Text != "":
		text = fmt.Sprintf("%v %#v", node.KindName, node.Text)
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, c := range node.Children {
		ll = leveledNodes(c, ll, level+1)
	}
	return ll
}
