package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nihei9/ptgen/compiler"
	verr "github.com/nihei9/ptgen/error"
	"github.com/nihei9/ptgen/grammar"
	"github.com/nihei9/ptgen/spec"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into a parsing table",
		Example: `  ptgen compile grammar.json -o expr.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.strict = cmd.Flags().Bool("strict", false, "fail when the grammar has conflicts")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	gram, err := readGrammar(grmPath)
	if err != nil {
		return err
	}

	var opts []compiler.CompileOption
	if *compileFlags.strict {
		opts = append(opts, compiler.FailOnConflicts())
	}
	cgram, diag, err := compiler.Compile(gram, opts...)
	if err != nil {
		var specErrs verr.SpecErrors
		if errors.As(err, &specErrs) {
			sourceName := grmPath
			if sourceName == "" {
				sourceName = "stdin"
			}
			for _, e := range specErrs {
				e.SourceName = sourceName
			}
			return specErrs
		}
		return err
	}

	err = writeCompiledGrammar(cgram, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("cannot write the compiled grammar: %w", err)
	}

	if diag.HasConflicts() {
		pterm.Warning.Println(fmt.Sprintf("%v shift/reduce conflicts, %v reduce/reduce conflicts", diag.ShiftReduceConflicts, diag.ReduceReduceConflicts))
	}

	return nil
}

// readGrammar reads a grammar written in JSON. An empty path means the standard input.
func readGrammar(path string) (*grammar.Grammar, error) {
	if path == "" {
		return grammar.Read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	return grammar.Read(f)
}

// writeCompiledGrammar writes a compiled grammar to a file located at a specified path.
//
// 1. When the path is a directory path, it writes the compiled grammar to <path>/<grammar-name>.json.
// 2. When the path is a file path or a non-existent path, it writes the compiled grammar to the path.
// 3. When the path is an empty string, it writes the compiled grammar to the stdout.
func writeCompiledGrammar(cgram *spec.CompiledGrammar, path string) error {
	cgramPath, err := makeOutputFilePath(cgram.Name, path)
	if err != nil {
		return err
	}

	var w io.Writer
	if cgramPath != "" {
		f, err := os.OpenFile(cgramPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	b, err := json.Marshal(cgram)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%v\n", string(b))
	return err
}

func makeOutputFilePath(gramName string, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	fi, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	if os.IsNotExist(err) || !fi.IsDir() {
		return path, nil
	}

	return filepath.Join(path, gramName+".json"), nil
}

func readCompiledGrammar(path string) (*spec.CompiledGrammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the compiled grammar %s: %w", path, err)
	}
	defer f.Close()

	cgram := &spec.CompiledGrammar{}
	err = json.NewDecoder(f).Decode(cgram)
	if err != nil {
		return nil, fmt.Errorf("cannot read the compiled grammar %s: %w", path, err)
	}
	return cgram, nil
}
