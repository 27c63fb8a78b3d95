package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/ptgen/compiler"
	"github.com/nihei9/ptgen/driver"
	"github.com/nihei9/ptgen/grammar"
	"github.com/pterm/pterm"
)

func TestMakeOutputFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "out.json")
	err := os.WriteFile(file, nil, 0644)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		path    string
		want    string
	}{
		{
			caption: "an empty path means the stdout",
			path:    "",
			want:    "",
		},
		{
			caption: "a directory gets a file named after the grammar",
			path:    dir,
			want:    filepath.Join(dir, "expr.json"),
		},
		{
			caption: "an existing file is used as is",
			path:    file,
			want:    file,
		},
		{
			caption: "a non-existent path is used as is",
			path:    filepath.Join(dir, "new.json"),
			want:    filepath.Join(dir, "new.json"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			got, err := makeOutputFilePath("expr", tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("unexpected path; want: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestCompileAndParse(t *testing.T) {
	b := grammar.NewBuilder("pair")
	b.Token("id", "[a-z]+")
	b.LHS("pair").Sym("id", "'='", "id").End()
	cg, _, err := compiler.Compile(b.Grammar())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "pair.json")
	err = writeCompiledGrammar(cg, path)
	if err != nil {
		t.Fatal(err)
	}
	cg, err = readCompiledGrammar(path)
	if err != nil {
		t.Fatal(err)
	}

	tree, synErrs, err := parse(cg, strings.NewReader("a=b"), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(synErrs) != 0 {
		t.Fatalf("unexpected syntax errors: %v", synErrs)
	}
	var w strings.Builder
	driver.PrintTree(&w, tree)
	want := `pair
├─ id "a"
├─ '=' "="
└─ id "b"
`
	if w.String() != want {
		t.Fatalf("unexpected tree; want:\n%v\ngot:\n%v", want, w.String())
	}

	ll := leveledNodes(tree, pterm.LeveledList{}, 0)
	if len(ll) != 4 || ll[0].Level != 0 || ll[3].Level != 1 || ll[3].Text != `id "b"` {
		t.Fatalf("unexpected leveled list: %v", ll)
	}

	_, synErrs, err = parse(cg, strings.NewReader("a="), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(synErrs) != 1 {
		t.Fatalf("unexpected syntax errors: %v", synErrs)
	}
	msg := formatSyntaxError(cg, synErrs[0])
	if !strings.Contains(msg, "<eof>") || !strings.Contains(msg, "expected: id") {
		t.Fatalf("unexpected message: %v", msg)
	}
}
