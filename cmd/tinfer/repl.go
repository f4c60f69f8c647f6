package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/check"
	"github.com/foldlang/tinfer/internal/config"
)

// runREPL type-checks one statement per line, printing its typed form or
// the error, and keeps declared names in scope across lines.
func runREPL(cfg *config.Config) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".tinfer_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Println(bold("tinfer"), "- type :quit to exit")

	root := newRootContext()
	for {
		text, err := line.Prompt(cfg.REPL.Prompt)
		if err != nil {
			break
		}
		if text == ":quit" {
			break
		}
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		stmt, err := parseStatement(text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("parse error"), err)
			continue
		}

		source := &ast.SourceFile{Statements: []ast.Node{stmt}}
		tc := check.NewTypeCheckerWithConfig(source, root, cfg)
		if err := tc.TypeCheck(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			continue
		}
		fmt.Println(green(ast.Print(source.Statements[0])))
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}
