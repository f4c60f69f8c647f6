// Command tinfer drives the type-inference core end to end: it parses the
// tiny surface syntax in spec.md §8's end-to-end table, type-checks it, and
// prints the resulting typed tree in textual form.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/check"
	"github.com/foldlang/tinfer/internal/config"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		configPath  = flag.String("config", "", "path to a tinfer config file")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Println(bold("tinfer"), "dev")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("config error"), err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("error"))
			os.Exit(1)
		}
		if err := checkFile(flag.Arg(1), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
			os.Exit(1)
		}
	case "repl":
		runREPL(cfg)
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(bold("tinfer") + " - a small Hindley-Milner-with-overloading type checker")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tinfer check <file>   type-check every statement in file, print the typed tree")
	fmt.Println("  tinfer repl           interactive line-by-line type checking")
}

func checkFile(path string, cfg *config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	root := newRootContext()
	var statements []ast.Node

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		stmt, err := parseStatement(line)
		if err != nil {
			return fmt.Errorf("parse error: %w", err)
		}
		statements = append(statements, stmt)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	source := &ast.SourceFile{Statements: statements}
	tc := check.NewTypeCheckerWithConfig(source, root, cfg)
	if err := tc.TypeCheck(); err != nil {
		return err
	}

	for _, stmt := range statements {
		fmt.Println(green(ast.Print(stmt)))
	}
	return nil
}
