package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cairolint/internal/diag"
	"cairolint/internal/diagfmt"
	"cairolint/internal/lexer"
	"cairolint/internal/parser"
	"cairolint/internal/source"
)

// tokens и tree - отладочные дампы лексера и парсера, скрыты из help.
var tokensCmd = &cobra.Command{
	Use:    "tokens <file.cairo>",
	Short:  "Dump the token stream of a file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, file, err := loadOne(args[0])
		if err != nil {
			return err
		}
		toks := lexer.New(file, lexer.Options{}).All()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return diagfmt.TokensJSON(cmd.OutOrStdout(), toks)
		}
		return diagfmt.Tokens(cmd.OutOrStdout(), toks, fs)
	},
}

var treeCmd = &cobra.Command{
	Use:    "tree <file.cairo>",
	Short:  "Dump the syntax tree of a file",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, file, err := loadOne(args[0])
		if err != nil {
			return err
		}
		bag := diag.NewBag(0)
		res := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
		withTokens, _ := cmd.Flags().GetBool("tokens")
		opts := diagfmt.TreeOpts{Tokens: withTokens}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			err = diagfmt.FormatTreeJSON(cmd.OutOrStdout(), res.Tree, opts)
		} else {
			err = diagfmt.FormatTreePretty(cmd.OutOrStdout(), res.Tree, fs, opts)
		}
		if err != nil {
			return err
		}
		if bag.Len() > 0 {
			bag.Sort()
			diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: colorEnabled()})
			return errFindings
		}
		return nil
	},
}

func init() {
	tokensCmd.Flags().Bool("json", false, "emit JSON")
	treeCmd.Flags().Bool("json", false, "emit JSON")
	treeCmd.Flags().Bool("tokens", false, "include token leaves")
}

func loadOne(path string) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, &exitError{code: exitFailure, err: fmt.Errorf("load %s: %w", path, err)}
	}
	return fs, fs.Get(id), nil
}
