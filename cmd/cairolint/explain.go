package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cairolint/internal/lint"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code|name]",
	Short: "Describe a lint, or list all of them",
	Example: `  cairolint explain CL0003
  cairolint explain double_comparison
  cairolint explain`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return listRules(out, lint.Rules())
	}
	codes, err := lint.Resolve(args[0])
	if err != nil {
		return usageError(err)
	}
	title := color.New(color.Bold)
	for i, code := range codes {
		rule, _ := lint.RuleForCode(code)
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s\n", title.Sprint(rule.Code.ID()), rule.Name())
		fmt.Fprintf(out, "  category: %s\n", rule.Category)
		fmt.Fprintf(out, "  severity: %s\n", rule.Severity.Label())
		fmt.Fprintf(out, "  fix:      %s\n", rule.Fix)
		fmt.Fprintf(out, "  message:  %s\n", rule.Message)
		if rule.Help != "" {
			fmt.Fprintf(out, "\n  %s\n", rule.Help)
		}
	}
	return nil
}

func listRules(out io.Writer, rules []lint.Rule) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tSEVERITY\tFIX")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Code.ID(), r.Name(), r.Severity.Label(), r.Fix)
	}
	return tw.Flush()
}
