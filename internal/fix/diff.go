package fix

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders the change as a unified diff with git-style a/ b/ prefixes.
func (c FileChange) Diff() (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.Before)),
		B:        difflib.SplitLines(string(c.After)),
		FromFile: "a/" + c.Path,
		ToFile:   "b/" + c.Path,
		Context:  3,
	})
}
