package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"cairolint/internal/ast"
	"cairolint/internal/source"
)

// TreeOpts configures syntax tree dumps.
type TreeOpts struct {
	Tokens bool // печатать листья-токены
}

// TreeNodeOutput - узел дерева в JSON-дампе.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Start    uint32           `json:"start"`
	End      uint32           `json:"end"`
	Text     string           `json:"text,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево в виде
//
//	File 1:1-3:2
//	└─ Function 1:1-3:2
//	   ├─ ParamList 1:8-1:10
//	   ...
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet, opts TreeOpts) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	var b strings.Builder
	b.WriteString(treeLabel(tree, tree.Root, fs))
	b.WriteByte('\n')
	writeTreeChildren(&b, tree, tree.Root, fs, opts, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTreeChildren(b *strings.Builder, tree *ast.Tree, id ast.NodeID, fs *source.FileSet, opts TreeOpts, prefix string) {
	children := visibleChildren(tree, id, opts)
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix + branch + treeLabel(tree, child, fs))
		b.WriteByte('\n')
		writeTreeChildren(b, tree, child, fs, opts, prefix+next)
	}
}

func visibleChildren(tree *ast.Tree, id ast.NodeID, opts TreeOpts) []ast.NodeID {
	if opts.Tokens {
		return tree.Children(id)
	}
	return tree.NonTokenChildren(id)
}

func treeLabel(tree *ast.Tree, id ast.NodeID, fs *source.FileSet) string {
	span := tree.Span(id)
	if tok, ok := tree.Token(id); ok {
		return fmt.Sprintf("%s %q %s", tok.Kind, tok.Text, spanText(span, fs))
	}
	return fmt.Sprintf("%s %s", tree.Kind(id), spanText(span, fs))
}

// FormatTreeJSON выводит дерево в JSON.
func FormatTreeJSON(w io.Writer, tree *ast.Tree, opts TreeOpts) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(treeJSON(tree, tree.Root, opts))
}

func treeJSON(tree *ast.Tree, id ast.NodeID, opts TreeOpts) TreeNodeOutput {
	span := tree.Span(id)
	out := TreeNodeOutput{Kind: tree.Kind(id).String(), Start: span.Start, End: span.End}
	if tok, ok := tree.Token(id); ok {
		out.Kind = tok.Kind.String()
		out.Text = tok.Text
		return out
	}
	for _, child := range visibleChildren(tree, id, opts) {
		out.Children = append(out.Children, treeJSON(tree, child, opts))
	}
	return out
}
