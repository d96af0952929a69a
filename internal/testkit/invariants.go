// Package testkit holds structural checks shared by parser, fuzz and quickfix
// tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cairolint/internal/ast"
	"cairolint/internal/token"
)

// CheckTree runs the structural invariants fixes rely on:
// 1) the root is a File node ending with the EOF leaf
// 2) every span is in bounds and leading trivia precedes the span
// 3) parent links match the child lists and an inner node spans first..last child
// 4) token leaves are unique and appear in source order
func CheckTree(t *ast.Tree) error {
	if t == nil || t.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := t.Node(t.Root)
	if root == nil || root.Kind != ast.KindFile {
		return fmt.Errorf("root is %s, want File", t.Kind(t.Root))
	}
	if len(root.Children) == 0 || t.TokenKind(root.Children[len(root.Children)-1]) != token.EOF {
		return fmt.Errorf("file node does not end with EOF")
	}
	size, err := safecast.Conv[uint32](len(t.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	lastTok := int32(-1)
	var walkErr error
	t.Walk(t.Root, func(id ast.NodeID) bool {
		if walkErr != nil {
			return false
		}
		walkErr = checkNode(t, id, size, &lastTok)
		return walkErr == nil
	})
	return walkErr
}

func checkNode(t *ast.Tree, id ast.NodeID, size uint32, lastTok *int32) error {
	n := t.Node(id)
	sp := n.Span
	if sp.File != t.File.ID {
		return fmt.Errorf("%s %v: file id %d, want %d", n.Kind, sp, sp.File, t.File.ID)
	}
	if sp.Start > sp.End || sp.End > size {
		return fmt.Errorf("%s %v: span out of bounds (content %d bytes)", n.Kind, sp, size)
	}
	if n.Full > sp.Start {
		return fmt.Errorf("%s %v: trivia start %d after span start", n.Kind, sp, n.Full)
	}

	if n.Kind == ast.KindToken {
		if n.Tok <= *lastTok {
			return fmt.Errorf("token %d at %v out of order (previous %d)", n.Tok, sp, *lastTok)
		}
		*lastTok = n.Tok
		return nil
	}

	for _, c := range n.Children {
		if p := t.Parent(c); p != id {
			return fmt.Errorf("%s %v: child %d has parent %d", n.Kind, sp, c, p)
		}
	}
	if len(n.Children) > 0 {
		first, last := t.Span(n.Children[0]), t.Span(n.Children[len(n.Children)-1])
		if sp.Start != first.Start || sp.End != last.End {
			return fmt.Errorf("%s %v: does not span children %v..%v", n.Kind, sp, first, last)
		}
	}
	return nil
}
