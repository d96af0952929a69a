package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// NewTokenNode allocates a leaf for Tokens[idx].
func (t *Tree) NewTokenNode(idx int) NodeID {
	tok := t.Tokens[idx]
	i32, err := safecast.Conv[int32](idx)
	if err != nil {
		panic(fmt.Errorf("token index overflow: %w", err))
	}
	return NodeID(t.Nodes.Push(Node{
		Kind: KindToken,
		Span: tok.Span,
		Full: tok.FullStart(),
		Tok:  i32,
	}))
}

// NewNode allocates an inner node; its span covers the first and last child.
// A node without children gets an empty span at pos.
func (t *Tree) NewNode(kind Kind, pos uint32, children ...NodeID) NodeID {
	n := Node{Kind: kind, Tok: -1, Children: children}
	n.Span.File = t.File.ID
	n.Span.Start, n.Span.End, n.Full = pos, pos, pos
	if len(children) > 0 {
		first := t.Node(children[0])
		last := t.Node(children[len(children)-1])
		n.Span.Start = first.Span.Start
		n.Full = first.Full
		n.Span.End = last.Span.End
	}
	id := NodeID(t.Nodes.Push(n))
	for _, c := range children {
		t.Node(c).Parent = id
	}
	return id
}

// SetRoot фиксирует корень; после этого дерево только читается.
func (t *Tree) SetRoot(id NodeID) {
	t.Root = id
}
