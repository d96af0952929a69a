package ast

import (
	"sync"

	"cairolint/internal/source"
	"cairolint/internal/token"
)

// Node - узел синтаксического дерева. Листья (KindToken) ссылаются на токен,
// остальные узлы перечисляют детей в порядке исходника, включая токены.
type Node struct {
	Kind     Kind
	Span     source.Span // без leading trivia
	Full     uint32      // начало leading trivia первого токена
	Tok      int32       // индекс в Tree.Tokens для KindToken, иначе -1
	Parent   NodeID
	Children []NodeID
}

// Tree is an immutable syntax tree of one file. After the parser returns it,
// nothing mutates nodes; any number of readers may share it.
type Tree struct {
	File   *source.File
	Tokens []token.Token
	Nodes  *Arena[Node]
	Root   NodeID

	anchorsOnce sync.Once
	anchors     map[source.Anchor]NodeID
}

// NewTree prepares an empty tree over the lexed tokens.
func NewTree(file *source.File, toks []token.Token) *Tree {
	return &Tree{
		File:   file,
		Tokens: toks,
		Nodes:  NewArena[Node](len(toks) * 2),
	}
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.At(uint32(id))
}

// Kind returns the kind of id, KindInvalid for NoNodeID.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Span returns the trivia-free span of id.
func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{File: t.File.ID}
}

// FullSpan includes the leading trivia of the node's first token.
func (t *Tree) FullSpan(id NodeID) source.Span {
	n := t.Node(id)
	if n == nil {
		return source.Span{File: t.File.ID}
	}
	return source.Span{File: n.Span.File, Start: n.Full, End: n.Span.End}
}

// Text returns the node text with its leading trivia.
func (t *Tree) Text(id NodeID) string {
	return t.File.Text(t.FullSpan(id))
}

// TextWithoutTrivia returns the node text without leading trivia.
func (t *Tree) TextWithoutTrivia(id NodeID) string {
	return t.File.Text(t.Span(id))
}

// Token returns the token of a KindToken leaf.
func (t *Tree) Token(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil || n.Kind != KindToken || n.Tok < 0 {
		return token.Token{}, false
	}
	return t.Tokens[n.Tok], true
}

// TokenKind returns the token kind of a leaf, token.Invalid otherwise.
func (t *Tree) TokenKind(id NodeID) token.Kind {
	tok, ok := t.Token(id)
	if !ok {
		return token.Invalid
	}
	return tok.Kind
}

// FirstToken returns the first token leaf under id.
func (t *Tree) FirstToken(id NodeID) (token.Token, bool) {
	for {
		n := t.Node(id)
		if n == nil {
			return token.Token{}, false
		}
		if n.Kind == KindToken {
			return t.Tokens[n.Tok], true
		}
		if len(n.Children) == 0 {
			return token.Token{}, false
		}
		id = n.Children[0]
	}
}

// LeadingTrivia returns the trivia attached in front of the node.
func (t *Tree) LeadingTrivia(id NodeID) []token.Trivia {
	tok, ok := t.FirstToken(id)
	if !ok {
		return nil
	}
	return tok.Leading
}

// Anchor builds the stable reference for id.
func (t *Tree) Anchor(id NodeID) source.Anchor {
	n := t.Node(id)
	if n == nil {
		return source.Anchor{}
	}
	return source.Anchor{Span: n.Span, Kind: uint16(n.Kind)}
}

// Lookup resolves an anchor to a node of the same kind and span. Nested nodes
// may share a span (e.g. a path inside a path expression); kinds tell them
// apart.
func (t *Tree) Lookup(a source.Anchor) (NodeID, bool) {
	t.anchorsOnce.Do(func() {
		t.anchors = make(map[source.Anchor]NodeID, t.Nodes.Len())
		for i, n := range t.Nodes.All() {
			if n.Kind == KindToken {
				continue
			}
			key := source.Anchor{Span: n.Span, Kind: uint16(n.Kind)}
			if _, dup := t.anchors[key]; !dup {
				t.anchors[key] = NodeID(i)
			}
		}
	})
	id, ok := t.anchors[a]
	return id, ok
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the subtree of that node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	n := t.Node(id)
	if n == nil || !fn(id) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// Descendants returns every node of the given kind under id, in source order.
func (t *Tree) Descendants(id NodeID, kind Kind) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if t.Kind(n) == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ChildOfKind returns the first direct child of the given kind.
func (t *Tree) ChildOfKind(id NodeID, kind Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return NoNodeID
}

// ChildToken returns the first direct token child of the given token kind.
func (t *Tree) ChildToken(id NodeID, kind token.Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.TokenKind(c) == kind {
			return c
		}
	}
	return NoNodeID
}

// NonTokenChildren returns direct children that are not token leaves.
func (t *Tree) NonTokenChildren(id NodeID) []NodeID {
	children := t.Children(id)
	out := make([]NodeID, 0, len(children))
	for _, c := range children {
		if t.Kind(c) != KindToken {
			out = append(out, c)
		}
	}
	return out
}
