package ast

import (
	"cairolint/internal/token"
)

// Раскладки детей, которые строит парсер (токены включены):
//   Binary:     lhs op rhs
//   Unary:      op operand
//   Paren:      ( expr )
//   Tuple:      ( e , e ... )           `()` - Tuple без выражений
//   Block:      { stmt... }
//   If:         if cond Block Else?     cond может быть LetCond
//   LetCond:    let pat (| pat)* = expr
//   Else:       else (Block | If)
//   Match:      match expr { arm... }
//   MatchArm:   pat (| pat)* => expr ,?
//   Loop:       loop Block
//   MethodCall: recv . name (:: generics)? ArgList
//   BreakStmt:  break expr? ;?

// BinaryParts returns the operands and the operator token leaf.
func (t *Tree) BinaryParts(id NodeID) (lhs, op, rhs NodeID) {
	c := t.Children(id)
	if t.Kind(id) != KindBinary || len(c) != 3 {
		return NoNodeID, NoNodeID, NoNodeID
	}
	return c[0], c[1], c[2]
}

// UnaryParts returns the operator token leaf and the operand.
func (t *Tree) UnaryParts(id NodeID) (op, operand NodeID) {
	c := t.Children(id)
	if t.Kind(id) != KindUnary || len(c) != 2 {
		return NoNodeID, NoNodeID
	}
	return c[0], c[1]
}

// ParenInner returns the parenthesized expression.
func (t *Tree) ParenInner(id NodeID) NodeID {
	c := t.Children(id)
	if t.Kind(id) != KindParen || len(c) != 3 {
		return NoNodeID
	}
	return c[1]
}

// IsUnit reports whether id is the unit expression `()`.
func (t *Tree) IsUnit(id NodeID) bool {
	return t.Kind(id) == KindTuple && len(t.NonTokenChildren(id)) == 0
}

// IsEmptyBlock reports whether id is a block without statements.
func (t *Tree) IsEmptyBlock(id NodeID) bool {
	return t.Kind(id) == KindBlock && len(t.BlockStatements(id)) == 0
}

// BlockStatements returns the statements of a block in order.
func (t *Tree) BlockStatements(id NodeID) []NodeID {
	if t.Kind(id) != KindBlock {
		return nil
	}
	return t.NonTokenChildren(id)
}

// IfParts splits an if expression; elseClause is NoNodeID without else.
func (t *Tree) IfParts(id NodeID) (cond, then, elseClause NodeID) {
	if t.Kind(id) != KindIf {
		return NoNodeID, NoNodeID, NoNodeID
	}
	rest := t.NonTokenChildren(id)
	if len(rest) < 2 {
		return NoNodeID, NoNodeID, NoNodeID
	}
	cond, then = rest[0], rest[1]
	if len(rest) > 2 {
		elseClause = rest[2]
	}
	return cond, then, elseClause
}

// ElseBody returns the block or the if expression following `else`.
func (t *Tree) ElseBody(id NodeID) NodeID {
	if t.Kind(id) != KindElse {
		return NoNodeID
	}
	rest := t.NonTokenChildren(id)
	if len(rest) != 1 {
		return NoNodeID
	}
	return rest[0]
}

// LetCondParts splits `let P | Q = expr`.
func (t *Tree) LetCondParts(id NodeID) (patterns []NodeID, expr NodeID) {
	if t.Kind(id) != KindLetCond {
		return nil, NoNodeID
	}
	rest := t.NonTokenChildren(id)
	if len(rest) < 2 {
		return nil, NoNodeID
	}
	return rest[:len(rest)-1], rest[len(rest)-1]
}

// MatchParts returns the scrutinee and the arms of a match.
func (t *Tree) MatchParts(id NodeID) (scrutinee NodeID, arms []NodeID) {
	if t.Kind(id) != KindMatch {
		return NoNodeID, nil
	}
	rest := t.NonTokenChildren(id)
	if len(rest) == 0 {
		return NoNodeID, nil
	}
	return rest[0], rest[1:]
}

// ArmParts returns the alternatives of an arm pattern and its body.
func (t *Tree) ArmParts(id NodeID) (patterns []NodeID, body NodeID) {
	if t.Kind(id) != KindMatchArm {
		return nil, NoNodeID
	}
	rest := t.NonTokenChildren(id)
	if len(rest) < 2 {
		return nil, NoNodeID
	}
	return rest[:len(rest)-1], rest[len(rest)-1]
}

// LoopBody returns the block of a `loop`.
func (t *Tree) LoopBody(id NodeID) NodeID {
	if t.Kind(id) != KindLoop {
		return NoNodeID
	}
	return t.ChildOfKind(id, KindBlock)
}

// MethodCallParts returns receiver, method name token leaf and argument list.
func (t *Tree) MethodCallParts(id NodeID) (recv, name, args NodeID) {
	c := t.Children(id)
	if t.Kind(id) != KindMethodCall || len(c) < 4 {
		return NoNodeID, NoNodeID, NoNodeID
	}
	return c[0], c[2], c[len(c)-1]
}

// Args returns the argument expressions of an ArgList.
func (t *Tree) Args(id NodeID) []NodeID {
	if t.Kind(id) != KindArgList {
		return nil
	}
	return t.NonTokenChildren(id)
}

// StatementExpr returns the expression of an expression statement.
func (t *Tree) StatementExpr(id NodeID) NodeID {
	if t.Kind(id) != KindExprStmt {
		return NoNodeID
	}
	return t.Children(id)[0]
}

// BreakValue returns the value of `break value;`, NoNodeID for a bare break.
func (t *Tree) BreakValue(id NodeID) NodeID {
	if t.Kind(id) != KindBreakStmt {
		return NoNodeID
	}
	rest := t.NonTokenChildren(id)
	if len(rest) == 0 {
		return NoNodeID
	}
	return rest[0]
}

// PathSegments returns the identifier segments of a path, skipping generic
// arguments: `ArrayTrait::<u8>::new` → [ArrayTrait new].
func (t *Tree) PathSegments(id NodeID) []string {
	if t.Kind(id) != KindPath {
		return nil
	}
	var out []string
	depth := 0
	for _, c := range t.Children(id) {
		tok, ok := t.Token(c)
		if !ok {
			continue
		}
		switch tok.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Ident:
			if depth == 0 {
				out = append(out, tok.Text)
			}
		}
	}
	return out
}

// Identifier returns the bound name of an identifier pattern or a parameter.
func (t *Tree) Identifier(id NodeID) (NodeID, string) {
	switch t.Kind(id) {
	case KindPatIdent, KindParam, KindPatStructField:
		for _, c := range t.Children(id) {
			if tok, ok := t.Token(c); ok && tok.Kind == token.Ident {
				return c, tok.Text
			}
		}
	}
	return NoNodeID, ""
}

// PatternPath returns the path of an enum or struct pattern.
func (t *Tree) PatternPath(id NodeID) NodeID {
	switch t.Kind(id) {
	case KindPatEnum, KindPatStruct:
		return t.ChildOfKind(id, KindPath)
	}
	return NoNodeID
}

// PatternArgs returns the inner patterns of an enum pattern `A::B(p, q)`.
func (t *Tree) PatternArgs(id NodeID) []NodeID {
	if t.Kind(id) != KindPatEnum {
		return nil
	}
	var out []NodeID
	for _, c := range t.NonTokenChildren(id) {
		if t.Kind(c).IsPattern() {
			out = append(out, c)
		}
	}
	return out
}

// BoolLiteral reports whether id is `true` or `false` and its value.
func (t *Tree) BoolLiteral(id NodeID) (value, ok bool) {
	if t.Kind(id) != KindLiteral {
		return false, false
	}
	switch t.TokenKind(t.Children(id)[0]) {
	case token.KwTrue:
		return true, true
	case token.KwFalse:
		return false, true
	}
	return false, false
}

// FunctionBody returns the body block of a function, NoNodeID for declarations.
func (t *Tree) FunctionBody(id NodeID) NodeID {
	if t.Kind(id) != KindFunction {
		return NoNodeID
	}
	return t.ChildOfKind(id, KindBlock)
}

// FunctionName returns the name of a function item.
func (t *Tree) FunctionName(id NodeID) string {
	c := t.ChildToken(id, token.KwFn)
	if !c.IsValid() {
		return ""
	}
	siblings := t.Children(id)
	for i, s := range siblings {
		if s == c && i+1 < len(siblings) {
			if tok, ok := t.Token(siblings[i+1]); ok {
				return tok.Text
			}
		}
	}
	return ""
}

// Params returns the parameters of a function.
func (t *Tree) Params(id NodeID) []NodeID {
	return t.NonTokenChildren(t.ChildOfKind(id, KindParamList))
}
