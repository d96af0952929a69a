package sema

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"cairolint/internal/ast"
	"cairolint/internal/token"
)

// Binding - имя, введённое параметром или паттерном.
// Node - PatIdent, PatStructField (сокращённая форма) или Param.
type Binding struct {
	Node ast.NodeID
	Name string
	Used bool
}

// Ignored reports whether the binding is exempt from unused checks.
func (b *Binding) Ignored() bool {
	return b.Name == "" || b.Name == "self" || strings.HasPrefix(b.Name, "_")
}

// NormalizeIdent приводит идентификатор к NFC, чтобы визуально одинаковые
// имена сравнивались как равные.
func NormalizeIdent(name string) string {
	return norm.NFC.String(name)
}

type scope struct {
	names map[string][]*Binding
}

type resolver struct {
	tree     *ast.Tree
	scopes   []scope
	bindings []*Binding
}

// Bindings разрешает имена в теле функции и возвращает все привязки в
// порядке объявления с отметкой об использовании.
func (f *Function) Bindings(tree *ast.Tree) []*Binding {
	r := resolver{tree: tree}
	r.push()
	for _, p := range f.Signature.Params {
		r.declare(&Binding{Node: p.Node, Name: p.Name}, false)
	}
	r.walk(f.Body)
	r.pop()
	return r.bindings
}

// UnusedBindings возвращает неиспользуемые привязки, которые стоит репортить.
func (f *Function) UnusedBindings(tree *ast.Tree) []*Binding {
	var out []*Binding
	for _, b := range f.Bindings(tree) {
		if !b.Used && !b.Ignored() {
			out = append(out, b)
		}
	}
	return out
}

func (r *resolver) push() {
	r.scopes = append(r.scopes, scope{names: make(map[string][]*Binding)})
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare добавляет привязку в текущую область. alt=true - альтернатива
// паттерна `A(x) | B(x)`: одноимённые привязки не затеняют друг друга.
func (r *resolver) declare(b *Binding, alt bool) {
	if b.Name == "" {
		return
	}
	r.bindings = append(r.bindings, b)
	key := NormalizeIdent(b.Name)
	top := &r.scopes[len(r.scopes)-1]
	if alt {
		top.names[key] = append(top.names[key], b)
		return
	}
	top.names[key] = []*Binding{b}
}

func (r *resolver) use(name string) {
	key := NormalizeIdent(name)
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if bs, ok := r.scopes[i].names[key]; ok {
			for _, b := range bs {
				b.Used = true
			}
			return
		}
	}
}

func (r *resolver) walk(id ast.NodeID) {
	t := r.tree
	switch t.Kind(id) {
	case ast.KindToken, ast.KindInvalid:
		return
	case ast.KindFunction, ast.KindImpl, ast.KindTrait, ast.KindConst, ast.KindUse, ast.KindMod,
		ast.KindStruct, ast.KindEnum, ast.KindTypeAlias, ast.KindType, ast.KindAttribute:
		return
	case ast.KindBlock:
		r.push()
		r.walkChildren(id)
		r.pop()
	case ast.KindLetStmt:
		rest := t.NonTokenChildren(id)
		if len(rest) == 0 {
			return
		}
		if init := rest[len(rest)-1]; len(rest) > 1 && t.Kind(init) != ast.KindType {
			r.walk(init)
		}
		r.declarePattern(rest[0], false)
	case ast.KindIf, ast.KindWhile:
		rest := t.NonTokenChildren(id)
		if len(rest) == 0 {
			return
		}
		if t.Kind(rest[0]) != ast.KindLetCond {
			r.walkChildren(id)
			return
		}
		pats, expr := t.LetCondParts(rest[0])
		r.walk(expr)
		r.push()
		r.declareAlts(pats)
		if len(rest) > 1 {
			r.walk(rest[1])
		}
		r.pop()
		if len(rest) > 2 {
			r.walk(rest[2])
		}
	case ast.KindFor:
		rest := t.NonTokenChildren(id)
		if len(rest) != 3 {
			r.walkChildren(id)
			return
		}
		r.walk(rest[1])
		r.push()
		r.declarePattern(rest[0], false)
		r.walk(rest[2])
		r.pop()
	case ast.KindMatchArm:
		pats, body := t.ArmParts(id)
		r.push()
		r.declareAlts(pats)
		r.walk(body)
		r.pop()
	case ast.KindPath:
		if segs := t.PathSegments(id); len(segs) == 1 && len(t.Children(id)) == 1 {
			r.use(segs[0])
		}
	case ast.KindMacroCall:
		// имя макроса - не переменная
		for _, c := range t.NonTokenChildren(id)[1:] {
			r.walk(c)
		}
	case ast.KindStructLit:
		// первый ребёнок - путь типа
		for _, c := range t.NonTokenChildren(id)[1:] {
			r.walk(c)
		}
	case ast.KindClosure:
		r.push()
		r.walkChildren(id)
		r.pop()
	default:
		r.walkChildren(id)
	}
}

func (r *resolver) walkChildren(id ast.NodeID) {
	for _, c := range r.tree.Children(id) {
		r.walk(c)
	}
}

func (r *resolver) declareAlts(pats []ast.NodeID) {
	for _, p := range pats {
		r.declarePattern(p, len(pats) > 1)
	}
}

func (r *resolver) declarePattern(id ast.NodeID, alt bool) {
	t := r.tree
	switch t.Kind(id) {
	case ast.KindPatIdent:
		_, name := t.Identifier(id)
		r.declare(&Binding{Node: id, Name: name}, alt)
	case ast.KindPatStructField:
		nested := t.NonTokenChildren(id)
		if len(nested) == 0 {
			_, name := t.Identifier(id)
			r.declare(&Binding{Node: id, Name: name}, alt)
			return
		}
		r.declarePattern(nested[0], alt)
	case ast.KindPatEnum, ast.KindPatStruct, ast.KindPatTuple:
		for _, c := range t.NonTokenChildren(id) {
			if t.Kind(c).IsPattern() {
				r.declarePattern(c, alt)
			}
		}
	}
}

// IsShorthandField reports whether a binding comes from `S { x }`: renaming
// it requires spelling out the field, `S { x: _x }`.
func IsShorthandField(tree *ast.Tree, id ast.NodeID) bool {
	return tree.Kind(id) == ast.KindPatStructField && !tree.ChildToken(id, token.Colon).IsValid()
}
