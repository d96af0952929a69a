package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// ключевые слова; порядок важен для Token.IsKeyword
	KwFn
	KwLet
	KwConst
	KwMut
	KwRef
	KwIf
	KwElse
	KwMatch
	KwLoop
	KwWhile
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwReturn
	KwUse
	KwMod
	KwImpl
	KwOf
	KwTrait
	KwStruct
	KwEnum
	KwType
	KwPub
	KwAs
	KwExtern
	KwNopanic
	KwTrue
	KwFalse

	IntLit         // 42, 0x2a, 1_000_u32
	StringLit      // "..." (ByteArray)
	ShortStringLit // 'abc' (felt252)

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Amp           // &
	Pipe          // |
	Caret         // ^
	AndAnd        // &&
	OrOr          // ||
	Tilde         // ~
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	DotDot        // ..
	Arrow         // ->
	FatArrow      // =>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	At            // @
	Hash          // #
	Underscore    // _
	Dollar        // $
)

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	Ident:          "Ident",
	KwFn:           "fn",
	KwLet:          "let",
	KwConst:        "const",
	KwMut:          "mut",
	KwRef:          "ref",
	KwIf:           "if",
	KwElse:         "else",
	KwMatch:        "match",
	KwLoop:         "loop",
	KwWhile:        "while",
	KwFor:          "for",
	KwIn:           "in",
	KwBreak:        "break",
	KwContinue:     "continue",
	KwReturn:       "return",
	KwUse:          "use",
	KwMod:          "mod",
	KwImpl:         "impl",
	KwOf:           "of",
	KwTrait:        "trait",
	KwStruct:       "struct",
	KwEnum:         "enum",
	KwType:         "type",
	KwPub:          "pub",
	KwAs:           "as",
	KwExtern:       "extern",
	KwNopanic:      "nopanic",
	KwTrue:         "true",
	KwFalse:        "false",
	IntLit:         "IntLit",
	StringLit:      "StringLit",
	ShortStringLit: "ShortStringLit",
	Plus:           "+",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Percent:        "%",
	Assign:         "=",
	PlusAssign:     "+=",
	MinusAssign:    "-=",
	StarAssign:     "*=",
	SlashAssign:    "/=",
	PercentAssign:  "%=",
	EqEq:           "==",
	Bang:           "!",
	BangEq:         "!=",
	Lt:             "<",
	LtEq:           "<=",
	Gt:             ">",
	GtEq:           ">=",
	Amp:            "&",
	Pipe:           "|",
	Caret:          "^",
	AndAnd:         "&&",
	OrOr:           "||",
	Tilde:          "~",
	Question:       "?",
	Colon:          ":",
	ColonColon:     "::",
	Semicolon:      ";",
	Comma:          ",",
	Dot:            ".",
	DotDot:         "..",
	Arrow:          "->",
	FatArrow:       "=>",
	LParen:         "(",
	RParen:         ")",
	LBrace:         "{",
	RBrace:         "}",
	LBracket:       "[",
	RBracket:       "]",
	At:             "@",
	Hash:           "#",
	Underscore:     "_",
	Dollar:         "$",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind?"
}

// IsComparison reports whether k is one of the relational operators.
func (k Kind) IsComparison() bool {
	switch k {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}
