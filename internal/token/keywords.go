package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"const":    KwConst,
	"mut":      KwMut,
	"ref":      KwRef,
	"if":       KwIf,
	"else":     KwElse,
	"match":    KwMatch,
	"loop":     KwLoop,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"use":      KwUse,
	"mod":      KwMod,
	"impl":     KwImpl,
	"of":       KwOf,
	"trait":    KwTrait,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"type":     KwType,
	"pub":      KwPub,
	"as":       KwAs,
	"extern":   KwExtern,
	"nopanic":  KwNopanic,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
