package ast

// Kind classifies syntax nodes. The value doubles as the anchor kind tag, so
// existing values must not be renumbered.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindToken        // лист: один токен
	KindFile
	KindError // токены, пропущенные при восстановлении

	// items
	KindFunction
	KindParamList
	KindParam
	KindReturnType
	KindImpl
	KindTrait
	KindConst
	KindUse
	KindMod
	KindStruct
	KindEnum
	KindTypeAlias
	KindAttribute
	KindType
	KindGenericParams

	// statements
	KindLetStmt
	KindExprStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt

	// expressions
	KindPath
	KindLiteral
	KindParen
	KindTuple // `()` - тоже Tuple без элементов
	KindArray
	KindUnary
	KindBinary
	KindCall
	KindArgList
	KindMethodCall
	KindField
	KindIndex
	KindTry
	KindBlock
	KindIf
	KindLetCond
	KindElse
	KindMatch
	KindMatchArm
	KindLoop
	KindWhile
	KindFor
	KindStructLit
	KindStructLitField
	KindMacroCall
	KindClosure

	// patterns
	KindPatWildcard
	KindPatIdent
	KindPatLiteral
	KindPatEnum
	KindPatStruct
	KindPatStructField
	KindPatTuple

	kindCount
)

var kindNames = [...]string{
	KindInvalid:        "Invalid",
	KindToken:          "Token",
	KindFile:           "File",
	KindError:          "Error",
	KindFunction:       "Function",
	KindParamList:      "ParamList",
	KindParam:          "Param",
	KindReturnType:     "ReturnType",
	KindImpl:           "Impl",
	KindTrait:          "Trait",
	KindConst:          "Const",
	KindUse:            "Use",
	KindMod:            "Mod",
	KindStruct:         "Struct",
	KindEnum:           "Enum",
	KindTypeAlias:      "TypeAlias",
	KindAttribute:      "Attribute",
	KindType:           "Type",
	KindGenericParams:  "GenericParams",
	KindLetStmt:        "LetStmt",
	KindExprStmt:       "ExprStmt",
	KindReturnStmt:     "ReturnStmt",
	KindBreakStmt:      "BreakStmt",
	KindContinueStmt:   "ContinueStmt",
	KindPath:           "Path",
	KindLiteral:        "Literal",
	KindParen:          "Paren",
	KindTuple:          "Tuple",
	KindArray:          "Array",
	KindUnary:          "Unary",
	KindBinary:         "Binary",
	KindCall:           "Call",
	KindArgList:        "ArgList",
	KindMethodCall:     "MethodCall",
	KindField:          "Field",
	KindIndex:          "Index",
	KindTry:            "Try",
	KindBlock:          "Block",
	KindIf:             "If",
	KindLetCond:        "LetCond",
	KindElse:           "Else",
	KindMatch:          "Match",
	KindMatchArm:       "MatchArm",
	KindLoop:           "Loop",
	KindWhile:          "While",
	KindFor:            "For",
	KindStructLit:      "StructLit",
	KindStructLitField: "StructLitField",
	KindMacroCall:      "MacroCall",
	KindClosure:        "Closure",
	KindPatWildcard:    "PatWildcard",
	KindPatIdent:       "PatIdent",
	KindPatLiteral:     "PatLiteral",
	KindPatEnum:        "PatEnum",
	KindPatStruct:      "PatStruct",
	KindPatStructField: "PatStructField",
	KindPatTuple:       "PatTuple",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind?"
}

// IsPattern reports whether k is one of the pattern kinds.
func (k Kind) IsPattern() bool {
	return k >= KindPatWildcard && k <= KindPatTuple
}

// IsStatement reports whether k is a statement kind.
func (k Kind) IsStatement() bool {
	return k >= KindLetStmt && k <= KindContinueStmt
}

// IsItem reports whether k is a module-level item kind.
func (k Kind) IsItem() bool {
	switch k {
	case KindFunction, KindImpl, KindTrait, KindConst, KindUse, KindMod, KindStruct, KindEnum, KindTypeAlias:
		return true
	default:
		return false
	}
}

// IsExpr reports whether k is an expression kind. Arm, field and argument
// list wrappers are not expressions on their own.
func (k Kind) IsExpr() bool {
	switch k {
	case KindArgList, KindLetCond, KindElse, KindMatchArm, KindStructLitField:
		return false
	}
	return k >= KindPath && k <= KindClosure
}
