package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectExpression   Code = 2005
	SynExpectPattern      Code = 2006
	SynExpectType         Code = 2007
	SynExpectBlock        Code = 2008
	SynUnexpectedTopLevel Code = 2009

	// Линты; сообщения и категории живут в internal/lint
	LintDestructuringMatch          Code = 3001
	LintMatchForEquality            Code = 3002
	LintDoubleParens                Code = 3003
	LintDoubleComparisonSimplify    Code = 3004
	LintDoubleComparisonRedundant   Code = 3005
	LintDoubleComparisonContradicts Code = 3006
	LintDoubleComparisonAlwaysTrue  Code = 3007
	LintBreakUnit                   Code = 3008
	LintBoolComparison              Code = 3009
	LintCollapsibleElseIf           Code = 3010
	LintDuplicateUnderscoreParams   Code = 3011
	LintLoopPopFront                Code = 3012
	LintEquatableIfLet              Code = 3013
	LintUnusedVariable              Code = 3014
	LintUnusedImport                Code = 3015

	// IO
	IOLoadFileError Code = 4000

	ObsTimings Code = 6000
)

var codeDescription = map[Code]string{
	UnknownCode:                     "Unknown error",
	LexInfo:                         "Lexical information",
	LexUnknownChar:                  "Unknown character",
	LexUnterminatedString:           "Unterminated string literal",
	LexUnterminatedBlockComment:     "Unterminated block comment",
	LexBadNumber:                    "Bad number literal",
	SynInfo:                         "Syntax information",
	SynUnexpectedToken:              "Unexpected token",
	SynUnclosedDelimiter:            "Unclosed delimiter",
	SynExpectSemicolon:              "Expected semicolon",
	SynExpectIdentifier:             "Expected identifier",
	SynExpectExpression:             "Expected expression",
	SynExpectPattern:                "Expected pattern",
	SynExpectType:                   "Expected type",
	SynExpectBlock:                  "Expected block",
	SynUnexpectedTopLevel:           "Unexpected top-level item",
	LintDestructuringMatch:          "Destructuring match",
	LintMatchForEquality:            "Match used for equality",
	LintDoubleParens:                "Double parentheses",
	LintDoubleComparisonSimplify:    "Simplifiable double comparison",
	LintDoubleComparisonRedundant:   "Redundant double comparison",
	LintDoubleComparisonContradicts: "Contradictory double comparison",
	LintDoubleComparisonAlwaysTrue:  "Double comparison is always true",
	LintBreakUnit:                   "Break with unit value",
	LintBoolComparison:              "Comparison with boolean literal",
	LintCollapsibleElseIf:           "Collapsible else-if",
	LintDuplicateUnderscoreParams:   "Duplicate underscore-prefixed parameter",
	LintLoopPopFront:                "Loop over pop_front",
	LintEquatableIfLet:              "Equatable if let",
	LintUnusedVariable:              "Unused variable",
	LintUnusedImport:                "Unused import",
	IOLoadFileError:                 "I/O load file error",
	ObsTimings:                      "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CL%04d", ic-3000)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// IsLint reports whether the code belongs to a lint category.
func (c Code) IsLint() bool {
	return c >= 3000 && c < 4000
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode находит код по его строковому ID ("CL0003", "SYN2001").
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
