// Package lint содержит детекторы паттернов и таблицу правил.
//
// Таблица rules - единственный источник правды: категория, код, сообщение,
// severity и поддержка исправления. Сообщение - единственный канал, по
// которому категория переживает границу детектор/фиксер, поэтому Classify
// работает строго по тексту сообщения.
package lint

import (
	"errors"
	"fmt"
	"strings"

	"cairolint/internal/diag"
)

// Category - закрытое перечисление категорий линтов.
type Category uint8

const (
	Unknown Category = iota
	DestructuringMatch
	MatchForEquality
	DoubleParens
	DoubleComparison
	BreakWithUnit
	BoolComparison
	CollapsibleElseIf
	DuplicateUnderscoreParams
	LoopPopFront
	EquatableIfLet
	UnusedVariable
	UnusedImport
	categoryCount
)

var categoryNames = [...]string{
	Unknown:                   "unknown",
	DestructuringMatch:        "destructuring_match",
	MatchForEquality:          "match_for_equality",
	DoubleParens:              "double_parens",
	DoubleComparison:          "double_comparison",
	BreakWithUnit:             "break_unit",
	BoolComparison:            "bool_comparison",
	CollapsibleElseIf:         "collapsible_else_if",
	DuplicateUnderscoreParams: "duplicate_underscore_params",
	LoopPopFront:              "loop_pop_front",
	EquatableIfLet:            "equatable_if_let",
	UnusedVariable:            "unused_variable",
	UnusedImport:              "unused_import",
}

func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "Category?"
}

// FixSupport - есть ли у категории рутина исправления.
type FixSupport uint8

const (
	FixNone FixSupport = iota
	FixAvailable
	// FixExcluded - исправление делается раньше в конвейере (unused import).
	FixExcluded
)

func (f FixSupport) String() string {
	switch f {
	case FixAvailable:
		return "yes"
	case FixExcluded:
		return "excluded"
	default:
		return "no"
	}
}

// Rule - строка таблицы.
type Rule struct {
	Category Category
	Code     diag.Code
	Severity diag.Severity
	Message  string
	Fix      FixSupport
	Help     string
}

// Name возвращает имя правила для конфигурации и explain.
func (r Rule) Name() string {
	switch r.Code {
	case diag.LintDoubleComparisonSimplify:
		return "double_comparison_simplify"
	case diag.LintDoubleComparisonRedundant:
		return "double_comparison_redundant"
	case diag.LintDoubleComparisonContradicts:
		return "double_comparison_contradictory"
	case diag.LintDoubleComparisonAlwaysTrue:
		return "double_comparison_always_true"
	}
	return r.Category.String()
}

const (
	msgDestructuringMatch        = "you seem to be trying to use match for destructuring a single pattern. Consider using if let"
	msgMatchForEquality          = "you seem to be trying to use match for an equality check. Consider using if"
	msgDoubleParens              = "unnecessary double parentheses found. Consider removing them."
	msgDoubleComparisonSimplify  = "redundant double comparison found. Consider simplifying to a single comparison."
	msgDoubleComparisonRedundant = "redundant double comparison found: one side is implied by the other."
	msgDoubleComparisonFalse     = "this double comparison is always false."
	msgDoubleComparisonTrue      = "this double comparison is always true."
	msgBreakUnit                 = "unnecessary double parentheses found after break. Consider removing them."
	msgBoolComparison            = "unnecessary comparison with a boolean value. Use the variable directly."
	msgCollapsibleElseIf         = "consider using else if instead of else { if ... }"
	msgDuplicateUnderscoreParams = "duplicate parameter names with underscore prefix."
	msgLoopPopFront              = "you seem to be trying to use loop for iterating over a span. Consider using for in"
	msgEquatableIfLet            = "if let pattern used for equatable value. Consider using a simple comparison =="
	msgUnusedVariable            = "unused variable."
	msgUnusedImport              = "unused import."
)

var rules = []Rule{
	{DestructuringMatch, diag.LintDestructuringMatch, diag.SevWarning, msgDestructuringMatch, FixAvailable,
		"A two-arm match where one arm ignores the value reads better as `if let`."},
	{MatchForEquality, diag.LintMatchForEquality, diag.SevWarning, msgMatchForEquality, FixNone,
		"A match that compares against a single value with a no-op fallback is an `if` with `==`."},
	{DoubleParens, diag.LintDoubleParens, diag.SevWarning, msgDoubleParens, FixAvailable,
		"`((x))` is the same as `x`."},
	{DoubleComparison, diag.LintDoubleComparisonSimplify, diag.SevWarning, msgDoubleComparisonSimplify, FixAvailable,
		"`a < b || a == b` is `a <= b`."},
	{DoubleComparison, diag.LintDoubleComparisonRedundant, diag.SevWarning, msgDoubleComparisonRedundant, FixAvailable,
		"`a < b && a <= b` is `a < b`: the second comparison adds nothing."},
	{DoubleComparison, diag.LintDoubleComparisonContradicts, diag.SevError, msgDoubleComparisonFalse, FixNone,
		"`a < b && a > b` can never hold; the condition is dead code."},
	{DoubleComparison, diag.LintDoubleComparisonAlwaysTrue, diag.SevWarning, msgDoubleComparisonTrue, FixNone,
		"`a <= b || a > b` always holds; the condition can be dropped."},
	{BreakWithUnit, diag.LintBreakUnit, diag.SevWarning, msgBreakUnit, FixAvailable,
		"`break ();` is `break;`."},
	{BoolComparison, diag.LintBoolComparison, diag.SevWarning, msgBoolComparison, FixAvailable,
		"`x == true` is `x`, `x == false` is `!x`."},
	{CollapsibleElseIf, diag.LintCollapsibleElseIf, diag.SevWarning, msgCollapsibleElseIf, FixAvailable,
		"An else block that only holds an if expression can be written as `else if`."},
	{DuplicateUnderscoreParams, diag.LintDuplicateUnderscoreParams, diag.SevWarning, msgDuplicateUnderscoreParams, FixNone,
		"Parameters `x` and `_x` differ only by the underscore prefix."},
	{LoopPopFront, diag.LintLoopPopFront, diag.SevWarning, msgLoopPopFront, FixNone,
		"`loop { match span.pop_front() { Some(x) => ..., None => { break; } } }` is a `for x in span` loop."},
	{EquatableIfLet, diag.LintEquatableIfLet, diag.SevWarning, msgEquatableIfLet, FixNone,
		"`if let 1 = x` or `if let E::A = x` compares values; use `==`."},
	{UnusedVariable, diag.LintUnusedVariable, diag.SevWarning, msgUnusedVariable, FixAvailable,
		"A binding that is never read. Prefix it with `_` to silence the warning."},
	{UnusedImport, diag.LintUnusedImport, diag.SevWarning, msgUnusedImport, FixExcluded,
		"A `use` whose name is never referenced in the module."},
}

var (
	byMessage = make(map[string]*Rule, len(rules))
	byCode    = make(map[diag.Code]*Rule, len(rules))
)

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
	for i := range rules {
		byMessage[rules[i].Message] = &rules[i]
		byCode[rules[i].Code] = &rules[i]
	}
}

// Validate проверяет таблицу: коды, имена и сообщения уникальны, каждая
// категория кроме Unknown представлена.
func Validate() error {
	var errs []error
	codes := make(map[diag.Code]struct{})
	names := make(map[string]struct{})
	messages := make(map[string]struct{})
	present := make(map[Category]struct{})
	for _, r := range rules {
		if r.Category == Unknown || r.Category >= categoryCount {
			errs = append(errs, fmt.Errorf("rule %s: invalid category %d", r.Code.ID(), r.Category))
		}
		if !r.Code.IsLint() {
			errs = append(errs, fmt.Errorf("rule %s: not a lint code", r.Code.ID()))
		}
		if _, dup := codes[r.Code]; dup {
			errs = append(errs, fmt.Errorf("duplicate code %s", r.Code.ID()))
		}
		if _, dup := names[r.Name()]; dup {
			errs = append(errs, fmt.Errorf("duplicate rule name %q", r.Name()))
		}
		if _, dup := messages[r.Message]; dup || r.Message == "" {
			errs = append(errs, fmt.Errorf("rule %s: empty or duplicate message %q", r.Code.ID(), r.Message))
		}
		codes[r.Code] = struct{}{}
		names[r.Name()] = struct{}{}
		messages[r.Message] = struct{}{}
		present[r.Category] = struct{}{}
	}
	for c := Category(1); c < categoryCount; c++ {
		if _, ok := present[c]; !ok {
			errs = append(errs, fmt.Errorf("category %s has no rule", c))
		}
	}
	return errors.Join(errs...)
}

// Classify восстанавливает категорию по сообщению диагностики.
func Classify(message string) Category {
	if r, ok := byMessage[message]; ok {
		return r.Category
	}
	return Unknown
}

// RuleForMessage возвращает строку таблицы для сообщения.
func RuleForMessage(message string) (Rule, bool) {
	r, ok := byMessage[message]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// RuleForCode возвращает строку таблицы для кода.
func RuleForCode(code diag.Code) (Rule, bool) {
	r, ok := byCode[code]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// Rules возвращает копию таблицы в порядке кодов.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Resolve переводит селектор из конфигурации или флага в коды правил.
// Принимает ID кода ("CL0003"), имя категории ("double_comparison" -
// все её правила) или имя правила ("double_comparison_redundant").
func Resolve(selector string) ([]diag.Code, error) {
	s := strings.TrimSpace(selector)
	if code, ok := diag.ParseCode(strings.ToUpper(s)); ok {
		if _, isRule := byCode[code]; isRule {
			return []diag.Code{code}, nil
		}
	}
	s = strings.ToLower(strings.ReplaceAll(s, "-", "_"))
	var out []diag.Code
	for _, r := range rules {
		if r.Name() == s || r.Category.String() == s {
			out = append(out, r.Code)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown lint %q", selector)
	}
	return out, nil
}
