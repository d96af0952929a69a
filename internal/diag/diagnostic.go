package diag

import (
	"cairolint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Anchor   source.Anchor // нулевой у лексера/парсера
	Notes    []Note
	Fixes    []Fix
}
