// Package fuzztests houses Go fuzz harnesses over the cairolint pipeline
// (source -> lexer -> parser -> sema -> lint -> quickfix). The goal is to
// smoke test robustness: no panics, no hangs, well-formed trees.
//
// Назначение: гонять произвольные байты через FileSet, лексер, парсер,
// линты и вычисление исправлений, плюс отдельно через CollapseElseIf.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/sema,
// internal/lint, internal/quickfix, internal/testkit.

package fuzztests
