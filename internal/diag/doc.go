// Package diag defines the diagnostic model shared by the lexer, parser,
// semantic model and lint passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – human oriented text. For lint diagnostics the message is also
//     the identity of the lint category: internal/lint classifies diagnostics
//     back to categories by message only, so messages must stay unique.
//   - Primary – the source.Span shown to the user.
//   - Anchor – stable reference to the syntax node the finding is about; fix
//     routines resolve it back to a live node.
//   - Notes – optional secondary spans.
//   - Fixes – optional Fix records.
//
// Lint diagnostics never carry materialised fixes out of the analysis pass.
// The fix pass computes them on demand and attaches them either directly or as
// a FixThunk that the fix engine resolves with Fix.Resolve.
//
// # Emitting diagnostics
//
// Producers go through a Reporter. BagReporter collects into a Bag, which
// supports sorting, deduplication and a hard cap on the number of entries.
// DedupReporter drops repeated (code, span, message) triples before they reach
// the next reporter.
//
// Package diag does not perform formatting or IO: rendering lives in
// internal/diagfmt and application of fixes in internal/fix.
package diag
