package fuzztests

import (
	"context"
	"testing"
	"time"

	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/parser"
	"cairolint/internal/quickfix"
	"cairolint/internal/sema"
	"cairolint/internal/source"
	"cairolint/internal/testkit"
)

// pipelineTimeout is the maximum time allowed for one input. Longer runs
// indicate an infinite loop in parser recovery or a fix routine.
const pipelineTimeout = 5 * time.Second

// FuzzPipeline parses arbitrary input, checks the tree and runs every lint
// and fix routine over it.
func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)

	// Add specific edge cases for parser recovery
	f.Add([]byte("fn f() { let x = 1\nlet y = 2; }"))
	f.Add([]byte("fn f() { match x { } }"))
	f.Add([]byte("fn f() { if { } else { if } }"))
	f.Add([]byte("impl of { fn }"))
	f.Add([]byte("fn f() -> { (((( }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.cairo", input))
			bag := diag.NewBag(128)
			tree := parser.ParseFile(file, parser.Options{
				Reporter:  &diag.BagReporter{Bag: bag},
				MaxErrors: 128,
			}).Tree
			if err := testkit.CheckTree(tree); err != nil {
				done <- err
				return
			}
			found := lint.Analyze(sema.Build(tree, "fuzz"), lint.Options{})
			for _, d := range found {
				// ошибки контракта допустимы, паники и зависания нет
				_, _, _ = quickfix.Compute(ctx, tree, d)
			}
			done <- nil
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("tree invariants: %v\ninput (%d bytes): %q", err, len(input), truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected: took longer than %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
