package quickfix

import (
	"errors"
	"fmt"
)

var (
	// ErrContract means a fix routine got a node whose shape its detector
	// never produces. Detection and fixing are out of sync; no text is emitted.
	ErrContract = errors.New("fix contract violation")
	// ErrUnbalanced is returned by CollapseElseIf on input whose braces do not
	// close the construct it started rewriting.
	ErrUnbalanced = errors.New("unbalanced else block")
	// ErrStaleAnchor means the diagnostic anchor does not resolve in the tree.
	ErrStaleAnchor = errors.New("diagnostic anchor does not resolve")
)

// contractViolation is the panic value raised by violate. Compute recovers it
// and turns it into an error wrapping ErrContract; any other panic propagates.
type contractViolation struct {
	err error
}

// violate accepts %w, so the cause stays visible to errors.Is.
func violate(format string, args ...any) {
	panic(contractViolation{err: fmt.Errorf(format, args...)})
}
