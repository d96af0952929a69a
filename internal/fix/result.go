package fix

import (
	"errors"

	"cairolint/internal/diag"
)

// ErrNoFixes means nothing was applied; ApplyResult.Skipped says why.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode picks which candidates Apply tries.
type ApplyMode uint8

const (
	// ApplyModeOnce takes the first always-safe fix by position, or the first fix at all.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll takes every fix except manual-review ones.
	ApplyModeAll
	// ApplyModeID takes every fix whose ID equals TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string // код линта для ApplyModeID, например "CL0003"
	// DryRun leaves files alone; FileChange.After still holds the result.
	DryRun bool
}

// Skip reasons reported in SkippedFix.Reason.
const (
	ReasonConflict     = "conflict"
	ReasonStale        = "existing text does not match expected content"
	ReasonOutOfRange   = "edit span out of range"
	ReasonVirtual      = "target file is virtual"
	ReasonNoEdits      = "fix has no edits"
	ReasonManualReview = "applicability is manual-review"
	ReasonIDNotFound   = "fix id not found"
)

type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

type SkippedFix struct {
	ID     string
	Title  string
	Code   diag.Code
	Reason string
}

// FileChange is the outcome for one file: contents before and after.
type FileChange struct {
	Path      string
	EditCount int
	Before    []byte
	After     []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

func (r *ApplyResult) skip(c *candidate, reason string) {
	r.Skipped = append(r.Skipped, SkippedFix{ID: c.fix.ID, Title: c.fix.Title, Code: c.diag.Code, Reason: reason})
}
