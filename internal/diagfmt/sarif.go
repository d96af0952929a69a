package diagfmt

import (
	"io"

	"github.com/goccy/go-json"

	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	ShortDescription     sarifText          `json:"shortDescription"`
	Help                 *sarifText         `json:"help,omitempty"`
	DefaultConfiguration sarifConfiguration `json:"defaultConfiguration"`
}

type sarifConfiguration struct {
	Level string `json:"level"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex *int            `json:"ruleIndex,omitempty"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Related   []sarifLocation `json:"relatedLocations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	ID       *int          `json:"id,omitempty"`
	Physical sarifPhysical `json:"physicalLocation"`
	Message  *sarifText    `json:"message,omitempty"`
}

type sarifPhysical struct {
	Artifact sarifArtifact `json:"artifactLocation"`
	Region   sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description sarifText             `json:"description"`
	Changes     []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	Artifact     sarifArtifact      `json:"artifactLocation"`
	Replacements []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	Deleted  sarifRegion   `json:"deletedRegion"`
	Inserted *sarifContent `json:"insertedContent,omitempty"`
}

type sarifContent struct {
	Text string `json:"text"`
}

func sarifLevel(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifRegionOf(fs *source.FileSet, span source.Span) sarifRegion {
	start, end := fs.Resolve(span)
	return sarifRegion{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
		ByteOffset:  span.Start,
		ByteLength:  span.Len(),
	}
}

func sarifLocationOf(fs *source.FileSet, span source.Span) sarifLocation {
	return sarifLocation{
		Physical: sarifPhysical{
			Artifact: sarifArtifact{URI: formatPath(fs, span.File, PathModeRelative)},
			Region:   sarifRegionOf(fs, span),
		},
	}
}

// buildSarif собирает SARIF-лог: все правила таблицы в tool.driver.rules и по
// одному result на диагностику. Исправления попадают в fixes, если их
// удалось материализовать.
func buildSarif(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) sarifLog {
	rules := lint.Rules()
	ruleIndex := make(map[diag.Code]int, len(rules))
	driver := sarifDriver{
		Name:           meta.ToolName,
		Version:        meta.ToolVersion,
		InformationURI: meta.InformationURI,
		Rules:          make([]sarifRule, 0, len(rules)),
	}
	for i, r := range rules {
		ruleIndex[r.Code] = i
		sr := sarifRule{
			ID:                   r.Code.ID(),
			Name:                 r.Name(),
			ShortDescription:     sarifText{Text: r.Message},
			DefaultConfiguration: sarifConfiguration{Level: sarifLevel(r.Severity)},
		}
		if r.Help != "" {
			sr.Help = &sarifText{Text: r.Help}
		}
		driver.Rules = append(driver.Rules, sr)
	}

	results := make([]sarifResult, 0, bag.Len())
	hasErrors := false
	ctx := diag.FixBuildContext{FileSet: fs}
	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.ID(),
			Level:     sarifLevel(d.Severity),
			Message:   sarifText{Text: d.Message},
			Locations: []sarifLocation{sarifLocationOf(fs, d.Primary)},
		}
		if d.Severity == diag.SevError {
			hasErrors = true
		}
		if idx, ok := ruleIndex[d.Code]; ok {
			res.RuleIndex = &idx
		}
		for i, note := range d.Notes {
			loc := sarifLocationOf(fs, note.Span)
			id := i
			loc.ID = &id
			loc.Message = &sarifText{Text: note.Msg}
			res.Related = append(res.Related, loc)
		}
		for _, f := range sortedFixes(d.Fixes) {
			resolved, err := f.Resolve(ctx)
			if err != nil || len(resolved.Edits) == 0 {
				continue
			}
			res.Fixes = append(res.Fixes, sarifFixOf(fs, resolved))
		}
		results = append(results, res)
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: driver},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !hasErrors}}
	}
	return sarifLog{Version: sarifVersion, Schema: sarifSchema, Runs: []sarifRun{run}}
}

func sarifFixOf(fs *source.FileSet, f diag.Fix) sarifFix {
	byFile := make(map[source.FileID]int)
	out := sarifFix{Description: sarifText{Text: f.Title}}
	for _, e := range f.Edits {
		idx, ok := byFile[e.Span.File]
		if !ok {
			idx = len(out.Changes)
			byFile[e.Span.File] = idx
			out.Changes = append(out.Changes, sarifArtifactChange{
				Artifact: sarifArtifact{URI: formatPath(fs, e.Span.File, PathModeRelative)},
			})
		}
		rep := sarifReplacement{Deleted: sarifRegionOf(fs, e.Span)}
		if e.NewText != "" {
			rep.Inserted = &sarifContent{Text: e.NewText}
		}
		out.Changes[idx].Replacements = append(out.Changes[idx].Replacements, rep)
	}
	return out
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildSarif(bag, fs, meta))
}
