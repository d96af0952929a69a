package source

import (
	"fmt"
)

// Span - полуинтервал байтов [Start, End) внутри одного файла.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Overlaps проверяет пересечение полуинтервалов. Пустые спаны внутри чужого
// диапазона тоже считаются пересечением, иначе вставка могла бы разрезать правку.
func (s Span) Overlaps(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Empty() || other.Empty() {
		return s.Start > other.Start && s.Start < other.End ||
			other.Start > s.Start && other.Start < s.End
	}
	return s.Start < other.End && other.Start < s.End
}

// Anchor is a stable reference to a syntax node: the node kind plus its
// trivia-free span. Re-parsing the same text yields the same anchors, so a
// diagnostic can be resolved back to a node after the tree was rebuilt.
type Anchor struct {
	Span Span
	Kind uint16
}

func (a Anchor) IsValid() bool {
	return a.Kind != 0
}

func (a Anchor) String() string {
	return fmt.Sprintf("%s#%d", a.Span, a.Kind)
}
