package ast

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Arena stores values contiguously and hands out 1-based ids, so that the
// zero id can mean "no node".
type Arena[T any] struct {
	items []T
}

func NewArena[T any](hint int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, max(hint, 0))}
}

// Push appends v and returns its id.
func (a *Arena[T]) Push(v T) uint32 {
	a.items = append(a.items, v)
	id, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("ast arena: %w", err))
	}
	return id
}

// At returns nil for 0 and for ids that were never pushed.
func (a *Arena[T]) At(id uint32) *T {
	if id == 0 || uint64(id) > uint64(len(a.items)) {
		return nil
	}
	return &a.items[id-1]
}

func (a *Arena[T]) Len() int { return len(a.items) }

// All yields ids with pointers into the arena, in push order.
func (a *Arena[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		for i := range a.items {
			if !yield(uint32(i)+1, &a.items[i]) { // #nosec G115 -- Push не даст переполнить
				return
			}
		}
	}
}
