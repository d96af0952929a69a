package lint

import (
	"fmt"

	"cairolint/internal/diag"
)

// Selection - какие правила включены. Нулевое значение включает всё.
type Selection struct {
	only     map[diag.Code]struct{}
	disabled map[diag.Code]struct{}
}

// NewSelection строит выборку из селекторов enable/disable (см. Resolve).
// Пустой enable - все правила.
func NewSelection(enable, disable []string) (Selection, error) {
	var sel Selection
	for _, s := range enable {
		codes, err := Resolve(s)
		if err != nil {
			return Selection{}, fmt.Errorf("enable: %w", err)
		}
		if sel.only == nil {
			sel.only = make(map[diag.Code]struct{})
		}
		for _, c := range codes {
			sel.only[c] = struct{}{}
		}
	}
	for _, s := range disable {
		codes, err := Resolve(s)
		if err != nil {
			return Selection{}, fmt.Errorf("disable: %w", err)
		}
		if sel.disabled == nil {
			sel.disabled = make(map[diag.Code]struct{})
		}
		for _, c := range codes {
			sel.disabled[c] = struct{}{}
		}
	}
	return sel, nil
}

func (s Selection) Enabled(code diag.Code) bool {
	if _, off := s.disabled[code]; off {
		return false
	}
	if s.only == nil {
		return true
	}
	_, on := s.only[code]
	return on
}
