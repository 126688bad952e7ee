// Package keymap resolves a key label printed on a layout to the count of
// whichever token the key logger actually recorded for it.
package keymap

import (
	"strings"

	"github.com/dtnitsch/keyheat/pkg/analytics"
)

// Table maps a lower-cased printed label to the logged spellings of that key,
// in lookup priority order.
type Table map[string][]string

// defaultTable mirrors the token names written by the key logger.
var defaultTable = Table{
	"tab":       {"<Tab>", "tab"},
	"capslock":  {"<CapsLock>", "capslock"},
	"全角/半角":     {"<F>", "<H>"},
	"shift":     {"<ShiftLeft>", "<ShiftRight>", "shift"},
	"ctrl":      {"<ControlLeft>", "<ControlRight>", "ctrl"},
	"win":       {"<MetaLeft>", "<MetaRight>", "win"},
	"alt":       {"<AltLeft>", "<AltRight>", "alt"},
	"esc":       {"<Escape>", "esc"},
	"space":     {"<Space>", "space", " "},
	"backspace": {"<Backspace>", "backspace"},
	"delete":    {"<Delete>", "delete"},
	"enter":     {"<Enter>", "<Return>", "enter"},
	"app":       {"<App>", "app"},
}

// DefaultTable returns a copy of the built-in alias table.
func DefaultTable() Table {
	return defaultTable.clone()
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for label, candidates := range t {
		out[label] = append([]string(nil), candidates...)
	}
	return out
}

// WithOverrides returns a new table where each override entry replaces the
// entry with the same lower-cased label. The receiver is left untouched.
func (t Table) WithOverrides(overrides map[string][]string) Table {
	out := t.clone()
	for label, candidates := range overrides {
		out[strings.ToLower(label)] = append([]string(nil), candidates...)
	}
	return out
}

// Candidates returns the logged spellings for a printed label, if any.
func (t Table) Candidates(printedKey string) []string {
	return t[strings.ToLower(printedKey)]
}

// Normalizer resolves printed labels against a frequency mapping.
type Normalizer struct {
	table Table
}

func NewNormalizer(table Table) *Normalizer {
	if table == nil {
		table = DefaultTable()
	}
	return &Normalizer{table: table}
}

// Resolve returns the count for a printed key.
//
// Aliases win over a literal match and the first alias present in freq wins
// over later ones, even when its stored count is zero. Without a matching
// alias the printed key is looked up verbatim; an absent key counts 0.
func (n *Normalizer) Resolve(printedKey string, freq *analytics.Counter[string]) int {
	for _, token := range n.table.Candidates(printedKey) {
		if count, ok := freq.Get(token); ok {
			return count
		}
	}
	return freq.Count(printedKey)
}

func (n *Normalizer) Table() Table {
	return n.table.clone()
}
