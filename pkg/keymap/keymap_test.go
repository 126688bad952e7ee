package keymap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/keyheat/pkg/analytics"
)

func freqOf(pairs ...any) *analytics.Counter[string] {
	c := analytics.NewCounter[string]()
	for i := 0; i < len(pairs); i += 2 {
		c.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return c
}

func TestResolve_AliasPriority(t *testing.T) {
	n := NewNormalizer(Table{"tab": {"<Tab>", "tab"}})
	freq := freqOf("<Tab>", 5, "tab", 2)

	if got := n.Resolve("Tab", freq); got != 5 {
		t.Errorf("Resolve(Tab) = %d, want 5", got)
	}
}

func TestResolve_FirstAliasWins(t *testing.T) {
	n := NewNormalizer(nil)
	freq := freqOf("<ShiftRight>", 9, "<ShiftLeft>", 4)

	if got := n.Resolve("Shift", freq); got != 4 {
		t.Errorf("Resolve(Shift) = %d, want 4 from <ShiftLeft>", got)
	}
}

func TestResolve_AliasPresentWithZero(t *testing.T) {
	n := NewNormalizer(Table{"tab": {"<Tab>", "tab"}})
	freq := freqOf("<Tab>", 0, "tab", 7, "Tab", 3)

	if got := n.Resolve("Tab", freq); got != 0 {
		t.Errorf("Resolve(Tab) = %d, want 0 from present <Tab>", got)
	}
}

func TestResolve_Fallback(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		key  string
		freq *analytics.Counter[string]
		want int
	}{
		{name: "no table entry", key: "q", freq: freqOf("q", 3), want: 3},
		{name: "verbatim case kept", key: "Q", freq: freqOf("q", 3), want: 0},
		{name: "alias entry but no candidate present", key: "Esc", freq: freqOf("Esc", 6), want: 6},
		{name: "absent", key: "zzz", freq: analytics.NewCounter[string](), want: 0},
		{name: "nil mapping", key: "a", freq: nil, want: 0},
		{name: "space alias with literal space", key: "Space", freq: freqOf(" ", 2), want: 2},
		{name: "non-latin label", key: "全角/半角", freq: freqOf("<H>", 8), want: 8},
		{name: "enter via return", key: "Enter", freq: freqOf("<Return>", 11), want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Resolve(tt.key, tt.freq); got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestDefaultTable_IsCopy(t *testing.T) {
	table := DefaultTable()
	table["tab"][0] = "mutated"
	delete(table, "esc")

	fresh := DefaultTable()
	if fresh["tab"][0] != "<Tab>" {
		t.Errorf("DefaultTable()[tab][0] = %q, want <Tab>", fresh["tab"][0])
	}
	if _, ok := fresh["esc"]; !ok {
		t.Error("DefaultTable() lost esc after caller mutation")
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultTable()
	out := base.WithOverrides(map[string][]string{"Tab": {"TAB"}, "henkan": {"<Unknown(28)>"}})

	if got := out.Candidates("tab"); len(got) != 1 || got[0] != "TAB" {
		t.Errorf("Candidates(tab) = %q, want [TAB]", got)
	}
	if got := out.Candidates("Henkan"); len(got) != 1 {
		t.Errorf("Candidates(Henkan) = %q, want one entry", got)
	}
	if got := base.Candidates("tab"); got[0] != "<Tab>" {
		t.Errorf("base table modified: Candidates(tab) = %q", got)
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := "shift: [\"<ShiftRight>\", \"<ShiftLeft>\"]\nMuhenkan: [\"<Unknown(235)>\"]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write alias file: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}

	if got := table.Candidates("shift")[0]; got != "<ShiftRight>" {
		t.Errorf("Candidates(shift)[0] = %q, want <ShiftRight>", got)
	}
	if got := table.Candidates("muhenkan"); len(got) != 1 {
		t.Errorf("Candidates(muhenkan) = %q, want one entry", got)
	}
	if got := table.Candidates("tab"); len(got) == 0 {
		t.Error("default entries missing after LoadTable()")
	}
}

func TestLoadTable_Missing(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadTable() error = nil, want error for missing file")
	}
}
