package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtnitsch/keyheat/pkg/heatmap"
)

const keyCellWidth = 7

type terminalStyles struct {
	title  lipgloss.Style
	key    lipgloss.Style
	legend lipgloss.Style
}

func newTerminalStyles() terminalStyles {
	return terminalStyles{
		title:  lipgloss.NewStyle().Bold(true).MarginTop(1),
		key:    lipgloss.NewStyle().Width(keyCellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("#333333")),
		legend: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "244"}),
	}
}

// Terminal renders comp as rows of colored key cells. Keys sharing a Y
// position form one row, ordered by X.
func Terminal(comp heatmap.Composition) string {
	styles := newTerminalStyles()

	var blocks []string
	for _, l := range comp.Layouts {
		lines := []string{styles.title.Render(l.Title)}
		for _, row := range rows(l.Keys) {
			cells := make([]string, len(row))
			for i, k := range row {
				cells[i] = styles.key.Background(lipgloss.Color(k.Color.Hex())).Render(cellLabel(k.Label))
			}
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		}
		lines = append(lines, styles.legend.Render(fmt.Sprintf("max %d · %s · %s", l.Max, comp.Strategy, comp.Scope)))
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return strings.Join(blocks, "\n") + "\n"
}

// rows groups keys by rounded Y, top to bottom, each row left to right.
func rows(keys []heatmap.Instruction) [][]heatmap.Instruction {
	byY := make(map[int][]heatmap.Instruction)
	var ys []int
	for _, k := range keys {
		y := int(math.Round(k.Y))
		if _, ok := byY[y]; !ok {
			ys = append(ys, y)
		}
		byY[y] = append(byY[y], k)
	}
	sort.Ints(ys)

	out := make([][]heatmap.Instruction, len(ys))
	for i, y := range ys {
		row := byY[y]
		sort.SliceStable(row, func(a, b int) bool { return row[a].X < row[b].X })
		out[i] = row
	}
	return out
}

func cellLabel(label string) string {
	r := []rune(label)
	if len(r) > keyCellWidth-1 {
		return string(r[:keyCellWidth-2]) + "…"
	}
	return label
}
