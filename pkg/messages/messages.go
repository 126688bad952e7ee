// Package messages holds the user-facing status strings, keyed by message
// and locale, so that command handlers only ever deal in Keys.
package messages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a status message.
type Key string

const (
	NoLogSelected  Key = "no_log_selected"
	NoAnalysis     Key = "no_analysis"
	NoLayouts      Key = "no_layouts"
	NoTokens       Key = "no_tokens"
	LayoutMissing  Key = "layout_missing"
	AnalysisDone   Key = "analysis_done"
	HeatmapDone    Key = "heatmap_done"
	UnknownCommand Key = "unknown_command"
)

// Supported lists the locales in the table; the first is the fallback.
var Supported = []language.Tag{language.English, language.Japanese}

var table = map[Key][2]string{
	NoLogSelected: {
		"Please select a log file to analyze.",
		"ファイルを選択してください。",
	},
	NoAnalysis: {
		"No log data available. Please analyze a log file first.",
		"データがありません。先にファイルを解析してください。",
	},
	NoLayouts: {
		"Layouts not loaded. Please check your layout JSON files.",
		"レイアウトが読み込まれていません。JSONファイルを確認してください。",
	},
	NoTokens: {
		"The log contains no key events to pair. Please analyze a log file first.",
		"キー入力がありません。先にファイルを解析してください。",
	},
	LayoutMissing: {
		"Layout %s could not be loaded and was skipped.",
		"レイアウト %s を読み込めなかったためスキップしました。",
	},
	AnalysisDone: {
		"Analyzed %d key events (%d distinct).",
		"%d 件のキー入力を解析しました（%d 種類）。",
	},
	HeatmapDone: {
		"Heatmap generated for %d layouts.",
		"%d 個のレイアウトのヒートマップを生成しました。",
	},
	UnknownCommand: {
		"Unknown command %q. Type 'help' for a list of commands.",
		"不明なコマンドです: %q。'help' でコマンド一覧を表示します。",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(Supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for key, texts := range table {
		for i, tag := range Supported {
			// SetString only fails for malformed messages, which the table
			// above does not contain.
			_ = b.SetString(tag, string(key), texts[i])
		}
	}
	return b
}

// Match returns the supported locale closest to the requested one.
func Match(locale string) language.Tag {
	_, index := language.MatchStrings(matcher, locale)
	return Supported[index]
}

// Printer returns a printer for the closest supported locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Match(locale), message.Catalog(cat))
}

// Text renders one message in one locale.
func Text(locale string, key Key, args ...any) string {
	return Printer(locale).Sprintf(string(key), args...)
}

// Dual renders a message in every supported locale, one per line.
func Dual(key Key, args ...any) string {
	lines := make([]string, len(Supported))
	for i, tag := range Supported {
		lines[i] = message.NewPrinter(tag, message.Catalog(cat)).Sprintf(string(key), args...)
	}
	return strings.Join(lines, "\n")
}
