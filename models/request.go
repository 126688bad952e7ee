package models

// Request is one user action, parsed from a REPL line or a CLI invocation,
// before it is turned into a typed session command.
type Request struct {
	Verb    string   `json:"verb"`
	Path    string   `json:"path,omitempty"`    // For analyze
	TopN    int      `json:"top_n,omitempty"`   // For bigrams
	HasTopN bool     `json:"-"`                 // TopN was given explicitly
	Layouts []string `json:"layouts,omitempty"` // For layouts
	Output  string   `json:"output,omitempty"`  // For heatmap: PNG path
}
