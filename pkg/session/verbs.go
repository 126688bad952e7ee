package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/keyheat/models"
)

// Verb constants for interactive commands.
const (
	VerbAnalyze = "analyze"
	VerbBigrams = "bigrams"
	VerbHeatmap = "heatmap"
	VerbLayouts = "layouts"
	VerbHelp    = "help"
	VerbQuit    = "quit"
)

// AllVerbs returns a list of all valid verbs.
func AllVerbs() []string {
	return []string{
		VerbAnalyze,
		VerbBigrams,
		VerbHeatmap,
		VerbLayouts,
		VerbHelp,
		VerbQuit,
	}
}

// IsValidVerb checks if a verb is valid.
func IsValidVerb(verb string) bool {
	for _, v := range AllVerbs() {
		if v == verb {
			return true
		}
	}
	return false
}

// UnknownVerbError is returned by ParseLine for unrecognized verbs.
type UnknownVerbError struct {
	Verb       string
	Suggestion string
}

func (e *UnknownVerbError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q (did you mean %q?)", e.Verb, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q", e.Verb)
}

// suggestVerb finds a verb sharing the first two letters, for typos.
func suggestVerb(verb string) string {
	for _, v := range AllVerbs() {
		if len(verb) >= 2 && strings.HasPrefix(v, verb[:2]) {
			return v
		}
	}
	return ""
}

// ParseLine turns one line of interactive input into a Request.
//
//	analyze <path>
//	bigrams [n]
//	heatmap [out.png]
//	layouts <name>...
func ParseLine(line string) (models.Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return models.Request{}, nil
	}

	verb := strings.ToLower(fields[0])
	if verb == "exit" {
		verb = VerbQuit
	}
	if !IsValidVerb(verb) {
		return models.Request{}, &UnknownVerbError{Verb: fields[0], Suggestion: suggestVerb(verb)}
	}

	req := models.Request{Verb: verb}
	args := fields[1:]
	switch verb {
	case VerbAnalyze:
		// Paths may contain spaces; keep everything after the verb.
		req.Path = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	case VerbBigrams:
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return models.Request{}, fmt.Errorf("bigrams: invalid count %q", args[0])
			}
			req.TopN = n
			req.HasTopN = true
		}
	case VerbHeatmap:
		if len(args) > 0 {
			req.Output = args[0]
		}
	case VerbLayouts:
		req.Layouts = args
	}
	return req, nil
}
