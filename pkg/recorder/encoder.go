// Package recorder captures key presses from the terminal and appends them
// to a log in the format the analyzer reads: one token per key, a space
// between quick presses and a newline after a pause.
package recorder

import (
	"fmt"
	"time"

	"github.com/eiannone/keyboard"
)

// PauseThreshold is the gap after which the next token starts a new line.
const PauseThreshold = 500 * time.Millisecond

var keyNames = map[keyboard.Key]string{
	keyboard.KeySpace:      "<Space>",
	keyboard.KeyTab:        "<Tab>",
	keyboard.KeyEnter:      "<Return>",
	keyboard.KeyBackspace:  "<Backspace>",
	keyboard.KeyBackspace2: "<Backspace>",
	keyboard.KeyEsc:        "<Escape>",
	keyboard.KeyDelete:     "<Delete>",
	keyboard.KeyInsert:     "<Insert>",
	keyboard.KeyHome:       "<Home>",
	keyboard.KeyEnd:        "<End>",
	keyboard.KeyPgup:       "<PageUp>",
	keyboard.KeyPgdn:       "<PageDown>",
	keyboard.KeyArrowUp:    "<UpArrow>",
	keyboard.KeyArrowDown:  "<DownArrow>",
	keyboard.KeyArrowLeft:  "<LeftArrow>",
	keyboard.KeyArrowRight: "<RightArrow>",
	keyboard.KeyF1:         "<F1>",
	keyboard.KeyF2:         "<F2>",
	keyboard.KeyF3:         "<F3>",
	keyboard.KeyF4:         "<F4>",
	keyboard.KeyF5:         "<F5>",
	keyboard.KeyF6:         "<F6>",
	keyboard.KeyF7:         "<F7>",
	keyboard.KeyF8:         "<F8>",
	keyboard.KeyF9:         "<F9>",
	keyboard.KeyF10:        "<F10>",
	keyboard.KeyF11:        "<F11>",
	keyboard.KeyF12:        "<F12>",
}

// TokenFor names a key event. Printable runes are kept as typed; a space
// and named keys use bracket markup; other control keys become
// <Unknown(n)>.
func TokenFor(ev keyboard.KeyEvent) string {
	if ev.Rune == ' ' {
		return "<Space>"
	}
	if ev.Rune != 0 {
		return string(ev.Rune)
	}
	if name, ok := keyNames[ev.Key]; ok {
		return name
	}
	return fmt.Sprintf("<Unknown(%d)>", ev.Key)
}

// Encoder turns timed tokens into log text.
type Encoder struct {
	Threshold time.Duration
	last      time.Time
	started   bool
}

func NewEncoder() *Encoder {
	return &Encoder{Threshold: PauseThreshold}
}

// Resume makes the next token start on a new line, for appending to a log
// that already has content.
func (e *Encoder) Resume(at time.Time) {
	e.started = true
	e.last = at.Add(-e.Threshold)
}

// Encode returns the separator and token to append for a press at time at.
// The first token of a log has no separator.
func (e *Encoder) Encode(token string, at time.Time) string {
	sep := ""
	if e.started {
		sep = " "
		if at.Sub(e.last) >= e.Threshold {
			sep = "\n"
		}
	}
	e.started = true
	e.last = at
	return sep + token
}
