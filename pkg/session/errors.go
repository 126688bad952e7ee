package session

import (
	"github.com/dtnitsch/keyheat/pkg/messages"
)

// Error is a recoverable, user-facing condition. It carries the message key
// so callers can render it in any locale.
type Error struct {
	Key messages.Key
}

func (e *Error) Error() string {
	return messages.Text(messages.Supported[0].String(), e.Key)
}

var (
	ErrNoLog      = &Error{Key: messages.NoLogSelected}
	ErrNoAnalysis = &Error{Key: messages.NoAnalysis}
	ErrNoLayouts  = &Error{Key: messages.NoLayouts}
	ErrNoTokens   = &Error{Key: messages.NoTokens}
)
