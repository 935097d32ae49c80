// Package intent classifies inbound text into the bot's trigger
// vocabulary before the state machine sees it. The state machine itself
// does no string matching.
package intent

import "strings"

// Intent is one normalized trigger.
type Intent int

const (
	// FreeText is any text that is not a reserved keyword. The flow
	// treats it as a note before the first preview and as a correction
	// after it.
	FreeText Intent = iota
	Preview
	Done
	Yes
	No
)

// String returns the intent name for logging.
func (i Intent) String() string {
	switch i {
	case Preview:
		return "preview"
	case Done:
		return "done"
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "text"
	}
}

// Classify maps text to an intent. Keywords are reserved words, matched
// case-insensitively after trimming; they can never become note or
// correction content.
func Classify(text string) Intent {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "preview":
		return Preview
	case "done":
		return Done
	case "yes":
		return Yes
	case "no":
		return No
	default:
		return FreeText
	}
}
