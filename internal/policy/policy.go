// Package policy decides when an incoming event requires regenerated
// content and with which arguments, keeping that choice out of the state
// machine and the generator.
package policy

import (
	"github.com/kczek/brewpost/internal/gen"
	"github.com/kczek/brewpost/internal/intent"
	"github.com/kczek/brewpost/internal/session"
)

// Decide returns the generation request warranted by this event, or nil
// when no regeneration is needed. The media URL is resolved by the caller
// before the generation call.
//
// Three call shapes exist:
//  1. fresh: stored note only, no prior content (first preview)
//  2. note update before first preview: the new text supersedes any
//     stale note
//  3. correction after preview: prior content, original note, and the
//     correction text travel together so only the indicated part changes
func Decide(sess *session.Session, it intent.Intent, text string) *gen.Request {
	if !sess.HasMedia() {
		return nil
	}

	switch it {
	case intent.Preview:
		switch sess.Stage {
		case session.StageMediaReceived, session.StageNoteAdded:
			return &gen.Request{Note: sess.Note}
		}
		return nil

	case intent.FreeText:
		switch sess.Stage {
		case session.StageMediaReceived, session.StageNoteAdded:
			return &gen.Request{Note: text}
		case session.StagePreviewShown:
			return &gen.Request{
				Note:       sess.Note,
				Prior:      sess.LastContent,
				Correction: text,
			}
		}
		return nil
	}

	return nil
}
