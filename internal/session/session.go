// Package session tracks per-user conversation state for the
// media -> preview -> publish flow.
package session

import "github.com/kczek/brewpost/internal/post"

// Stage is the discrete point in the flow a session occupies.
type Stage int

const (
	StageEmpty Stage = iota
	StageMediaReceived
	StageNoteAdded
	StagePreviewShown
	StageReadyToPublish
	StagePublished
)

// String returns the stage name for logging.
func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageMediaReceived:
		return "media_received"
	case StageNoteAdded:
		return "note_added"
	case StagePreviewShown:
		return "preview_shown"
	case StageReadyToPublish:
		return "ready_to_publish"
	case StagePublished:
		return "published"
	default:
		return "unknown"
	}
}

// Session is one user's conversation state. Keyed by identity, not by
// message; mutated in place by every accepted event.
type Session struct {
	Identity int64
	Stage    Stage

	// MediaPath is the local path of the last received photo. Set when
	// media arrives, replaced only by a new media submission.
	MediaPath string

	// Note is the user's free-form description of the media, from a
	// caption, typed text, or a voice transcript.
	Note string

	// LastContent is the most recent generation result (or fallback).
	// A correction revises it; it is never discarded.
	LastContent *post.Content

	// PendingCorrection is the latest edit instruction issued while the
	// preview was showing.
	PendingCorrection string
}

// StartCycle resets the session for a new media submission, overwriting
// whatever the previous cycle left behind (including a published post).
func (s *Session) StartCycle(mediaPath, caption string) {
	s.Stage = StageMediaReceived
	s.MediaPath = mediaPath
	s.Note = caption
	s.LastContent = nil
	s.PendingCorrection = ""
}

// HasMedia reports whether a generation call is possible.
func (s *Session) HasMedia() bool {
	return s.MediaPath != ""
}
