// Package flow is the conversation state machine: it takes normalized
// transport events, applies the access gate and regeneration policy, and
// produces one reply per event plus any publish side effect.
package flow

// Kind discriminates normalized transport events.
type Kind int

const (
	KindStart Kind = iota // /start command
	KindMedia             // photo with optional caption
	KindVoice             // voice clip to transcribe
	KindText              // text: keyword or free text
)

// Event is one normalized inbound transport event.
type Event struct {
	Identity int64
	Kind     Kind

	MediaPath string // KindMedia: local path of the downloaded photo
	Caption   string // KindMedia: optional caption used as note
	VoicePath string // KindVoice: local path of the downloaded clip
	Text      string // KindText: raw message text
}
