package flow

import (
	"context"
	"os"

	"github.com/kczek/brewpost/internal/access"
	"github.com/kczek/brewpost/internal/gen"
	"github.com/kczek/brewpost/internal/intent"
	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/policy"
	"github.com/kczek/brewpost/internal/post"
	"github.com/kczek/brewpost/internal/publish"
	"github.com/kczek/brewpost/internal/session"
	"github.com/kczek/brewpost/internal/stt"
)

// Uploader resolves a local media file to a publicly fetchable URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// PublishSink fans a confirmed post out to the networks.
type PublishSink interface {
	Publish(ctx context.Context, mediaURL string, content *post.Content) []publish.Result
}

// Controller dispatches normalized events through the conversation state
// machine. Events for one identity are serialized by the session store;
// events for distinct identities run concurrently.
type Controller struct {
	gate        *access.Gate
	store       *session.Store
	generator   gen.Generator
	transcriber stt.Transcriber
	uploader    Uploader
	sink        PublishSink
}

// New creates a controller over its collaborators.
func New(gate *access.Gate, store *session.Store, generator gen.Generator,
	transcriber stt.Transcriber, uploader Uploader, sink PublishSink) *Controller {
	return &Controller{
		gate:        gate,
		store:       store,
		generator:   generator,
		transcriber: transcriber,
		uploader:    uploader,
		sink:        sink,
	}
}

// Handle applies one event and returns the single outbound reply.
// Unauthorized identities get the denial reply and no session is read or
// written.
func (c *Controller) Handle(ctx context.Context, ev Event) string {
	if !c.gate.Allowed(ev.Identity) {
		L_warn("flow: unauthorized identity rejected", "identity", ev.Identity)
		return ReplyAccessDenied
	}

	if ev.Kind == KindStart {
		return ReplyGreeting
	}

	var reply string
	_ = c.store.Update(ev.Identity, func(sess *session.Session) error {
		reply = c.dispatch(ctx, sess, ev)
		return nil
	})
	return reply
}

// dispatch runs under the identity's session lock.
func (c *Controller) dispatch(ctx context.Context, sess *session.Session, ev Event) string {
	switch ev.Kind {
	case KindMedia:
		return c.handleMedia(sess, ev)
	case KindVoice:
		return c.handleVoice(ctx, sess, ev)
	case KindText:
		return c.handleText(ctx, sess, ev.Text)
	default:
		L_warn("flow: unknown event kind", "kind", ev.Kind)
		return ReplyEventFailed
	}
}

// handleMedia starts a fresh cycle: new media overwrites whatever the
// previous cycle left behind, including a published post. The superseded
// photo's temp file is removed so cycles do not accumulate files.
func (c *Controller) handleMedia(sess *session.Session, ev Event) string {
	if sess.MediaPath != "" && sess.MediaPath != ev.MediaPath {
		if err := os.Remove(sess.MediaPath); err != nil && !os.IsNotExist(err) {
			L_warn("flow: could not remove superseded media file", "path", sess.MediaPath, "error", err)
		}
	}
	sess.StartCycle(ev.MediaPath, ev.Caption)
	L_info("flow: media received",
		"identity", sess.Identity,
		"hasCaption", ev.Caption != "",
	)
	return ReplyMediaReceived
}

// handleVoice transcribes the clip. A free-text transcript at
// MediaReceived becomes the note; a transcript that is a reserved keyword
// acts as that keyword at every stage, same as typed text. Transcription
// failure leaves the stage untouched.
func (c *Controller) handleVoice(ctx context.Context, sess *session.Session, ev Event) string {
	transcript, err := c.transcriber.Transcribe(ctx, ev.VoicePath)
	if err != nil {
		L_error("flow: transcription failed", "identity", sess.Identity, "error", err)
		return ReplyTranscriptionFailed
	}

	L_debug("flow: voice transcribed", "identity", sess.Identity, "length", len(transcript))

	if sess.Stage == session.StageMediaReceived && intent.Classify(transcript) == intent.FreeText {
		sess.Note = transcript
		sess.Stage = session.StageNoteAdded
		return noteAddedReply(transcript)
	}

	return c.handleText(ctx, sess, transcript)
}

func (c *Controller) handleText(ctx context.Context, sess *session.Session, text string) string {
	it := intent.Classify(text)
	L_debug("flow: text event", "identity", sess.Identity, "intent", it.String(), "stage", sess.Stage.String())

	switch it {
	case intent.Preview, intent.FreeText:
		return c.handleGenerating(ctx, sess, it, text)
	case intent.Done:
		return c.handleDone(sess)
	case intent.Yes, intent.No:
		return c.handleDecision(ctx, sess, it)
	}
	return ReplyEventFailed
}

// handleGenerating covers the preview keyword, pre-preview notes, and
// post-preview corrections.
func (c *Controller) handleGenerating(ctx context.Context, sess *session.Session, it intent.Intent, text string) string {
	if !sess.HasMedia() {
		return ReplyNoMedia
	}

	req := policy.Decide(sess, it, text)
	if req == nil {
		// No regeneration warranted at this stage
		if sess.Stage == session.StagePublished {
			return ReplyCycleDone
		}
		if sess.Stage == session.StageReadyToPublish {
			return ReplyConfirm
		}
		if it == intent.Preview && sess.LastContent != nil {
			return previewReply(sess.LastContent)
		}
		return ReplyNoMedia
	}

	return c.generateAndPreview(ctx, sess, req)
}

// generateAndPreview resolves the media URL, runs the generation call, and
// applies the result. Generation failure of any kind degrades to the
// fallback content; only URL resolution failure aborts the event, leaving
// the session at its last durable stage so the user can retry.
func (c *Controller) generateAndPreview(ctx context.Context, sess *session.Session, req *gen.Request) string {
	mediaURL, err := c.uploader.Upload(ctx, sess.MediaPath)
	if err != nil {
		L_error("flow: media URL resolution failed", "identity", sess.Identity, "error", err)
		return ReplyEventFailed
	}
	req.MediaURL = mediaURL

	content, err := c.generator.Generate(ctx, *req)
	if err != nil {
		L_warn("flow: generation degraded to fallback", "identity", sess.Identity, "error", err)
		content = post.Fallback()
	}

	if req.Correction != "" {
		sess.PendingCorrection = req.Correction
	} else {
		sess.Note = req.Note
	}
	sess.LastContent = content
	sess.Stage = session.StagePreviewShown

	return previewReply(content)
}

func (c *Controller) handleDone(sess *session.Session) string {
	if sess.Stage != session.StagePreviewShown || sess.LastContent == nil {
		return ReplyNoPreview
	}
	sess.Stage = session.StageReadyToPublish
	return ReplyConfirm
}

// handleDecision resolves a yes/no on a ready post. "no" rolls back to
// PreviewShown with the content retained; "yes" publishes at-most-once,
// and per-network failures neither revert the stage nor retry.
func (c *Controller) handleDecision(ctx context.Context, sess *session.Session, it intent.Intent) string {
	if sess.Stage != session.StageReadyToPublish {
		return ReplyNothingToPublish
	}

	if it == intent.No {
		sess.Stage = session.StagePreviewShown
		return ReplyKeptDraft
	}

	mediaURL, err := c.uploader.Upload(ctx, sess.MediaPath)
	if err != nil {
		L_error("flow: media URL resolution failed before publish", "identity", sess.Identity, "error", err)
		return ReplyEventFailed
	}

	results := c.sink.Publish(ctx, mediaURL, sess.LastContent)
	sess.Stage = session.StagePublished

	return publishReply(results)
}
