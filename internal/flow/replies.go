package flow

import (
	"fmt"
	"strings"

	"github.com/kczek/brewpost/internal/post"
	"github.com/kczek/brewpost/internal/publish"
)

// Fixed reply templates. One text reply goes out per handled event.
const (
	ReplyGreeting = "Bot ready! Send a photo of today's special to get started."

	ReplyAccessDenied = "Access denied. This bot serves a single business account."

	ReplyMediaReceived = "Photo received! Add a note (text or voice), or send 'preview' to see the post."

	ReplyNoMedia = "Send media first - I need a photo before I can generate a post."

	ReplyNoPreview = "Generate preview first - send 'preview' to see the post before confirming."

	ReplyNothingToPublish = "Nothing to publish - confirm a preview with 'done' first."

	ReplyTranscriptionFailed = "Sorry, I couldn't transcribe that voice note. Try again or type the note instead."

	ReplyEventFailed = "Something went wrong handling that - please try the same action again."

	ReplyConfirm = "Ready to publish. Reply 'yes' to post to both networks, or 'no' to keep editing."

	ReplyKeptDraft = "Post kept as draft. Send a correction, or 'done' when you're happy."

	ReplyCycleDone = "This post is already published. Send a new photo to start the next one."
)

// noteAddedReply confirms a transcribed voice note.
func noteAddedReply(transcript string) string {
	return fmt.Sprintf("Note added: %q\nSend 'preview' to see the post, or another note to replace it.", transcript)
}

// previewReply renders both post variants plus the correction/confirmation
// prompt.
func previewReply(c *post.Content) string {
	var b strings.Builder

	b.WriteString("Here's your post:\n\n")
	b.WriteString("— With hashtags —\n")
	b.WriteString(c.Tagged())
	b.WriteString("\n\n— Without hashtags —\n")
	b.WriteString(c.Plain())
	fmt.Fprintf(&b, "\n\nALT: %s", c.Alt)
	b.WriteString("\n\nSend a correction to tweak it, or 'done' to publish.")

	return b.String()
}

// publishReply aggregates the per-network outcomes.
func publishReply(results []publish.Result) string {
	var b strings.Builder
	b.WriteString("Publish finished:\n")
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(&b, "✅ %s: %s\n", r.Network, r.PostID)
		} else {
			fmt.Fprintf(&b, "❌ %s: %v\n", r.Network, r.Err)
		}
	}
	b.WriteString("Send a new photo to start the next post.")
	return b.String()
}
