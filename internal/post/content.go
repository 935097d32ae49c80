// Package post holds generated post content and renders the per-network
// variants shown in previews and sent at publish time.
package post

import "strings"

// MaxHashtags caps the number of tags rendered into a post.
const MaxHashtags = 10

// Separator divides the caption from the hashtag block in the tagged variant.
const Separator = "———"

// Content is one structurally valid generation result.
// All three fields are always non-empty after generation or fallback.
type Content struct {
	Body     string   // Caption text with CTA
	Hashtags []string // Ordered, local tags first
	Alt      string   // ALT text, plain image description
}

// Fallback returns the canned content substituted when the generation
// capability returns something unparsable. Generation failure is never
// fatal to the conversation.
func Fallback() *Content {
	return &Content{
		Body:     "Aromatyczna kawa, idealna na chwilę relaksu.",
		Hashtags: []string{"#kawa", "#kawiarnia"},
		Alt:      "Filiżanka kawy na stole w kawiarni",
	}
}

// Valid reports whether all three fields are populated.
func (c *Content) Valid() bool {
	return c != nil && c.Body != "" && len(c.Hashtags) > 0 && c.Alt != ""
}

// Tagged renders the caption with the hashtag block appended after the
// separator line. Used for the Instagram-style variant.
func (c *Content) Tagged() string {
	tags := c.Hashtags
	if len(tags) > MaxHashtags {
		tags = tags[:MaxHashtags]
	}
	return c.Body + "\n" + Separator + "\n" + strings.Join(tags, " ")
}

// Plain renders the caption without hashtags. Used for the Facebook-style
// variant.
func (c *Content) Plain() string {
	return c.Body
}
