// Package gen abstracts the vision/language capability that turns a media
// URL and a note into structured post content.
package gen

import (
	"context"
	"errors"

	"github.com/kczek/brewpost/internal/post"
)

// ErrMalformed reports that the capability's output could not be parsed
// into the expected structure. The caller substitutes fallback content;
// the user never sees this error.
var ErrMalformed = errors.New("generation response malformed")

// Request carries the arguments for one generation call. Prior and
// Correction are set together for revision requests; the original Note is
// always kept in view.
type Request struct {
	MediaURL   string
	Note       string
	Prior      *post.Content
	Correction string
}

// Generator produces post content for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (*post.Content, error)
}
