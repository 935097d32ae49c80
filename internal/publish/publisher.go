// Package publish drives the social networks a confirmed post goes out to.
package publish

import (
	"context"
	"sync"
	"time"

	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/post"
)

// RequestTimeout bounds each network call.
const RequestTimeout = 60 * time.Second

// Publisher posts a publicly fetchable media URL with a caption to one
// network and returns the network's post id.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, mediaURL, caption string) (string, error)
}

// Target pairs a network with the caption variant it receives.
type Target struct {
	Publisher Publisher
	Tagged    bool // true: hashtag variant; false: plain caption
}

// Result is the outcome for one network.
type Result struct {
	Network string
	PostID  string
	Err     error
}

// OK reports whether the network accepted the post.
func (r Result) OK() bool {
	return r.Err == nil
}

// Orchestrator fans a confirmed post out to every configured network.
// Publishing is attempted at-most-once per confirmation and never retried.
type Orchestrator struct {
	targets []Target
}

// NewOrchestrator creates an orchestrator over the given targets.
func NewOrchestrator(targets ...Target) *Orchestrator {
	return &Orchestrator{targets: targets}
}

// Publish invokes every network, even when one fails, and aggregates the
// per-network results in target order.
func (o *Orchestrator) Publish(ctx context.Context, mediaURL string, content *post.Content) []Result {
	results := make([]Result, len(o.targets))

	var wg sync.WaitGroup
	for i, t := range o.targets {
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()

			caption := content.Plain()
			if t.Tagged {
				caption = content.Tagged()
			}

			callCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
			defer cancel()

			postID, err := t.Publisher.Publish(callCtx, mediaURL, caption)
			if err != nil {
				L_error("publish: network failed", "network", t.Publisher.Name(), "error", err)
			} else {
				L_info("publish: posted", "network", t.Publisher.Name(), "postID", postID)
			}
			results[i] = Result{Network: t.Publisher.Name(), PostID: postID, Err: err}
		}(i, t)
	}
	wg.Wait()

	return results
}
