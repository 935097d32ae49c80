package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kczek/brewpost/internal/post"
)

// wireContent is the JSON structure the generation capability must return.
type wireContent struct {
	PostText string   `json:"post_text"`
	Hashtags []string `json:"hashtags"`
	Alt      string   `json:"alt"`
}

// parseContent strictly decodes a model reply into post content. Models
// sometimes wrap JSON in markdown fences; those are stripped first.
// Anything that does not decode into the three required fields is
// ErrMalformed.
func parseContent(raw string) (*post.Content, error) {
	cleaned := stripFences(raw)

	var wire wireContent
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	content := &post.Content{
		Body:     strings.TrimSpace(wire.PostText),
		Hashtags: normalizeTags(wire.Hashtags),
		Alt:      strings.TrimSpace(wire.Alt),
	}
	if !content.Valid() {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformed)
	}
	return content, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeTags drops empty entries and ensures each tag carries a leading #.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		out = append(out, t)
	}
	return out
}
