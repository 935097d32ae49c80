package gen

import (
	"errors"
	"testing"
)

func TestParseContent(t *testing.T) {
	raw := `{"post_text": "Kremowe latte z nutą karmelu.", "hashtags": ["#kawa", "latte"], "alt": "Latte w szklance"}`

	content, err := parseContent(raw)
	if err != nil {
		t.Fatalf("parseContent failed: %v", err)
	}
	if content.Body != "Kremowe latte z nutą karmelu." {
		t.Errorf("body = %q", content.Body)
	}
	if len(content.Hashtags) != 2 || content.Hashtags[1] != "#latte" {
		t.Errorf("hashtags = %v, bare tags must gain a leading #", content.Hashtags)
	}
	if content.Alt != "Latte w szklance" {
		t.Errorf("alt = %q", content.Alt)
	}
}

func TestParseContentStripsFences(t *testing.T) {
	raw := "```json\n{\"post_text\": \"b\", \"hashtags\": [\"#a\"], \"alt\": \"x\"}\n```"

	content, err := parseContent(raw)
	if err != nil {
		t.Fatalf("parseContent failed: %v", err)
	}
	if content.Body != "b" {
		t.Errorf("body = %q", content.Body)
	}
}

func TestParseContentMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "I could not analyze this image."},
		{"missing fields", `{"post_text": "b"}`},
		{"empty fields", `{"post_text": "", "hashtags": [], "alt": ""}`},
		{"unknown fields", `{"post_text": "b", "hashtags": ["#a"], "alt": "x", "caption": "extra"}`},
		{"blank tags only", `{"post_text": "b", "hashtags": ["  ", ""], "alt": "x"}`},
	}

	for _, c := range cases {
		if _, err := parseContent(c.raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: err = %v, want ErrMalformed", c.name, err)
		}
	}
}
