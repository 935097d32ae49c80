package post

import (
	"strings"
	"testing"
)

func TestTaggedRendering(t *testing.T) {
	c := &Content{
		Body:     "Kremowe cappuccino na dobry początek dnia.",
		Hashtags: []string{"#kawa", "#kawiarnia", "#cappuccino"},
		Alt:      "Cappuccino na drewnianym stole",
	}

	got := c.Tagged()
	want := "Kremowe cappuccino na dobry początek dnia.\n———\n#kawa #kawiarnia #cappuccino"
	if got != want {
		t.Errorf("Tagged() = %q, want %q", got, want)
	}
}

func TestTaggedCapsHashtags(t *testing.T) {
	tags := make([]string, 15)
	for i := range tags {
		tags[i] = "#t"
	}
	c := &Content{Body: "b", Hashtags: tags, Alt: "a"}

	rendered := c.Tagged()
	if got := strings.Count(rendered, "#t"); got != MaxHashtags {
		t.Errorf("rendered %d tags, want %d", got, MaxHashtags)
	}
}

func TestPlainHasNoHashtags(t *testing.T) {
	c := &Content{Body: "Aromatyczna kawa.", Hashtags: []string{"#kawa"}, Alt: "alt"}
	if got := c.Plain(); strings.Contains(got, "#") {
		t.Errorf("Plain() = %q, must not contain hashtags", got)
	}
}

func TestFallbackIsValid(t *testing.T) {
	f := Fallback()
	if !f.Valid() {
		t.Fatal("fallback content must be structurally valid")
	}
	if f.Body != "Aromatyczna kawa, idealna na chwilę relaksu." {
		t.Errorf("unexpected fallback body: %q", f.Body)
	}
	if len(f.Hashtags) != 2 || f.Hashtags[0] != "#kawa" || f.Hashtags[1] != "#kawiarnia" {
		t.Errorf("unexpected fallback hashtags: %v", f.Hashtags)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		name string
		c    *Content
		want bool
	}{
		{"nil", nil, false},
		{"empty body", &Content{Hashtags: []string{"#a"}, Alt: "x"}, false},
		{"no tags", &Content{Body: "b", Alt: "x"}, false},
		{"no alt", &Content{Body: "b", Hashtags: []string{"#a"}}, false},
		{"complete", &Content{Body: "b", Hashtags: []string{"#a"}, Alt: "x"}, true},
	}
	for _, c := range cases {
		if got := c.c.Valid(); got != c.want {
			t.Errorf("%s: Valid() = %v, want %v", c.name, got, c.want)
		}
	}
}
