package intent

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Intent
	}{
		{"preview", Preview},
		{"Preview", Preview},
		{"  PREVIEW  ", Preview},
		{"done", Done},
		{"DONE", Done},
		{"yes", Yes},
		{"no", No},
		{"No", No},
		{"make it shorter", FreeText},
		{"previews of autumn", FreeText},
		{"", FreeText},
		{"yes please", FreeText},
	}

	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
