package greeting

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"alice", "alice"},
		{"mary jane", "mary_jane"},
		{"o.connor-2", "o.connor-2"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{`a\b/c`, "a_b_c"},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.name); got != tc.want {
			t.Errorf("SanitizeName(%q) = %q, expected %q", tc.name, got, tc.want)
		}
	}
}

func TestWelcomeText(t *testing.T) {
	text := WelcomeText("alice", 42)
	if !strings.Contains(text, "alice") {
		t.Errorf("Greeting should address the reviewer: %q", text)
	}
	if !strings.Contains(text, "42") {
		t.Errorf("Greeting should mention the completed count: %q", text)
	}
}
