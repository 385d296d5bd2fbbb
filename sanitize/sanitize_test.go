package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"", "", false},
		{"   ", "", false},
		{"Plain title", "Plain title", true},
		{"<b>Bold</b> title", "Bold title", true},
		{`<a href="https://doi.org/10.1/x">link</a>`, `<a href="https://doi.org/10.1/x">link</a>`, true},
		{`before <a href="https://x.org">x</a> <i>after</i>`, `before <a href="https://x.org">x</a> after`, true},
		{"a < b and c > d", "a &lt; b and c &gt; d", true},
		{"see https://example.org/p", `see <a href="https://example.org/p">https://example.org/p</a>`, true},
		{"[insert abstract here]", "", false},
		{"  [вставьте ключевые слова через запятую]  ", "", false},
		{"mailto:sci.net@inbox.ru?subject=x", "", false},
		{`href="https://x.org" leftover`, "", false},
		{"<p></p>", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := Clean(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Errorf("Clean(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	values := []string{
		"Plain title",
		"<b>Bold</b> & <i>noisy</i> title",
		`a <a href="https://x.org/a?b=1&c=2">x</a> b`,
		"bare https://example.org/path?q=1&r=2 url",
		"a < b > c 'quoted' \"double\"",
	}
	for _, raw := range values {
		once, ok := Clean(raw)
		if !ok {
			t.Fatalf("Clean(%q) rejected", raw)
		}
		twice, ok := Clean(once)
		if !ok || twice != once {
			t.Errorf("Clean not idempotent for %q: %q vs %q", raw, once, twice)
		}
	}
}

func TestReject(t *testing.T) {
	if !Reject("[unfilled]") || !Reject("") || !Reject("mailto:a@b") {
		t.Error("expected rejection")
	}
	if Reject("de Bruijn [1946] sequences") {
		// brackets inside running text are fine
		t.Error("unexpected rejection")
	}
}

func TestHTMLText(t *testing.T) {
	markup := `<html><body><p>DO  - 10.1000/xyz123</p><p>TI  - Foo</p><script>x()</script></body></html>`
	got := HTMLText(markup)
	want := "DO  - 10.1000/xyz123\nTI  - Foo"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if HTMLText("") != "" {
		t.Error("empty markup should yield empty text")
	}
	if out := HTMLText("line one<br>line two"); !strings.Contains(out, "\n") {
		t.Errorf("expected line break, got %q", out)
	}
}
