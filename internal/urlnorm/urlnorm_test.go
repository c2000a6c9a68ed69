package urlnorm

import (
	"strings"
	"testing"
)

func TestCanonicalizeBasic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain url unchanged", "https://example.com/article/123", "https://example.com/article/123"},
		{"fragment stripped", "https://example.com/article#comments", "https://example.com/article"},
		{"percent decoding", "https://x.com/a%2Fb#frag", "https://x.com/a/b"},
		{"query preserved, fragment stripped", "https://x.com/a?x=1#y", "https://x.com/a?x=1"},
		{"encoded space", "https://example.com/article%20title", "https://example.com/article title"},
		{"unicode escape", "https://example.com/%E2%9C%93check", "https://example.com/✓check"},
		{"query params preserved", "https://example.com/article?id=123&source=home", "https://example.com/article?id=123&source=home"},
		{"trailing slash preserved", "https://example.com/article/", "https://example.com/article/"},
		{"pre-encoded escape stays encoded", "https://example.com/a%252Fb", "https://example.com/a%252Fb"},
		{"invalid escape kept literally", "https://example.com/100%zz", "https://example.com/100%zz"},
		{"valid escape next to invalid one", "https://example.com/a%20b%zz", "https://example.com/a b%zz"},
		{"bare trailing percent-25 decodes", "https://example.com/save%25", "https://example.com/save%"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Canonicalize(tc.in)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com/article/123",
		"https://x.com/a%2Fb#frag",
		"https://example.com/article%20title",
		"https://example.com/a%252Fb",
		"https://example.com/a%2525b",
		"https://example.com/save%25",
		"https://example.com/100%zz",
		"https://example.com/%%32F",
		"https://example.com/x%%32F#y",
		"https://example.com/x%20y#%%32F",
		"https://example.com/article?id=123&page=2",
	}

	for _, in := range inputs {
		once, err := Canonicalize(in)
		if err != nil {
			t.Fatalf("first pass of %q: %v", in, err)
		}
		twice, err := Canonicalize(once)
		if err != nil {
			t.Fatalf("second pass of %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestCanonicalizeRejectsUnparseable(t *testing.T) {
	t.Parallel()

	_, err := Canonicalize("https://example.com/\x00article")
	if err == nil {
		t.Fatal("expected error for URL with control character")
	}
	if !strings.Contains(err.Error(), "invalid url") {
		t.Fatalf("unexpected error text: %v", err)
	}
	if _, err := Canonicalize("https://example.com/article"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
