package htmltext

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"simple tags", "<p>new <b>cafe</b> opening</p>", "new cafe opening"},
		{"nested blocks", "<div><h1>Title</h1><p>line one</p><p>line two</p></div>", "Title line one line two"},
		{"script stripped", "<p>visible</p><script>alert(1)</script>", "visible"},
		{"style stripped", "<style>p{color:red}</style><p>text</p>", "text"},
		{"whitespace collapsed", "<p>  a \n\t b  </p>", "a b"},
		{"empty", "", ""},
		{"korean content", "<p>신규 카페 체험단 모집</p>", "신규 카페 체험단 모집"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.html); got != tt.expected {
				t.Errorf("Extract(%q) = %q, want %q", tt.html, got, tt.expected)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("<p>abcdefghij</p>", 4); got != "abcd" {
		t.Errorf("Snippet() = %q, want %q", got, "abcd")
	}
	if got := Snippet("<p>short</p>", 100); got != "short" {
		t.Errorf("Snippet() = %q, want %q", got, "short")
	}
	// Rune-safe truncation on multibyte text.
	if got := Snippet("체험단 모집", 3); got != "체험단" {
		t.Errorf("Snippet() = %q, want %q", got, "체험단")
	}
}
