package profile

import (
	"strings"
	"testing"
)

const profilePage = `<!DOCTYPE html>
<html>
<head><title>Staff Engineer Profile</title></head>
<body>
<h1>About</h1>
<p>Staff engineer focused on compilers and distributed runtimes.</p>
<p>OK</p>
<p>Previously led the platform infrastructure group at a healthcare startup.</p>
</body>
</html>`

func TestConverterConvert(t *testing.T) {
	c := NewConverter()

	title, snippets, err := c.Convert([]byte(profilePage), 10)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if title != "Staff Engineer Profile" {
		t.Errorf("title = %q, want %q", title, "Staff Engineer Profile")
	}
	if !anySnippetContains(snippets, "compilers and distributed runtimes") {
		t.Errorf("snippets missing first paragraph: %v", snippets)
	}
	if !anySnippetContains(snippets, "platform infrastructure group") {
		t.Errorf("snippets missing second paragraph: %v", snippets)
	}
	for _, s := range snippets {
		if s == "OK" {
			t.Errorf("short line should have been dropped, got snippet %q", s)
		}
	}
}

func TestConverterConvertHonorsSnippetCap(t *testing.T) {
	c := NewConverter()

	_, snippets, err := c.Convert([]byte(profilePage), 1)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(snippets) > 1 {
		t.Errorf("got %d snippets, want at most 1", len(snippets))
	}

	_, snippets, err = c.Convert([]byte(profilePage), 0)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("got %d snippets with zero cap, want 0", len(snippets))
	}
}

func TestConverterConvertInvalidHTML(t *testing.T) {
	c := NewConverter()

	// html.Parse is forgiving; even fragments produce a document.
	title, _, err := c.Convert([]byte("plain text without any markup at all"), 5)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if title != "" {
		t.Errorf("title = %q, want empty for page without <title>", title)
	}
}

func TestStripMarkdownSyntax(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading marker",
			in:   "## Senior Platform Engineer",
			want: "Senior Platform Engineer",
		},
		{
			name: "list bullet",
			in:   "- shipped three products",
			want: "shipped three products",
		},
		{
			name: "bold emphasis",
			in:   "**Director** of engineering",
			want: "Director of engineering",
		},
		{
			name: "link collapsed to text",
			in:   "[Go](https://go.dev) is great",
			want: "Go is great",
		},
		{
			name: "plain line untouched",
			in:   "clinical research coordinator",
			want: "clinical research coordinator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripMarkdownSyntax(tt.in)
			if got != tt.want {
				t.Errorf("stripMarkdownSyntax(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractSnippetsTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("product strategy ", 40)
	snippets := extractSnippets(long, 5)
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	if len(snippets[0]) > 240 {
		t.Errorf("snippet length = %d, want at most 240", len(snippets[0]))
	}
}

func anySnippetContains(snippets []string, substr string) bool {
	for _, s := range snippets {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
