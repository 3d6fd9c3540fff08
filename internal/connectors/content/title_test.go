package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		body string
		want string
	}{
		{"html title tag", "about.html", "<html><head><title>About &amp; Us</title></head></html>", "About & Us"},
		{"html h1 fallback", "about.html", "<h1 class=\"x\">Hello <em>there</em></h1>", "Hello there"},
		{"html empty title", "about.html", "<title>  </title><h1>Heading</h1>", "Heading"},
		{"markdown heading", "blog/post1.md", "intro\n# First Post\n## Sub", "First Post"},
		{"markdown without heading", "blog/my-first_post.md", "text", "my first post"},
		{"index uses directory", "blog/index.md", "no heading", "blog"},
		{"root index", "index.html", "home", "index"},
		{"unknown extension", "notes.txt", "# not markdown", "notes"},
		{"compound extension", "feed.xml.erb", "", "feed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.rel, tt.body))
		})
	}
}

func TestSetDefaultTitle(t *testing.T) {
	attrs := map[string]any{"title": "Kept"}
	SetDefaultTitle(attrs, "about.md", "# Derived")
	assert.Equal(t, "Kept", attrs["title"])

	attrs = map[string]any{}
	SetDefaultTitle(attrs, "about.md", "# Derived")
	assert.Equal(t, "Derived", attrs["title"])
}
