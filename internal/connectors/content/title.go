package content

import (
	"html"
	"path"
	"regexp"
	"strings"
)

var (
	titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	h1Tag    = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	anyTag   = regexp.MustCompile(`<[^>]+>`)
)

// Title derives a display title for a text node at rel. HTML content uses
// its <title> or first <h1>, Markdown its first "# " heading. Otherwise the
// base name is used with dashes and underscores turned into spaces.
func Title(rel, body string) string {
	switch strings.TrimPrefix(strings.ToLower(path.Ext(rel)), ".") {
	case "html", "htm", "xhtml":
		for _, re := range []*regexp.Regexp{titleTag, h1Tag} {
			if m := re.FindStringSubmatch(body); len(m) > 1 {
				t := strings.TrimSpace(html.UnescapeString(anyTag.ReplaceAllString(m[1], "")))
				if t != "" {
					return t
				}
			}
		}
	case "md", "markdown":
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "# ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
		}
	}

	name := path.Base(strings.ReplaceAll(rel, "\\", "/"))
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	if name == "index" {
		dir := path.Base(path.Dir(strings.ReplaceAll(rel, "\\", "/")))
		if dir != "." && dir != "/" {
			name = dir
		}
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, "-", " ")
}

// SetDefaultTitle stores a derived "title" attribute unless one is present.
func SetDefaultTitle(attrs map[string]any, rel, body string) {
	if _, ok := attrs["title"]; ok {
		return
	}
	attrs["title"] = Title(rel, body)
}
