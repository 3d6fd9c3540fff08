package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterFence = "---"

// SplitFrontMatter separates a leading YAML front matter block fenced by
// "---" lines from the body. Content without front matter is returned
// unchanged with nil attributes.
func SplitFrontMatter(text string) (map[string]any, string, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontMatterFence+"\n") {
		return nil, text, nil
	}

	rest := normalized[len(frontMatterFence)+1:]
	var header, body string
	switch {
	case strings.HasPrefix(rest, frontMatterFence+"\n"):
		header, body = "", rest[len(frontMatterFence)+1:]
	case rest == frontMatterFence:
		header, body = "", ""
	default:
		end := strings.Index(rest, "\n"+frontMatterFence+"\n")
		switch {
		case end >= 0:
			header, body = rest[:end], rest[end+len(frontMatterFence)+2:]
		case strings.HasSuffix(rest, "\n"+frontMatterFence):
			header, body = strings.TrimSuffix(rest, "\n"+frontMatterFence), ""
		default:
			return nil, "", fmt.Errorf("front matter: missing closing %q", frontMatterFence)
		}
	}

	attrs := make(map[string]any)
	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &attrs); err != nil {
			return nil, "", fmt.Errorf("front matter: %w", err)
		}
	}
	return attrs, strings.TrimPrefix(body, "\n"), nil
}
