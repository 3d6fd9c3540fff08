package content

import (
	"path"
	"slices"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// IndexBasename is the basename that collapses into its directory.
const IndexBasename = "index"

// IdentifierFor derives an identifier from a slash-separated path relative to
// a content or layouts directory. The extension is stripped, an "index"
// basename collapses into its directory and the result is always full:
//
//	about.html      -> /about/
//	index.html      -> /
//	blog/index.md   -> /blog/
//	blog/post1.md   -> /blog/post1/
func IdentifierFor(rel string) domain.Identifier {
	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" || rel == "." {
		return domain.Separator
	}

	dir, base := path.Split(rel)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	if base == IndexBasename {
		base = ""
	}

	p := strings.Trim(dir+base, "/")
	if p == "" {
		return domain.Separator
	}
	return domain.Identifier("/" + p + "/")
}

// Extension returns the extension of rel without its leading dot, the part
// after the first dot of the basename (so "post.md.erb" yields "md.erb").
func Extension(rel string) string {
	base := path.Base(rel)
	i := strings.Index(base, ".")
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}

// IsText reports whether the final extension of rel is listed in textExtensions.
// Listed extensions carry no leading dot.
func IsText(rel string, textExtensions []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(rel)), ".")
	if ext == "" {
		return false
	}
	return slices.Contains(textExtensions, ext)
}
