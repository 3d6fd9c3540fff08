package github

import (
	"net/url"
	"os"
	"strings"

	"github.com/custodia-labs/folio/internal/connectors/content"
	"github.com/custodia-labs/folio/internal/core/domain"
)

// Configuration defaults.
const (
	DefaultRef         = "main"
	DefaultContentDir  = "content"
	DefaultLayoutsDir  = "layouts"
	DefaultTokenEnv    = "GITHUB_TOKEN"
	DefaultWebURL      = "https://github.com"
	DefaultCacheDir    = "tmp/github"
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Config holds the parsed configuration for a GitHub data source.
type Config struct {
	Owner      string
	Repo       string
	Ref        string
	ContentDir string
	LayoutsDir string

	// TokenEnv names the environment variable holding the access token.
	TokenEnv string

	// BaseURL targets a GitHub Enterprise API when set.
	BaseURL string

	// CacheDir receives binary blobs so they can be referenced by content_filename.
	CacheDir string

	// MaxFileSize skips larger blobs. Zero means no limit.
	MaxFileSize int

	RequestsPerSecond float64
}

// ParseConfig parses a data source config map.
func ParseConfig(site domain.SiteRef, cfg map[string]any) (*Config, error) {
	owner, err := content.Require(cfg, TypeID, "owner")
	if err != nil {
		return nil, err
	}
	repo, err := content.Require(cfg, TypeID, "repo")
	if err != nil {
		return nil, err
	}

	rps := DefaultRequestsPerSecond
	switch v := cfg["requests_per_second"].(type) {
	case float64:
		rps = v
	case int:
		rps = float64(v)
	case int64:
		rps = float64(v)
	}

	return &Config{
		Owner:             owner,
		Repo:              repo,
		Ref:               content.String(cfg, "ref", DefaultRef),
		ContentDir:        trimDir(content.String(cfg, "content_dir", DefaultContentDir)),
		LayoutsDir:        trimDir(content.String(cfg, "layouts_dir", DefaultLayoutsDir)),
		TokenEnv:          content.String(cfg, "token_env", DefaultTokenEnv),
		BaseURL:           content.String(cfg, "base_url", ""),
		CacheDir:          content.ResolvePath(site, content.String(cfg, "cache_dir", DefaultCacheDir)),
		MaxFileSize:       content.Int(cfg, "max_file_size", DefaultMaxFileSize),
		RequestsPerSecond: rps,
	}, nil
}

// WebURL returns the web host matching the API, e.g. "https://github.com",
// or the scheme and host of BaseURL for GitHub Enterprise.
func (c *Config) WebURL() string {
	if c.BaseURL == "" {
		return DefaultWebURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" {
		return DefaultWebURL
	}
	return u.Scheme + "://" + u.Host
}

// Token reads the access token from the configured environment variable.
func (c *Config) Token() string {
	return os.Getenv(c.TokenEnv)
}

func trimDir(dir string) string {
	return strings.Trim(dir, "/")
}
