package github

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/folio/internal/connectors/content"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// TypeID is the data source type name used in site configuration.
const TypeID = "github"

// Ensure DataSource implements the interface.
var _ driven.DataSource = (*DataSource)(nil)

// DataSource reads items and layouts from directories of a repository.
type DataSource struct {
	cfg            *Config
	textExtensions []string

	client *Client
	tree   []*gh.TreeEntry
}

// New creates a GitHub data source.
func New(cfg *Config, textExtensions []string) *DataSource {
	return &DataSource{cfg: cfg, textExtensions: textExtensions}
}

// Build creates a data source from a configured mount.
func Build(params driven.DataSourceParams) (driven.DataSource, error) {
	cfg, err := ParseConfig(params.Site, params.Config)
	if err != nil {
		return nil, err
	}
	return New(cfg, content.TextExtensions(params.Site, params.Config)), nil
}

// Info describes the GitHub data source type.
func Info() domain.DataSourceType {
	return domain.DataSourceType{
		ID:          TypeID,
		Name:        "GitHub",
		Description: "Items and layouts from directories of a GitHub repository",
		ConfigKeys: []domain.ConfigKey{
			{Key: "owner", Description: "Repository owner", Required: true},
			{Key: "repo", Description: "Repository name", Required: true},
			{Key: "ref", Description: "Branch, tag or commit", Default: DefaultRef},
			{Key: "content_dir", Description: "Repository directory holding items", Default: DefaultContentDir},
			{Key: "layouts_dir", Description: "Repository directory holding layouts", Default: DefaultLayoutsDir},
			{Key: "token_env", Description: "Environment variable holding the access token", Default: DefaultTokenEnv},
			{Key: "base_url", Description: "GitHub Enterprise API URL"},
			{Key: "cache_dir", Description: "Where binary files are stored", Default: DefaultCacheDir},
		},
	}
}

// Type returns the data source type identifier.
func (d *DataSource) Type() string {
	return TypeID
}

// Activate builds the API client and lists the repository tree once.
func (d *DataSource) Activate(ctx context.Context) error {
	client, err := NewClient(ctx, d.cfg.Token(), d.cfg.BaseURL, d.cfg.RequestsPerSecond)
	if err != nil {
		return err
	}

	tree, err := client.GetTree(ctx, d.cfg.Owner, d.cfg.Repo, d.cfg.Ref)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%w: %s/%s@%s: %w", ErrRepoNotFound, d.cfg.Owner, d.cfg.Repo, d.cfg.Ref, err)
		}
		return d.explain(err)
	}

	logger.Debug("GitHub data source: %s/%s@%s has %d tree entries (%d/%d requests left)",
		d.cfg.Owner, d.cfg.Repo, d.cfg.Ref, len(tree.Entries),
		client.rateLimiter.Remaining(), client.rateLimiter.Limit())
	d.client = client
	d.tree = tree.Entries
	return nil
}

// explain adds the configuration to blame to authentication and rate limit
// failures.
func (d *DataSource) explain(err error) error {
	switch {
	case IsUnauthorized(err):
		if d.cfg.Token() == "" {
			return fmt.Errorf("github: %s/%s needs a token in $%s: %w", d.cfg.Owner, d.cfg.Repo, d.cfg.TokenEnv, err)
		}
		return fmt.Errorf("github: token in $%s was rejected: %w", d.cfg.TokenEnv, err)
	case IsRateLimited(err):
		return fmt.Errorf("github: %s/%s: lower requests_per_second or set a token in $%s: %w",
			d.cfg.Owner, d.cfg.Repo, d.cfg.TokenEnv, err)
	}
	return err
}

// Deactivate drops the client and the cached tree.
func (d *DataSource) Deactivate(_ context.Context) error {
	d.client = nil
	d.tree = nil
	return nil
}

// Items returns the files under the content directory.
func (d *DataSource) Items(ctx context.Context) ([]domain.RawNode, error) {
	return d.read(ctx, d.cfg.ContentDir)
}

// Layouts returns the files under the layouts directory.
func (d *DataSource) Layouts(ctx context.Context) ([]domain.RawNode, error) {
	return d.read(ctx, d.cfg.LayoutsDir)
}

func (d *DataSource) read(ctx context.Context, dir string) ([]domain.RawNode, error) {
	if d.client == nil {
		return nil, domain.ErrNotActivated
	}

	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	var nodes []domain.RawNode
	for _, entry := range d.tree {
		if entry.GetType() != "blob" || !strings.HasPrefix(entry.GetPath(), prefix) {
			continue
		}
		rel := strings.TrimPrefix(entry.GetPath(), prefix)
		if d.cfg.MaxFileSize > 0 && entry.GetSize() > d.cfg.MaxFileSize {
			logger.Warn("GitHub data source: skipping %s (%d bytes)", entry.GetPath(), entry.GetSize())
			continue
		}

		node, err := d.readEntry(ctx, entry, rel)
		if err != nil {
			return nil, d.explain(err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (d *DataSource) readEntry(ctx context.Context, entry *gh.TreeEntry, rel string) (domain.RawNode, error) {
	data, err := d.client.GetBlob(ctx, d.cfg.Owner, d.cfg.Repo, entry.GetSHA())
	if err != nil {
		return domain.RawNode{}, err
	}

	attrs := map[string]any{
		"filename":  entry.GetPath(),
		"extension": content.Extension(rel),
		"sha":       entry.GetSHA(),
		"size":      entry.GetSize(),
		"ref":       d.cfg.Ref,
		"html_url": fmt.Sprintf("%s/%s/%s/blob/%s/%s",
			d.cfg.WebURL(), d.cfg.Owner, d.cfg.Repo, d.cfg.Ref, entry.GetPath()),
	}
	node := domain.RawNode{Identifier: content.IdentifierFor(rel)}

	if !content.IsText(rel, d.textExtensions) {
		path, err := d.cache(entry, data)
		if err != nil {
			return domain.RawNode{}, err
		}
		attrs["content_filename"] = path
		node.Binary = true
		node.Attributes = attrs
		return node, nil
	}

	meta, body, err := content.SplitFrontMatter(string(data))
	if err != nil {
		return domain.RawNode{}, fmt.Errorf("github: %s: %w", entry.GetPath(), err)
	}
	for k, v := range meta {
		attrs[k] = v
	}
	content.SetDefaultTitle(attrs, rel, body)
	node.Content = body
	node.Attributes = attrs
	return node, nil
}

// cache stores a binary blob under its SHA, keeping the file extension.
func (d *DataSource) cache(entry *gh.TreeEntry, data []byte) (string, error) {
	if err := os.MkdirAll(d.cfg.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("github: create cache dir: %w", err)
	}
	path := filepath.Join(d.cfg.CacheDir, entry.GetSHA()+filepath.Ext(entry.GetPath()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("github: cache %s: %w", entry.GetPath(), err)
	}
	return path, nil
}
