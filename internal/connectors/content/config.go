package content

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// String returns cfg[key] when it is a non-empty string, def otherwise.
func String(cfg map[string]any, key, def string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Strings returns cfg[key] coerced to a string slice, def when absent.
func Strings(cfg map[string]any, key string, def []string) []string {
	v, ok := cfg[key]
	if !ok || v == nil {
		return def
	}
	return domain.StringSlice(v)
}

// Bool returns cfg[key] when it is a bool, def otherwise.
func Bool(cfg map[string]any, key string, def bool) bool {
	if v, ok := cfg[key].(bool); ok {
		return v
	}
	return def
}

// Int handles int, int64 and float64, which decoders produce for numbers.
func Int(cfg map[string]any, key string, def int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Require returns cfg[key] as a string or an ErrInvalidInput error naming the data source type.
func Require(cfg map[string]any, sourceType, key string) (string, error) {
	v := String(cfg, key, "")
	if v == "" {
		return "", fmt.Errorf("%w: %s data source requires %q", domain.ErrInvalidInput, sourceType, key)
	}
	return v, nil
}

// ResolvePath makes p absolute against the site directory of the owning site.
func ResolvePath(site domain.SiteRef, p string) string {
	if p == "" || filepath.IsAbs(p) || site == nil || site.Config() == nil {
		return p
	}
	siteDir := site.Config().SiteDir()
	if siteDir == "" {
		return p
	}
	return filepath.Join(siteDir, p)
}

// TextExtensions returns the data source's text_extensions, falling back to the site's.
func TextExtensions(site domain.SiteRef, cfg map[string]any) []string {
	var def []string
	if site != nil && site.Config() != nil {
		def = site.Config().TextExtensions()
	}
	return Strings(cfg, domain.KeyTextExtensions, def)
}
