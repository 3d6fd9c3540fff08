package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure the readers implement the interface.
var (
	_ driven.ConfigReader = (*YAMLReader)(nil)
	_ driven.ConfigReader = (*TOMLReader)(nil)
)

// ParseError reports a configuration document that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// YAMLReader reads YAML configuration documents.
type YAMLReader struct{}

// NewYAMLReader creates a YAML configuration reader.
func NewYAMLReader() *YAMLReader {
	return &YAMLReader{}
}

// Extensions returns the YAML file extensions.
func (r *YAMLReader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Read parses the YAML document at path into a nested map.
func (r *YAMLReader) Read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseYAML(path, data)
}

// ParseYAML decodes YAML data. An empty document yields an empty map.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	if raw == nil {
		return make(map[string]any), nil
	}
	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &ParseError{Path: source, Err: fmt.Errorf("top level is %T, not a mapping", raw)}
	}
	return doc, nil
}

// TOMLReader reads TOML configuration documents.
type TOMLReader struct{}

// NewTOMLReader creates a TOML configuration reader.
func NewTOMLReader() *TOMLReader {
	return &TOMLReader{}
}

// Extensions returns the TOML file extension.
func (r *TOMLReader) Extensions() []string {
	return []string{".toml"}
}

// Read parses the TOML document at path into a nested map.
func (r *TOMLReader) Read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return normalize(doc).(map[string]any), nil
}

// normalize converts decoder output into the shapes the core expects:
// string-keyed maps and []any sequences, recursively.
func normalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	default:
		return val
	}
}
