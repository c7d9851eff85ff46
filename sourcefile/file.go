package sourcefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Azhovan/imageconf"
	"github.com/Azhovan/imageconf/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures file source behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (no entries).
	Required bool
}

type fileSource struct {
	path string
	opts Options
}

// New creates a file-based configuration source.
func New(path string, opts Options) imageconf.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Load reads and parses the file. Sections and options are emitted in sorted
// order so repeated loads produce the same store.
func (f *fileSource) Load(ctx context.Context) ([]imageconf.Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if f.opts.Required {
				return nil, fmt.Errorf("required config file not found: %s: %w", f.path, err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := f.opts.Format
	if format == "" {
		format = inferFormat(f.path)
	}

	var raw map[string]any
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML file %s: %w", f.path, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON file %s: %w", f.path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML file %s: %w", f.path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	var entries []imageconf.Entry
	for _, section := range sortedKeys(raw) {
		body, ok := raw[section].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: top-level key %q must be a table of options", f.path, section)
		}
		flattenOptions(section, "", body, &entries)
	}
	return entries, nil
}

// flattenOptions recursively flattens nested maps to dot-separated option names.
func flattenOptions(section, prefix string, body map[string]any, entries *[]imageconf.Entry) {
	for _, key := range sortedKeys(body) {
		name := normalize.ApplyPrefix(prefix, key)
		switch v := body[key].(type) {
		case map[string]any:
			flattenOptions(section, name, v, entries)
		default:
			*entries = append(*entries, imageconf.Entry{Section: section, Option: name, Value: formatValue(v)})
		}
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Name returns a human-readable identifier for this source.
func (f *fileSource) Name() string {
	return "file:" + f.path
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
