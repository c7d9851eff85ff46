package imageconf

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export formats supported by Dump.
const (
	FormatINI  = "ini"
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	format      string
	resolved    bool   // Interpolate values before writing
	withSources bool   // INI only: annotate options with their provenance
	indent      string // JSON indentation
}

// AsJSON exports as a JSON object of section objects.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = FormatJSON
	}
}

// AsTOML exports each section as a TOML table.
func AsTOML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = FormatTOML
	}
}

// AsYAML exports as a YAML mapping, keeping section and option order.
func AsYAML() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = FormatYAML
	}
}

// WithFormat selects the format by name ("ini", "json", "toml", "yaml").
func WithFormat(format string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.format = strings.ToLower(format)
	}
}

// Resolved interpolates every value before writing.
func Resolved() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.resolved = true
	}
}

// WithSources precedes every option with a "# source: <name>" comment.
// Only the INI format carries comments.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// WithIndent sets the indentation for JSON output. Default is two spaces.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

type dumpSection struct {
	name    string
	options []dumpOption
}

type dumpOption struct {
	name   string
	value  string
	source string
}

// Dump writes the configuration in the selected format. The default is INI,
// identical to WriteTo unless Resolved or WithSources is given.
func Dump(w io.Writer, c *Config, opts ...DumpOption) error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	config := dumpConfig{
		format: FormatINI,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	sections, err := collectSections(c, config.resolved)
	if err != nil {
		return err
	}

	switch config.format {
	case FormatINI:
		return dumpAsINI(w, sections, config)
	case FormatJSON:
		return dumpAsJSON(w, sections, config)
	case FormatTOML:
		return dumpAsTOML(w, sections)
	case FormatYAML:
		return dumpAsYAML(w, sections)
	default:
		return fmt.Errorf("unsupported dump format: %s (supported: ini, json, toml, yaml)", config.format)
	}
}

func collectSections(c *Config, resolved bool) ([]dumpSection, error) {
	out := make([]dumpSection, 0, len(c.sections))
	for _, s := range c.sections {
		ds := dumpSection{name: s.name}
		for _, name := range s.order {
			v := s.values[name]
			text := v.text
			if resolved {
				var err error
				text, err = c.interpolate(s.name, name, v.text, 1)
				if err != nil {
					return nil, err
				}
			}
			ds.options = append(ds.options, dumpOption{name: name, value: text, source: v.source})
		}
		out = append(out, ds)
	}
	return out, nil
}

func dumpAsINI(w io.Writer, sections []dumpSection, config dumpConfig) error {
	var b strings.Builder
	for _, s := range sections {
		writeSectionHeader(&b, s.name)
		for _, o := range s.options {
			if config.withSources && o.source != "" {
				fmt.Fprintf(&b, "# source: %s\n", o.source)
			}
			writeOption(&b, o.name, o.value)
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func sectionMap(sections []dumpSection) map[string]map[string]string {
	result := make(map[string]map[string]string, len(sections))
	for _, s := range sections {
		opts := make(map[string]string, len(s.options))
		for _, o := range s.options {
			opts[o.name] = o.value
		}
		result[s.name] = opts
	}
	return result
}

func dumpAsJSON(w io.Writer, sections []dumpSection, config dumpConfig) error {
	var (
		data []byte
		err  error
	)
	if config.indent != "" {
		data, err = json.MarshalIndent(sectionMap(sections), "", config.indent)
	} else {
		data, err = json.Marshal(sectionMap(sections))
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func dumpAsTOML(w io.Writer, sections []dumpSection) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(sectionMap(sections)); err != nil {
		return fmt.Errorf("toml marshal error: %w", err)
	}
	return nil
}

func dumpAsYAML(w io.Writer, sections []dumpSection) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range sections {
		body := &yaml.Node{Kind: yaml.MappingNode}
		for _, o := range s.options {
			body.Content = append(body.Content, scalarNode(o.name), scalarNode(o.value))
		}
		root.Content = append(root.Content, scalarNode(s.name), body)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("yaml marshal error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func scalarNode(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if strings.Contains(value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}
