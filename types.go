package imageconf

import (
	"context"
	"io"
	"log/slog"
)

// Source provides configuration entries from a backend other than INI files
// (structured documents, environment variables).
type Source interface {
	// Load returns entries in the order they should be applied. Missing optional
	// sources should return no entries.
	Load(ctx context.Context) ([]Entry, error)

	// Name identifies the source in provenance records (e.g., "file:base.yaml").
	Name() string
}

// Entry is a single (section, option, value) triple delivered by a Source.
type Entry struct {
	Section string
	Option  string
	Value   string
}

// Item is a resolved option as returned by Items.
type Item struct {
	Name  string
	Value string
}

// MergeRule selects the sections and base option the Merger reconciles.
// Section is an exact name, a trailing-wildcard prefix ("sect-*"), or a glob.
type MergeRule struct {
	Section string
	Option  string
}

// Option configures a Config.
type Option func(*Config)

// DefaultSectionName is the section ${name} references fall back to.
const DefaultSectionName = "build"

// DefaultMaxDepth bounds chained interpolation.
const DefaultMaxDepth = 10

// WithDefaultSection sets the fallback section for ${name} references.
// An empty name disables the fallback.
func WithDefaultSection(name string) Option {
	return func(c *Config) {
		c.defaultSection = name
	}
}

// WithMaxDepth sets how many levels of chained references are followed.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug records. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
