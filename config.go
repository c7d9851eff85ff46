package imageconf

import (
	"context"
	"fmt"
	"log/slog"
)

// Config is an ordered, in-memory store of INI sections holding raw option text.
// Values are interpolated lazily by Get and Items; the store itself never holds
// resolved text.
//
// A Config is not safe for concurrent use. Callers sharing one across goroutines
// must serialize access.
type Config struct {
	sections       []*section
	index          map[string]*section
	defaultSection string
	maxDepth       int
	logger         *slog.Logger
}

// New creates an empty Config.
func New(opts ...Option) *Config {
	c := &Config{
		index:          make(map[string]*section),
		defaultSection: DefaultSectionName,
		maxDepth:       DefaultMaxDepth,
		logger:         discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sections returns section names in first-seen order.
func (c *Config) Sections() []string {
	names := make([]string, len(c.sections))
	for i, s := range c.sections {
		names[i] = s.name
	}
	return names
}

// HasSection reports whether the section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.index[name]
	return ok
}

// AddSection creates an empty section.
func (c *Config) AddSection(name string) error {
	if name == "" {
		return ErrInvalidSection
	}
	if c.HasSection(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateSection, name)
	}
	c.ensureSection(name)
	return nil
}

// RemoveSection deletes a section and all its options. It reports whether the
// section existed.
func (c *Config) RemoveSection(name string) bool {
	if _, ok := c.index[name]; !ok {
		return false
	}
	delete(c.index, name)
	for i, s := range c.sections {
		if s.name == name {
			c.sections = append(c.sections[:i], c.sections[i+1:]...)
			break
		}
	}
	return true
}

// Options returns the option names of a section in insertion order.
func (c *Config) Options(sectionName string) ([]string, error) {
	s, err := c.section(sectionName)
	if err != nil {
		return nil, err
	}
	return s.names(), nil
}

// HasOption reports whether the option exists in the section.
func (c *Config) HasOption(sectionName, option string) bool {
	s, ok := c.index[sectionName]
	if !ok {
		return false
	}
	_, ok = s.get(option)
	return ok
}

// GetRaw returns the stored text of an option without interpolation.
func (c *Config) GetRaw(sectionName, option string) (string, error) {
	s, err := c.section(sectionName)
	if err != nil {
		return "", err
	}
	v, ok := s.get(option)
	if !ok {
		return "", &KeyNotFoundError{Section: sectionName, Option: option}
	}
	return v, nil
}

// Set stores a raw value, overwriting any previous one. The section must exist.
func (c *Config) Set(sectionName, option, value string) error {
	return c.setFrom(sectionName, option, value, SourceSet)
}

// RemoveOption deletes an option. It reports whether the option existed.
func (c *Config) RemoveOption(sectionName, option string) (bool, error) {
	s, err := c.section(sectionName)
	if err != nil {
		return false, err
	}
	return s.remove(option), nil
}

// Load applies entries from each source in order. Sections are created as needed
// and later entries override earlier ones.
func (c *Config) Load(ctx context.Context, srcs ...Source) error {
	for _, src := range srcs {
		entries, err := src.Load(ctx)
		if err != nil {
			return fmt.Errorf("load source %s: %w", src.Name(), err)
		}
		for _, e := range entries {
			if e.Section == "" {
				return fmt.Errorf("load source %s: option %q: %w", src.Name(), e.Option, ErrInvalidSection)
			}
			c.ensureSection(e.Section).set(e.Option, e.Value, src.Name())
		}
		c.logger.Debug("loaded source", "source", src.Name(), "entries", len(entries))
	}
	return nil
}

func (c *Config) setFrom(sectionName, option, value, source string) error {
	s, err := c.section(sectionName)
	if err != nil {
		return err
	}
	s.set(option, value, source)
	return nil
}

func (c *Config) section(name string) (*section, error) {
	s, ok := c.index[name]
	if !ok {
		return nil, &KeyNotFoundError{Section: name}
	}
	return s, nil
}

func (c *Config) ensureSection(name string) *section {
	if s, ok := c.index[name]; ok {
		return s
	}
	s := newSection(name)
	c.sections = append(c.sections, s)
	c.index[name] = s
	return s
}
