package imageconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const maxLineSize = 1 << 20

// Read parses each path in order into the Config and returns the paths that were
// read. A path that does not exist is skipped without error so callers can probe
// optional per-attribute files. Other I/O failures and malformed files abort the
// call; paths read before the failure stay applied.
func (c *Config) Read(paths ...string) ([]string, error) {
	read := make([]string, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.logger.Debug("skipping missing config file", "path", path)
				continue
			}
			return read, fmt.Errorf("read config file %s: %w", path, err)
		}

		err = c.readFrom(f, path, "file:"+path)
		f.Close()
		if err != nil {
			return read, err
		}
		read = append(read, path)
	}
	return read, nil
}

// ReadReader parses INI text from r. name identifies the source in errors and
// provenance.
func (c *Config) ReadReader(r io.Reader, name string) error {
	return c.readFrom(r, name, name)
}

// ReadString parses INI text from s.
func (c *Config) ReadString(s, name string) error {
	return c.readFrom(strings.NewReader(s), name, name)
}

// readFrom mutates the Config only once the whole source parsed.
func (c *Config) readFrom(r io.Reader, path, sourceName string) error {
	doc, err := parseINI(r, path)
	if err != nil {
		return err
	}
	for _, name := range doc.sections {
		c.ensureSection(name)
	}
	for _, e := range doc.entries {
		c.index[e.Section].set(e.Option, e.Value, sourceName)
	}
	c.logger.Debug("read config", "source", sourceName, "sections", len(doc.sections), "options", len(doc.entries))
	return nil
}

type iniDocument struct {
	sections []string // Headers in order of appearance
	entries  []Entry
}

// pendingOption accumulates a possibly multi-line value.
type pendingOption struct {
	section string
	name    string
	indent  int
	lines   []string
	blanks  int // Blank lines seen since the last continuation line
}

func (p *pendingOption) entry() Entry {
	v := strings.Join(p.lines, "\n")
	return Entry{Section: p.section, Option: p.name, Value: strings.TrimRight(v, " \t\r\n")}
}

func parseINI(r io.Reader, path string) (*iniDocument, error) {
	doc := &iniDocument{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lineno  int
		current string
		pending *pendingOption
	)

	flush := func() {
		if pending != nil {
			doc.entries = append(doc.entries, pending.entry())
			pending = nil
		}
	}
	fail := func(code, format string, args ...any) error {
		return &ParseError{Path: path, Line: lineno, Code: code, Message: fmt.Sprintf(format, args...)}
	}

	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if trimmed == "" {
			if pending != nil {
				pending.blanks++
			}
			continue
		}
		if isComment(trimmed) {
			continue
		}

		if pending != nil && indent > pending.indent {
			for ; pending.blanks > 0; pending.blanks-- {
				pending.lines = append(pending.lines, "")
			}
			pending.lines = append(pending.lines, trimmed)
			continue
		}
		flush()

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
			if name == "" {
				return nil, fail(ErrCodeEmptySection, "empty section header")
			}
			if seen[name] {
				return nil, fail(ErrCodeDuplicateSection, "section %q already defined in this file", name)
			}
			seen[name] = true
			doc.sections = append(doc.sections, name)
			current = name
			continue
		}

		if current == "" {
			return nil, fail(ErrCodeMissingSection, "option line before any section header: %q", trimmed)
		}

		idx := strings.IndexAny(trimmed, "=:")
		if idx < 0 {
			return nil, fail(ErrCodeSyntax, "expected 'name = value', got %q", trimmed)
		}
		name := strings.TrimSpace(trimmed[:idx])
		if name == "" {
			return nil, fail(ErrCodeEmptyOption, "option without a name: %q", trimmed)
		}
		pending = &pendingOption{
			section: current,
			name:    name,
			indent:  indent,
			lines:   []string{strings.TrimSpace(trimmed[idx+1:])},
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	flush()

	return doc, nil
}

func isComment(trimmed string) bool {
	return trimmed[0] == '#' || trimmed[0] == ';'
}
