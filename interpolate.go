package imageconf

import (
	"strings"
)

// Get returns the value of an option with ${...} references expanded.
//
// ${name} is looked up in the same section, then in the default section.
// ${section:name} is looked up in the named section only. $$ is a literal $.
// References inside referenced values are expanded too, up to the configured depth.
func (c *Config) Get(sectionName, option string) (string, error) {
	raw, err := c.GetRaw(sectionName, option)
	if err != nil {
		return "", err
	}
	return c.interpolate(sectionName, option, raw, 1)
}

// GetList returns the resolved value split on whitespace, which is how merged
// list options are consumed.
func (c *Config) GetList(sectionName, option string) ([]string, error) {
	v, err := c.Get(sectionName, option)
	if err != nil {
		return nil, err
	}
	return strings.Fields(v), nil
}

// Items returns every option of a section, resolved, in insertion order.
func (c *Config) Items(sectionName string) ([]Item, error) {
	s, err := c.section(sectionName)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(s.order))
	for _, name := range s.order {
		v, err := c.interpolate(sectionName, name, s.values[name].text, 1)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Name: name, Value: v})
	}
	return items, nil
}

func (c *Config) interpolate(sectionName, option, raw string, depth int) (string, error) {
	if depth > c.maxDepth {
		return "", &InterpolationDepthError{Section: sectionName, Option: option, MaxDepth: c.maxDepth}
	}
	if !strings.Contains(raw, "$") {
		return raw, nil
	}

	var b strings.Builder
	rest := raw
	for {
		i := strings.IndexByte(rest, '$')
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		if strings.HasPrefix(rest, "$$") {
			b.WriteByte('$')
			rest = rest[2:]
			continue
		}
		end := strings.IndexByte(rest, '}')
		if !strings.HasPrefix(rest, "${") || end < 0 {
			return "", &InterpolationError{Section: sectionName, Option: option, Reference: rest, Code: ErrCodeSyntax}
		}
		ref := rest[:end+1]
		rest = rest[end+1:]

		targetSection, targetOption, ok := splitReference(ref[2 : len(ref)-1])
		if !ok {
			return "", &InterpolationError{Section: sectionName, Option: option, Reference: ref, Code: ErrCodeSyntax}
		}

		// Same-section references keep resolving in the caller's section, so a
		// default-section value can pick up section-local overrides.
		scope := sectionName
		var v string
		if targetSection == "" {
			v, ok = c.lookupWithDefault(sectionName, targetOption)
		} else {
			scope = targetSection
			v, ok = c.lookup(targetSection, targetOption)
		}
		if !ok {
			return "", &InterpolationError{Section: sectionName, Option: option, Reference: ref, Code: ErrCodeMissingReference}
		}

		resolved, err := c.interpolate(scope, targetOption, v, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(resolved)
	}
	return b.String(), nil
}

// splitReference parses "name" or "section:name".
func splitReference(ref string) (sectionName, option string, ok bool) {
	parts := strings.Split(ref, ":")
	switch {
	case len(parts) == 1 && parts[0] != "":
		return "", parts[0], true
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

func (c *Config) lookup(sectionName, option string) (string, bool) {
	s, ok := c.index[sectionName]
	if !ok {
		return "", false
	}
	return s.get(option)
}

func (c *Config) lookupWithDefault(sectionName, option string) (string, bool) {
	if v, ok := c.lookup(sectionName, option); ok {
		return v, true
	}
	if c.defaultSection == "" || c.defaultSection == sectionName {
		return "", false
	}
	return c.lookup(c.defaultSection, option)
}
