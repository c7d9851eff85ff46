// Package pattern matches section names and fragment option names.
package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher selects names. Build one with Compile.
type Matcher struct {
	raw    string
	kind   kind
	prefix string
}

type kind int

const (
	exact kind = iota
	prefix
	glob
)

// Compile classifies a pattern:
//   - "sect" matches only "sect"
//   - "sect-*" matches every name starting with "sect-"
//   - anything else with glob metacharacters ("*-a", "sect-[ab]") is a glob
func Compile(p string) Matcher {
	switch {
	case !strings.ContainsAny(p, `*?[\{`):
		return Matcher{raw: p, kind: exact}
	case strings.HasSuffix(p, "*") && !strings.ContainsAny(p[:len(p)-1], `*?[\{`):
		return Matcher{raw: p, kind: prefix, prefix: p[:len(p)-1]}
	default:
		return Matcher{raw: p, kind: glob}
	}
}

// String returns the pattern the Matcher was compiled from.
func (m Matcher) String() string {
	return m.raw
}

// Match reports whether name is selected. A malformed glob matches nothing.
func (m Matcher) Match(name string) bool {
	switch m.kind {
	case exact:
		return name == m.raw
	case prefix:
		return strings.HasPrefix(name, m.prefix)
	default:
		matched, _ := doublestar.Match(m.raw, name)
		return matched
	}
}

// Filter returns the names selected by m, preserving their order.
func (m Matcher) Filter(names []string) []string {
	var out []string
	for _, name := range names {
		if m.Match(name) {
			out = append(out, name)
		}
	}
	return out
}

// Fragment kinds recognised by SplitFragment.
const (
	Add = "add"
	Del = "del"
)

// SplitFragment parses "<base>_add_<suffix>" or "<base>_del_<suffix>" for the given
// base. It returns the fragment kind and whether name is a fragment of base.
// The suffix must be non-empty.
func SplitFragment(base, name string) (string, bool) {
	rest, ok := strings.CutPrefix(name, base+"_")
	if !ok {
		return "", false
	}
	for _, k := range []string{Add, Del} {
		suffix, ok := strings.CutPrefix(rest, k+"_")
		if ok && suffix != "" {
			return k, true
		}
	}
	return "", false
}
