package sourceenv

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/Azhovan/imageconf"
	"github.com/Azhovan/imageconf/internal/normalize"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before mapping).
	// Empty = consider all vars containing a "__" separator.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (EIB_ matches eib_, Eib_, etc.).
	// Section and option names are always lowercased after prefix stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source.
func New(opts Options) imageconf.Source {
	return &envSource{opts: opts}
}

// Load scans environment variables, filters by prefix and maps names to
// sections and options. Entries are sorted by variable name.
func (e *envSource) Load(ctx context.Context) ([]imageconf.Entry, error) {
	type envVar struct{ key, value string }
	var vars []envVar

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		vars = append(vars, envVar{key: key, value: value})
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].key < vars[j].key })

	entries := make([]imageconf.Entry, 0, len(vars))
	for _, v := range vars {
		section, option, ok := normalize.SplitEnvKey(v.key)
		if !ok {
			continue
		}
		entries = append(entries, imageconf.Entry{Section: section, Option: option, Value: v.value})
	}
	return entries, nil
}

// Name returns a human-readable identifier for this source.
func (e *envSource) Name() string {
	if e.opts.Prefix == "" {
		return "env"
	}
	return "env:" + e.opts.Prefix
}
