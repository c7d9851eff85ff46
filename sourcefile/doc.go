// Package sourcefile loads configuration layers from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .json, .toml). Top-level keys
// are sections; nested tables flatten to dotted option names and lists become
// newline-separated values, the same shape a merged INI option has.
//
// Example:
//
//	cfg := imageconf.New()
//	err := cfg.Load(ctx, sourcefile.New("site.yaml", sourcefile.Options{}))
package sourcefile
