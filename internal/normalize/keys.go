package normalize

import (
	"strings"
)

// SplitEnvKey maps an environment variable name (prefix already stripped) to a
// section and option. The first double underscore (__) separates the two and
// both parts are lowercased. Single underscores are preserved.
// Examples:
//   - "BUILD__ARCH" → ("build", "arch")
//   - "IMAGE__PARTITION_TABLE" → ("image", "partition_table")
//   - "FLATPAK__APPS_ADD_EXTRA" → ("flatpak", "apps_add_extra")
//   - "ARCH" → not a section key
func SplitEnvKey(key string) (section, option string, ok bool) {
	section, option, found := strings.Cut(key, "__")
	if !found || section == "" || option == "" {
		return "", "", false
	}
	return strings.ToLower(section), strings.ToLower(option), true
}

// ApplyPrefix combines a prefix with a key to create a nested option name.
// If prefix is empty, returns the key unchanged.
// Otherwise, returns "prefix.key".
// Examples:
//   - ApplyPrefix("repo", "url") → "repo.url"
//   - ApplyPrefix("", "url") → "url"
func ApplyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
