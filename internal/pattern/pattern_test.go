package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"sect", "sect", true},
		{"sect", "sect-a", false},
		{"sect-*", "sect-a", true},
		{"sect-*", "sect-", true},
		{"sect-*", "sect", false},
		{"sect-*", "other-a", false},
		{"*", "anything", true},
		{"*-a", "sect-a", true},
		{"*-a", "sect-b", false},
		{"sect-[ab]", "sect-a", true},
		{"sect-[ab]", "sect-c", false},
		{"sect-?", "sect-x", true},
		{"{a,b}-sect", "b-sect", true},
		{"sect-[", "sect-[", false}, // malformed glob matches nothing
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.pattern).Match(tt.name))
		})
	}
}

func TestMatcher_Filter(t *testing.T) {
	names := []string{"build", "sect-b", "sect", "sect-a"}

	assert.Equal(t, []string{"sect-b", "sect-a"}, Compile("sect-*").Filter(names))
	assert.Equal(t, []string{"sect"}, Compile("sect").Filter(names))
	assert.Empty(t, Compile("missing").Filter(names))
}

func TestMatcher_String(t *testing.T) {
	assert.Equal(t, "sect-*", Compile("sect-*").String())
}

func TestSplitFragment(t *testing.T) {
	tests := []struct {
		base     string
		name     string
		wantKind string
		wantOK   bool
	}{
		{"opt", "opt_add_1", Add, true},
		{"opt", "opt_del_extra", Del, true},
		{"opt", "opt_add_a_b", Add, true},
		{"apps", "apps_del_arm64", Del, true},
		{"opt", "opt", "", false},
		{"opt", "opt_add_", "", false},
		{"opt", "opt_add", "", false},
		{"opt", "opt_mod_1", "", false},
		{"opt", "other_add_1", "", false},
		{"opt", "optx_add_1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := SplitFragment(tt.base, tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKind, kind)
		})
	}
}
