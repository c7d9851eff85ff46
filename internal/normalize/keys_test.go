package normalize

import (
	"testing"
)

func TestSplitEnvKey(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSection string
		wantOption  string
		wantOK      bool
	}{
		{
			name:        "section and option",
			input:       "BUILD__ARCH",
			wantSection: "build",
			wantOption:  "arch",
			wantOK:      true,
		},
		{
			name:        "single underscore preserved",
			input:       "IMAGE__PARTITION_TABLE",
			wantSection: "image",
			wantOption:  "partition_table",
			wantOK:      true,
		},
		{
			name:        "fragment option",
			input:       "FLATPAK__APPS_ADD_EXTRA",
			wantSection: "flatpak",
			wantOption:  "apps_add_extra",
			wantOK:      true,
		},
		{
			name:        "later separators stay in the option",
			input:       "A__B__C",
			wantSection: "a",
			wantOption:  "b__c",
			wantOK:      true,
		},
		{
			name:   "no separator",
			input:  "ARCH",
			wantOK: false,
		},
		{
			name:   "empty section",
			input:  "__ARCH",
			wantOK: false,
		},
		{
			name:   "empty option",
			input:  "BUILD__",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, option, ok := SplitEnvKey(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("SplitEnvKey(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if section != tt.wantSection || option != tt.wantOption {
				t.Errorf("SplitEnvKey(%q) = (%q, %q), want (%q, %q)", tt.input, section, option, tt.wantSection, tt.wantOption)
			}
		})
	}
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		key      string
		expected string
	}{
		{
			name:     "with prefix",
			prefix:   "repo",
			key:      "url",
			expected: "repo.url",
		},
		{
			name:     "empty prefix",
			prefix:   "",
			key:      "url",
			expected: "url",
		},
		{
			name:     "empty key",
			prefix:   "repo",
			key:      "",
			expected: "repo",
		},
		{
			name:     "nested prefix",
			prefix:   "remote.eos",
			key:      "url",
			expected: "remote.eos.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPrefix(tt.prefix, tt.key)
			if result != tt.expected {
				t.Errorf("ApplyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, result, tt.expected)
			}
		})
	}
}
