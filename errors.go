package imageconf

import (
	"errors"
	"fmt"
)

// Error codes for parse and interpolation failures.
const (
	ErrCodeSyntax           = "syntax"
	ErrCodeMissingSection   = "missing_section_header"
	ErrCodeDuplicateSection = "duplicate_section"
	ErrCodeEmptyOption      = "empty_option"
	ErrCodeEmptySection     = "empty_section"
	ErrCodeMissingReference = "missing_reference"
)

var (
	// ErrKeyNotFound is matched by every KeyNotFoundError.
	ErrKeyNotFound = errors.New("imageconf: key not found")

	// ErrDuplicateSection is returned by AddSection when the section already exists.
	ErrDuplicateSection = errors.New("imageconf: section already exists")

	// ErrInvalidSection is returned for an empty section name.
	ErrInvalidSection = errors.New("imageconf: invalid section name")
)

// ParseError reports malformed INI text in an existing source.
type ParseError struct {
	Path    string // Source name (file path for files)
	Line    int    // 1-based line number
	Code    string // Error code (e.g., "syntax", "duplicate_section")
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s:%d: %s (%s)", e.Path, e.Line, e.Message, e.Code)
}

// KeyNotFoundError is returned by the plain accessors when a section or option is absent.
// Option is empty when the section itself is missing.
type KeyNotFoundError struct {
	Section string
	Option  string
}

func (e *KeyNotFoundError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("imageconf: no section %q", e.Section)
	}
	return fmt.Sprintf("imageconf: no option %q in section %q", e.Option, e.Section)
}

// Is lets errors.Is(err, ErrKeyNotFound) match.
func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// InterpolationError is raised while resolving a value that references a missing
// option or section, or that contains a malformed reference.
type InterpolationError struct {
	Section   string // Section of the option being resolved
	Option    string // Option being resolved
	Reference string // Offending reference text (e.g., "${build:arch}")
	Code      string
}

func (e *InterpolationError) Error() string {
	switch e.Code {
	case ErrCodeSyntax:
		return fmt.Sprintf("interpolate %s:%s: bad reference %q", e.Section, e.Option, e.Reference)
	default:
		return fmt.Sprintf("interpolate %s:%s: %s not found", e.Section, e.Option, e.Reference)
	}
}

// InterpolationDepthError is raised when chained references nest deeper than the
// configured limit, which is what a reference cycle looks like.
type InterpolationDepthError struct {
	Section  string
	Option   string
	MaxDepth int
}

func (e *InterpolationDepthError) Error() string {
	return fmt.Sprintf("interpolate %s:%s: references nested deeper than %d", e.Section, e.Option, e.MaxDepth)
}
