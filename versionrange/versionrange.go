// Package versionrange parses maven-style version ranges over semantic
// versions.
//
// A range is either a bare version, which is treated as an inclusive
// minimum ("1.2" matches every version >= 1.2), or an interval with
// square brackets denoting inclusive bounds and parentheses denoting
// exclusive ones: "[1.2,2.0)" matches 1.2 <= v < 2.0. Either side of an
// interval may be omitted to leave it unbounded, as in "(,2.0]".
package versionrange

import (
	"errors"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ErrMalformedRange is returned by Parse for input that does not follow
// the range grammar.
var ErrMalformedRange = errors.New("malformed version range")

// Range is a parsed version range.
type Range struct {
	raw          string
	min, max     *goversion.Version
	minInclusive bool
	maxInclusive bool
}

// Parse parses a version range.
func Parse(s string) (*Range, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedRange)
	}

	open := trimmed[0] == '[' || trimmed[0] == '('
	closed := trimmed[len(trimmed)-1] == ']' || trimmed[len(trimmed)-1] == ')'
	if open != closed {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q",
			ErrMalformedRange, s)
	}

	// Bare version: an inclusive minimum.
	if !open {
		min, err := goversion.NewVersion(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRange, err)
		}
		return &Range{raw: trimmed, min: min, minInclusive: true}, nil
	}

	body := trimmed[1 : len(trimmed)-1]
	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected one comma in %q",
			ErrMalformedRange, s)
	}

	r := &Range{
		raw:          trimmed,
		minInclusive: trimmed[0] == '[',
		maxInclusive: trimmed[len(trimmed)-1] == ']',
	}

	var err error
	if lower := strings.TrimSpace(parts[0]); lower != "" {
		if r.min, err = goversion.NewVersion(lower); err != nil {
			return nil, fmt.Errorf("%w: lower bound: %v",
				ErrMalformedRange, err)
		}
	}
	if upper := strings.TrimSpace(parts[1]); upper != "" {
		if r.max, err = goversion.NewVersion(upper); err != nil {
			return nil, fmt.Errorf("%w: upper bound: %v",
				ErrMalformedRange, err)
		}
	}
	if r.min == nil && r.max == nil {
		return nil, fmt.Errorf("%w: both bounds empty in %q",
			ErrMalformedRange, s)
	}
	if r.min != nil && r.max != nil && r.min.GreaterThan(r.max) {
		return nil, fmt.Errorf("%w: lower bound above upper bound in %q",
			ErrMalformedRange, s)
	}
	return r, nil
}

// MustParse parses a version range, panicking on malformed input. It
// simplifies initialization of variables from constant ranges.
func MustParse(s string) *Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains reports whether the provided version falls within the range.
func (r *Range) Contains(v *goversion.Version) bool {
	if v == nil {
		return false
	}
	if r.min != nil {
		if cmp := v.Compare(r.min); cmp < 0 || (cmp == 0 && !r.minInclusive) {
			return false
		}
	}
	if r.max != nil {
		if cmp := v.Compare(r.max); cmp > 0 || (cmp == 0 && !r.maxInclusive) {
			return false
		}
	}
	return true
}

// ContainsString reports whether the provided version string falls
// within the range. Unparseable versions are not contained in any range.
func (r *Range) ContainsString(s string) bool {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return false
	}
	return r.Contains(v)
}

func (r *Range) String() string {
	return r.raw
}
