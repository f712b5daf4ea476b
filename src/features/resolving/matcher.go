package resolving

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/contre95/playdir/src/media"
)

// ErrInvalidPattern is returned when a manifest pattern does not compile in regex mode.
var ErrInvalidPattern = errors.New("invalid manifest pattern")

// PatternMode selects how a manifest filename is matched against index links.
type PatternMode string

const (
	// PatternLiteral keeps links containing the pattern as a substring.
	PatternLiteral PatternMode = "literal"
	// PatternRegex compiles the pattern verbatim. Manifest authors control the
	// expression, so only enable it for trusted manifests.
	PatternRegex PatternMode = "regex"
)

// ParsePatternMode maps a config value to a PatternMode, defaulting to literal.
func ParsePatternMode(s string) PatternMode {
	if PatternMode(s) == PatternRegex {
		return PatternRegex
	}
	return PatternLiteral
}

// Matcher decides whether an index link belongs to a manifest line.
type Matcher func(link string) bool

// NewMatcher builds the Matcher for pattern under mode.
func NewMatcher(mode PatternMode, pattern string) (Matcher, error) {
	contains := func(link string) bool {
		return strings.Contains(link, pattern) || strings.Contains(media.Unescape(link), pattern)
	}
	if mode != PatternRegex {
		return contains, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
	}
	return func(link string) bool {
		return re.MatchString(link) || strings.Contains(media.Unescape(link), pattern)
	}, nil
}

// exactMatch reports whether pattern names one of links, literally or once unescaped.
func exactMatch(links []string, pattern string) bool {
	if slices.Contains(links, pattern) {
		return true
	}
	unescaped := media.Unescape(pattern)
	return slices.ContainsFunc(links, func(link string) bool {
		return media.Unescape(link) == unescaped
	})
}
