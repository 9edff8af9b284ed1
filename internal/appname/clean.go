// Package appname derives a human-readable application title from a package
// filename.
//
// AppImage filenames commonly carry version numbers, dates, and platform or
// packaging tags ("Cider-linux-x64_2.3.1.AppImage"). Clean strips those down
// to a presentable title ("Cider") with a deterministic, idempotent transform
// so repeated runs over the same package always produce the same output names.
package appname

import (
	"strings"
	"unicode"
)

// defaultStopTokens are filename tokens that never belong in an application
// title: architectures, operating systems, packaging formats, and build tags.
// The set is a policy choice, not derived from any packaging standard.
var defaultStopTokens = map[string]struct{}{
	"x86":       {},
	"x64":       {},
	"amd64":     {},
	"i386":      {},
	"i486":      {},
	"i586":      {},
	"i686":      {},
	"arm":       {},
	"arm64":     {},
	"armv7l":    {},
	"armhf":     {},
	"aarch64":   {},
	"linux":     {},
	"macos":     {},
	"windows":   {},
	"win32":     {},
	"win64":     {},
	"appimage":  {},
	"portable":  {},
	"deb":       {},
	"rpm":       {},
	"snap":      {},
	"flatpak":   {},
	"setup":     {},
	"installer": {},
	"bundle":    {},
	"build":     {},
	"release":   {},
	"stable":    {},
	"beta":      {},
	"alpha":     {},
	"rc":        {},
}

// Cleaner normalizes application names using the default stop-token set plus
// any extra tokens supplied by configuration.
type Cleaner struct {
	extra map[string]struct{}
}

// NewCleaner creates a Cleaner. Extra tokens are matched case-insensitively
// in addition to the built-in stop-token set.
func NewCleaner(extraTokens ...string) *Cleaner {
	extra := make(map[string]struct{}, len(extraTokens))
	for _, tok := range extraTokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			extra[tok] = struct{}{}
		}
	}
	return &Cleaner{extra: extra}
}

// Clean normalizes name into a human-readable title.
//
// The name is tokenized on runs of non-alphanumeric characters. Stop tokens,
// purely numeric tokens, version tokens ("v2", "rc1"), and date-like tokens
// (8 digits) are dropped. Retained tokens are re-joined with single spaces,
// each with its first letter capitalized. If every token is filtered out the
// original name is returned unmodified, so Clean never yields an empty
// string for non-empty input.
func (c *Cleaner) Clean(name string) string {
	tokens := tokenize(name)

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if c.isStopToken(tok) {
			continue
		}
		kept = append(kept, capitalize(tok))
	}

	if len(kept) == 0 {
		return name
	}
	return strings.Join(kept, " ")
}

// Slug returns the cleaned name with spaces removed, suitable for output
// filenames and executable-prefix matching.
func (c *Cleaner) Slug(name string) string {
	return strings.ReplaceAll(c.Clean(name), " ", "")
}

// Clean normalizes name using only the default stop-token set.
func Clean(name string) string {
	return NewCleaner().Clean(name)
}

// Slug returns the cleaned name with spaces removed, using only the default
// stop-token set.
func Slug(name string) string {
	return NewCleaner().Slug(name)
}

func (c *Cleaner) isStopToken(tok string) bool {
	lower := strings.ToLower(tok)
	if _, ok := defaultStopTokens[lower]; ok {
		return true
	}
	if _, ok := c.extra[lower]; ok {
		return true
	}
	return isNumeric(lower) || isVersionToken(lower) || isDateToken(lower)
}

// tokenize splits name on runs of non-alphanumeric characters.
func tokenize(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isVersionToken matches "v1", "v23" and "rc1" style tokens.
func isVersionToken(tok string) bool {
	var rest string
	switch {
	case strings.HasPrefix(tok, "rc"):
		rest = tok[2:]
	case strings.HasPrefix(tok, "v"):
		rest = tok[1:]
	default:
		return false
	}
	return isNumeric(rest)
}

// isDateToken matches compact dates like "20240115".
func isDateToken(tok string) bool {
	return len(tok) == 8 && isNumeric(tok)
}

func capitalize(tok string) string {
	runes := []rune(tok)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
