// Package desktop parses and writes freedesktop.org desktop-entry files.
//
// Only the subset needed for launcher projection is implemented: the main
// [Desktop Entry] section is parsed into an order-preserving key/value list,
// [Desktop Action *] sections are dropped, and any other section is carried
// through verbatim. Key order is irrelevant for correctness but preserved so
// the emitted file stays readable and byte-stable across runs.
package desktop

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoEntry indicates no .desktop file was found in an extracted tree.
var ErrNoEntry = errors.New("no desktop entry found")

const mainSection = "Desktop Entry"

// preferredEntryDirs are standard locations checked first when a tree
// contains more than one .desktop file.
var preferredEntryDirs = []string{
	"usr/share/applications",
	"usr/local/share/applications",
}

type field struct {
	key   string
	value string
}

// Entry is a parsed desktop-entry file. The zero value is an empty entry.
type Entry struct {
	fields []field
	// extra holds raw lines of sections other than [Desktop Entry] and
	// dropped action sections, carried through unmodified.
	extra []string
}

// Parse reads a desktop-entry file. Lines of the [Desktop Entry] section
// become ordered key/value fields; [Desktop Action *] sections are dropped
// entirely; other sections are retained verbatim. Blank lines and comments
// are skipped. A duplicate key keeps its first value.
func Parse(data []byte) *Entry {
	e := &Entry{}

	const (
		inMain = iota
		inAction
		inOther
	)
	state := inMain

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := trimmed[1 : len(trimmed)-1]
			switch {
			case section == mainSection:
				state = inMain
			case strings.Contains(strings.ToLower(section), "desktop action"):
				state = inAction
			default:
				state = inOther
				e.extra = append(e.extra, line)
			}
			continue
		}

		switch state {
		case inAction:
			continue
		case inOther:
			if trimmed != "" {
				e.extra = append(e.extra, line)
			}
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		e.set(strings.TrimSpace(key), strings.TrimSpace(value), false)
	}

	return e
}

// Get returns the value for key in the main section.
func (e *Entry) Get(key string) (string, bool) {
	for _, f := range e.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return "", false
}

// Set replaces the value for key, keeping its position, or appends the key
// at the end when it is new.
func (e *Entry) Set(key, value string) {
	e.set(key, value, true)
}

func (e *Entry) set(key, value string, overwrite bool) {
	for i, f := range e.fields {
		if f.key == key {
			if overwrite {
				e.fields[i].value = value
			}
			return
		}
	}
	e.fields = append(e.fields, field{key: key, value: value})
}

// Delete removes key from the main section if present.
func (e *Entry) Delete(key string) {
	for i, f := range e.fields {
		if f.key == key {
			e.fields = append(e.fields[:i], e.fields[i+1:]...)
			return
		}
	}
}

// Keys returns the main-section keys in order.
func (e *Entry) Keys() []string {
	keys := make([]string, len(e.fields))
	for i, f := range e.fields {
		keys[i] = f.key
	}
	return keys
}

// Encode renders the entry as desktop-entry text. Output is byte-identical
// for equal entries.
func (e *Entry) Encode() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[%s]\n", mainSection)
	for _, f := range e.fields {
		fmt.Fprintf(&buf, "%s=%s\n", f.key, f.value)
	}
	if len(e.extra) > 0 {
		buf.WriteByte('\n')
		for _, line := range e.extra {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// FindEntryFile locates the .desktop file to use inside an extracted package
// tree. Entries under the standard applications directories win over entries
// elsewhere; remaining ties go to the lexicographically first path so the
// choice is stable across runs. Returns ErrNoEntry when the tree has none.
func FindEntryFile(root string) (string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".desktop") {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan for desktop entries: %w", err)
	}
	if len(found) == 0 {
		return "", ErrNoEntry
	}

	sort.Strings(found)
	for _, dir := range preferredEntryDirs {
		needle := filepath.FromSlash(dir) + string(filepath.Separator)
		for _, path := range found {
			if strings.Contains(path, needle) {
				return path, nil
			}
		}
	}
	return found[0], nil
}
