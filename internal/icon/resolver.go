// Package icon locates the best application icon inside an extracted package
// tree.
//
// Packages ship icons in wildly different places: theme directories under
// usr/share/icons, top-level duplicates next to the AppRun, pixmaps, or a
// bare .DirIcon file. The resolver enumerates every plausible candidate and
// picks exactly one with a deterministic preference order, so repeated runs
// over the same tree always choose the same file.
package icon

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound indicates the search yielded zero icon candidates.
var ErrNotFound = errors.New("no icon found")

// iconExts are the file extensions considered icon-like, in no particular
// order. Matching is case-insensitive.
var iconExts = map[string]struct{}{
	".svg":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".ico":  {},
	".xpm":  {},
}

// fallbackStems are generic icon names accepted when nothing matches the
// requested base name exactly.
var fallbackStems = map[string]struct{}{
	"icon":    {},
	"appicon": {},
}

// Candidate is a single icon file found during resolution. It exists only
// for the duration of a Resolve call.
type Candidate struct {
	// Path is the absolute path of the candidate file.
	Path string

	// Ext is the lower-cased extension, including the dot. For a .DirIcon
	// file it is the extension implied by the file's magic bytes.
	Ext string

	// Depth is the directory nesting level below the extraction root.
	Depth int

	// Size is the file size in bytes, used as a resolution proxy for
	// raster icons.
	Size int64
}

// Resolve returns the best icon candidate for baseName anywhere under
// root. baseName is the value of the desktop entry's Icon= field: a name
// without extension and without any guaranteed path. The returned
// candidate's Ext reflects the actual image format, which for a .DirIcon
// file differs from the filename.
//
// Files whose stem matches baseName case-insensitively are preferred; if
// none exist, files whose stem contains baseName, generic names like "icon",
// and a sniffable .DirIcon are considered instead. Ties are broken by
// preferring vector over raster, then the smallest depth below root, then
// the largest file size, then the lexicographically smallest path.
//
// Resolve is a pure search: it never modifies the tree. It returns
// ErrNotFound when there are no candidates at all.
func Resolve(root, baseName string) (Candidate, error) {
	exact, loose, err := collect(root, baseName)
	if err != nil {
		return Candidate{}, err
	}

	candidates := exact
	if len(candidates) == 0 {
		candidates = loose
	}
	if len(candidates) == 0 {
		return Candidate{}, ErrNotFound
	}

	sort.Slice(candidates, func(i, j int) bool {
		return better(candidates[i], candidates[j])
	})
	return candidates[0], nil
}

// collect walks the tree once and buckets candidates into exact stem matches
// and loose fallback matches.
func collect(root, baseName string) (exact, loose []Candidate, err error) {
	want := strings.ToLower(baseName)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		ext := strings.ToLower(filepath.Ext(name))
		stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

		var cand Candidate
		switch {
		case name == ".DirIcon":
			sniffed, ok := sniffExt(path)
			if !ok {
				return nil
			}
			cand = Candidate{Path: path, Ext: sniffed}
		default:
			if _, ok := iconExts[ext]; !ok {
				return nil
			}
			cand = Candidate{Path: path, Ext: ext}
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		cand.Size = info.Size()
		cand.Depth = depthBelow(root, path)

		switch {
		case stem == want:
			exact = append(exact, cand)
		case strings.Contains(stem, want):
			loose = append(loose, cand)
		case name == ".DirIcon":
			loose = append(loose, cand)
		default:
			if _, ok := fallbackStems[stem]; ok {
				loose = append(loose, cand)
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return exact, loose, nil
}

// better reports whether a is preferable to b. The order is total over
// distinct paths, which keeps resolution deterministic across runs.
func better(a, b Candidate) bool {
	aVec, bVec := a.Ext == ".svg", b.Ext == ".svg"
	if aVec != bVec {
		return aVec
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.Size != b.Size {
		return a.Size > b.Size
	}
	return a.Path < b.Path
}

// depthBelow counts the directory levels separating path from root. A file
// directly inside root has depth 0.
func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return strings.Count(path, string(filepath.Separator))
	}
	return strings.Count(rel, string(filepath.Separator))
}

// sniffExt determines the image format of an extensionless icon file from
// its leading bytes.
func sniffExt(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return "", false
	}
	buf = buf[:n]

	switch {
	case bytes.HasPrefix(buf, []byte("\x89PNG")):
		return ".png", true
	case bytes.HasPrefix(buf, []byte{0xff, 0xd8}):
		return ".jpg", true
	case bytes.Contains(buf, []byte("<svg")) || bytes.HasPrefix(buf, []byte("<?xml")):
		return ".svg", true
	}
	return "", false
}
