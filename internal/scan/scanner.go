// Package scan builds a gallery's media list from its folder capability.
package scan

import (
	"bytes"
	"image"
	"math/rand"
	"sort"

	// Image header decoders for dimension probing. The stdlib covers
	// jpg/png/gif; x/image covers the rest of the allowlist.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"galleria/internal/debug"
	"galleria/internal/fs"
	"galleria/internal/media"
)

// Scanner produces media descriptors by walking a folder capability.
// Content bytes are registered in the shared content store; the caller owns
// releasing them on close or rescan.
type Scanner struct {
	content *media.ContentStore
}

// NewScanner creates a scanner backed by the given content store.
func NewScanner(content *media.ContentStore) *Scanner {
	return &Scanner{content: content}
}

// Scan walks the folder depth-first, collects every supported image and
// video file, and returns the flat list sorted newest-first. A failure on a
// single entry drops that entry and continues; it never aborts the scan.
func (s *Scanner) Scan(folder fs.FolderAccess) ([]media.Descriptor, error) {
	var descs []media.Descriptor
	seen := make(map[string]bool)

	err := folder.Walk(func(e fs.Entry) error {
		kind, ok := media.KindForName(e.Name)
		if !ok {
			debug.Log(debug.SCAN_ENTRY, "Skipping unsupported file %q", e.RelPath)
			return nil
		}
		// One descriptor per relative path
		if seen[e.RelPath] {
			return nil
		}

		data, modTime, err := folder.ReadFile(e.RelPath)
		if err != nil {
			debug.Log(debug.SCAN, "Dropping unreadable entry %q: %v", e.RelPath, err)
			return nil
		}

		d := media.Descriptor{
			Name:    e.Name,
			RelPath: e.RelPath,
			Kind:    kind,
			Size:    int64(len(data)),
			ModTime: modTime,
			Content: s.content.Register(data),
		}
		if kind == media.KindImage {
			d.Width, d.Height = probeDimensions(data)
		}

		seen[e.RelPath] = true
		descs = append(descs, d)
		debug.Log(debug.SCAN_ENTRY, "Scanned %q kind=%s size=%d", e.RelPath, kind, d.Size)
		return nil
	})
	if err != nil {
		// The walk itself failed; nothing collected so far is usable.
		media.Release(descs)
		return nil, err
	}

	SortNewestFirst(descs)
	debug.Log(debug.SCAN, "Scan of %s complete: %d media files", folder.Ref(), len(descs))
	return descs, nil
}

// SortNewestFirst sorts descriptors descending by modification time.
// This is the canonical default order of a gallery.
func SortNewestFirst(descs []media.Descriptor) {
	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].ModTime.After(descs[j].ModTime)
	})
}

// Shuffle applies a uniform random permutation (Fisher-Yates) in place.
func Shuffle(descs []media.Descriptor, rng *rand.Rand) {
	rng.Shuffle(len(descs), func(i, j int) {
		descs[i], descs[j] = descs[j], descs[i]
	})
}

// probeDimensions decodes just the image header. Failure leaves dimensions
// at zero; the entry is still kept.
func probeDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
