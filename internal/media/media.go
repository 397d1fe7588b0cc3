// Package media defines the descriptors produced by scanning a gallery
// folder and the in-memory content store backing their access URLs.
package media

import (
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies a media file by its extension.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// Extension allowlists. Anything else is skipped during a scan.
var (
	imageExtensions = map[string]bool{
		"jpg":  true,
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
		"bmp":  true,
	}
	videoExtensions = map[string]bool{
		"mp4":  true,
		"webm": true,
		"ogg":  true,
	}
)

// KindForName classifies a file name by the substring after its final dot,
// case-insensitively. Returns false if the extension is not supported.
func KindForName(name string) (Kind, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch {
	case imageExtensions[ext]:
		return KindImage, true
	case videoExtensions[ext]:
		return KindVideo, true
	default:
		return 0, false
	}
}

// Descriptor holds the metadata and content handle for one discovered
// image or video file. Descriptors are ephemeral: the whole list is rebuilt
// on every scan.
type Descriptor struct {
	Name    string
	RelPath string // path from the gallery root, "/"-separated
	Kind    Kind
	Size    int64
	ModTime time.Time

	// Width and Height are probed from the image header where possible.
	// Zero for videos and for images whose header could not be decoded.
	Width  int
	Height int

	Content *Handle
}

// Release releases the content handles of every descriptor in the list.
// Mandatory on gallery close and at the start of any rescan.
func Release(descs []Descriptor) {
	for i := range descs {
		if descs[i].Content != nil {
			descs[i].Content.Release()
		}
	}
}
