package gallery

import (
	"strings"
	"time"
)

// mimeExtensions maps MIME subtypes to extensions for imported files whose
// suggested name carries none.
var mimeExtensions = map[string]string{
	"jpeg":      "jpg",
	"png":       "png",
	"gif":       "gif",
	"webp":      "webp",
	"bmp":       "bmp",
	"mp4":       "mp4",
	"webm":      "webm",
	"ogg":       "ogg",
	"quicktime": "mov",
}

// importFileName derives the stored name of an imported file: a prefix from
// the MIME class (image/video/file), the ISO-8601 UTC timestamp with ':'
// and '.' replaced by '-', and an extension taken from the suggested name,
// else mapped from the MIME subtype, else "bin".
func importFileName(suggested, mimeType string, now time.Time) string {
	prefix := "file"
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		prefix = "image"
	case strings.HasPrefix(mimeType, "video/"):
		prefix = "video"
	}

	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)

	ext := ""
	if idx := strings.LastIndexByte(suggested, '.'); idx >= 0 && idx < len(suggested)-1 {
		ext = suggested[idx+1:]
	}
	if ext == "" {
		subtype := mimeType
		if idx := strings.IndexByte(mimeType, '/'); idx >= 0 {
			subtype = mimeType[idx+1:]
		}
		ext = mimeExtensions[strings.ToLower(subtype)]
	}
	if ext == "" {
		ext = "bin"
	}

	return prefix + stamp + "." + ext
}
