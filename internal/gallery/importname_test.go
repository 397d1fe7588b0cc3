package gallery

import (
	"testing"
	"time"
)

func TestImportFileName(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 30, 45, 123e6, time.UTC)

	testCases := []struct {
		name      string
		suggested string
		mimeType  string
		expected  string
	}{
		{"video without extension", "clip", "video/webm", "video2024-05-17T10-30-45-123Z.webm"},
		{"image keeps its extension", "photo.jpg", "image/jpeg", "image2024-05-17T10-30-45-123Z.jpg"},
		{"mapped mime subtype", "shot", "image/jpeg", "image2024-05-17T10-30-45-123Z.jpg"},
		{"unknown mime falls back to bin", "blob", "application/octet-stream", "file2024-05-17T10-30-45-123Z.bin"},
		{"empty mime", "data", "", "file2024-05-17T10-30-45-123Z.bin"},
		{"trailing dot ignored", "weird.", "video/mp4", "video2024-05-17T10-30-45-123Z.mp4"},
	}

	for _, tc := range testCases {
		got := importFileName(tc.suggested, tc.mimeType, now)
		if got != tc.expected {
			t.Errorf("%s: importFileName(%q, %q) = %q, want %q",
				tc.name, tc.suggested, tc.mimeType, got, tc.expected)
		}
	}
}
