package media

import "testing"

func TestKindForName(t *testing.T) {
	testCases := []struct {
		name     string
		kind     Kind
		expected bool
	}{
		{"photo.jpg", KindImage, true},
		{"photo.JPEG", KindImage, true},
		{"anim.gif", KindImage, true},
		{"pic.webp", KindImage, true},
		{"scan.bmp", KindImage, true},
		{"clip.mp4", KindVideo, true},
		{"clip.WebM", KindVideo, true},
		{"sound.ogg", KindVideo, true},

		// Unsupported extensions are skipped, not errors
		{"movie.mov", 0, false},
		{"notes.txt", 0, false},
		{"archive.tar.gz", 0, false},
		{"noextension", 0, false},
		{".hidden", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		kind, ok := KindForName(tc.name)
		if ok != tc.expected {
			t.Errorf("KindForName(%q): expected supported=%v, got %v", tc.name, tc.expected, ok)
			continue
		}
		if ok && kind != tc.kind {
			t.Errorf("KindForName(%q): expected %v, got %v", tc.name, tc.kind, kind)
		}
	}
}

func TestContentStoreLifecycle(t *testing.T) {
	store := NewContentStore()

	h := store.Register([]byte("hello"))
	if store.Len() != 1 {
		t.Fatalf("expected 1 handle, got %d", store.Len())
	}

	data, ok := h.Bytes()
	if !ok || string(data) != "hello" {
		t.Fatalf("Bytes: expected hello, got %q ok=%v", data, ok)
	}

	url := h.URL()
	resolved, ok := store.Resolve(url)
	if !ok || string(resolved) != "hello" {
		t.Fatalf("Resolve(%q): expected hello, got %q ok=%v", url, resolved, ok)
	}

	if _, ok := store.Resolve("mem://no-such-handle"); ok {
		t.Error("resolving an unknown handle should fail")
	}
	if _, ok := store.Resolve("http://example.com"); ok {
		t.Error("resolving a foreign URL should fail")
	}

	h.Release()
	if store.Len() != 0 {
		t.Errorf("expected 0 handles after release, got %d", store.Len())
	}
	if _, ok := h.Bytes(); ok {
		t.Error("released handle must not resolve")
	}

	// Double release is harmless
	h.Release()
}

func TestReleaseAll(t *testing.T) {
	store := NewContentStore()
	descs := []Descriptor{
		{RelPath: "a", Content: store.Register([]byte("a"))},
		{RelPath: "b", Content: store.Register([]byte("b"))},
		{RelPath: "c"}, // no content handle
	}

	Release(descs)
	if store.Len() != 0 {
		t.Errorf("expected all handles released, got %d", store.Len())
	}
}
