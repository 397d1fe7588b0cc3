package media

import (
	"sync"

	"github.com/google/uuid"

	"galleria/internal/debug"
)

// URLScheme prefixes every content access URL handed out by the store.
const URLScheme = "mem://"

// ContentStore owns the in-memory bytes behind media access URLs.
// Handles must be released explicitly when a gallery is closed or rescanned,
// otherwise the store grows without bound.
type ContentStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewContentStore creates an empty content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		blobs: make(map[string][]byte),
	}
}

// Register stores the bytes and returns a handle with a dereferenceable URL.
func (c *ContentStore) Register(data []byte) *Handle {
	id := uuid.NewString()

	c.mu.Lock()
	c.blobs[id] = data
	c.mu.Unlock()

	return &Handle{id: id, store: c}
}

// Resolve returns the bytes behind an access URL, or false if the handle
// has been released or the URL is not one of ours.
func (c *ContentStore) Resolve(url string) ([]byte, bool) {
	if len(url) <= len(URLScheme) || url[:len(URLScheme)] != URLScheme {
		return nil, false
	}
	id := url[len(URLScheme):]

	c.mu.RLock()
	data, ok := c.blobs[id]
	c.mu.RUnlock()
	return data, ok
}

// Len returns the number of live handles. Used by tests and resource checks.
func (c *ContentStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blobs)
}

func (c *ContentStore) release(id string) {
	c.mu.Lock()
	_, ok := c.blobs[id]
	delete(c.blobs, id)
	c.mu.Unlock()

	if ok {
		debug.Log(debug.GALLERY, "Released content handle %s", id)
	}
}

// Handle is a scoped reference to one blob in a ContentStore.
type Handle struct {
	id    string
	store *ContentStore
}

// URL returns the dereferenceable access URL for this handle.
func (h *Handle) URL() string {
	return URLScheme + h.id
}

// Bytes returns the content, or false if the handle was released.
func (h *Handle) Bytes() ([]byte, bool) {
	h.store.mu.RLock()
	data, ok := h.store.blobs[h.id]
	h.store.mu.RUnlock()
	return data, ok
}

// Release drops the blob from the store. Releasing twice is harmless.
func (h *Handle) Release() {
	h.store.release(h.id)
}
