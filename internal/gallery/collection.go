package gallery

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"galleria/internal/debug"
	"galleria/internal/fs"
	"galleria/internal/media"
	"galleria/internal/scan"
)

var (
	ErrNameRequired    = errors.New("gallery name is required")
	ErrFolderRequired  = errors.New("no folder selected")
	ErrNoActiveGallery = errors.New("no active gallery")
	ErrAccessDenied    = errors.New("folder access denied")
	ErrIndexOutOfRange = errors.New("gallery index out of range")
)

// Collection owns the ordered set of galleries, the active selection, and
// the navigation state. All mutating operations write through to the record
// store; persistence failures on single-gallery saves are logged and do not
// roll back in-memory state.
type Collection struct {
	mu sync.Mutex

	records RecordStore
	opener  FolderOpener
	scanner Scanner

	galleries  []*Gallery
	active     int // index into galleries, -1 when none selected
	mediaIndex int
	nav        *navigator

	rng *rand.Rand
	now func() time.Time
}

// NewCollection creates an empty collection wired to its capabilities.
func NewCollection(records RecordStore, opener FolderOpener, scanner Scanner) *Collection {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Collection{
		records: records,
		opener:  opener,
		scanner: scanner,
		active:  -1,
		nav:     newNavigator(rng),
		rng:     rng,
		now:     time.Now,
	}
}

// Load reads all persisted gallery records, ordered by their Order field
// (ties broken by record order), verifies folder access for each, scans its
// media, and appends it. Galleries whose folder is gone or denied are
// skipped with a warning; the batch never aborts. Selects the first gallery
// if any loaded.
func (c *Collection) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.records.GetAll()
	if err != nil {
		return fmt.Errorf("load galleries: %w", err)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Order < recs[j].Order
	})

	for _, rec := range recs {
		folder, err := c.opener.Open(rec.FolderRef)
		if err != nil {
			log.Printf("Gallery %q unavailable: %v", rec.Name, err)
			continue
		}
		if !fs.VerifyAccess(folder, false) {
			log.Printf("Gallery %q skipped: folder access denied", rec.Name)
			continue
		}

		g := &Gallery{
			ID:       rec.ID,
			Name:     rec.Name,
			Folder:   folder,
			Shuffled: rec.Shuffled,
			Order:    rec.Order,
		}
		if err := c.rescanLocked(g); err != nil {
			log.Printf("Gallery %q skipped: scan failed: %v", rec.Name, err)
			continue
		}
		c.galleries = append(c.galleries, g)
		debug.Log(debug.GALLERY, "Loaded gallery %q (%d media)", g.Name, len(g.Media))
	}

	if len(c.galleries) > 0 {
		c.selectLocked(0)
	}
	return nil
}

// Create registers a new gallery over the given folder, scans it
// immediately, persists it, appends it at the end of the collection, and
// selects it.
func (c *Collection) Create(name string, folder fs.FolderAccess) (*Gallery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if folder == nil {
		return nil, ErrFolderRequired
	}
	if !fs.VerifyAccess(folder, false) {
		return nil, ErrAccessDenied
	}

	g := &Gallery{
		ID:     c.nextIDLocked(),
		Name:   name,
		Folder: folder,
		Order:  len(c.galleries),
	}
	if err := c.rescanLocked(g); err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}

	// A failed save does not roll back the scan; the gallery just won't
	// survive the session.
	if err := c.records.Put(g.record()); err != nil {
		log.Printf("Store Error: saving gallery %q: %v", g.Name, err)
	}

	c.galleries = append(c.galleries, g)
	c.selectLocked(len(c.galleries) - 1)
	debug.Log(debug.GALLERY, "Created gallery %q id=%d (%d media)", g.Name, g.ID, len(g.Media))
	return g, nil
}

// nextIDLocked assigns the creation timestamp as the id, bumping past any
// collision from a same-millisecond creation.
func (c *Collection) nextIDLocked() int64 {
	id := c.now().UnixMilli()
	for c.indexOfLocked(id) >= 0 {
		id++
	}
	return id
}

func (c *Collection) indexOfLocked(id int64) int {
	for i, g := range c.galleries {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Close releases the gallery's content handles, deletes its persisted
// record, and removes it from the collection, fixing up the active index.
func (c *Collection) Close(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.galleries) {
		return ErrIndexOutOfRange
	}

	g := c.galleries[index]
	media.Release(g.Media)
	if err := c.records.Delete(g.ID); err != nil {
		log.Printf("Store Error: deleting gallery %q: %v", g.Name, err)
	}

	c.galleries = append(c.galleries[:index], c.galleries[index+1:]...)
	debug.Log(debug.GALLERY, "Closed gallery %q id=%d", g.Name, g.ID)

	switch {
	case len(c.galleries) == 0:
		c.active = -1
		c.mediaIndex = 0
		c.nav.reset()
	case index < c.active:
		c.active--
	case index == c.active:
		next := index
		if next > len(c.galleries)-1 {
			next = len(c.galleries) - 1
		}
		c.selectLocked(next)
	}
	return nil
}

// Select makes the gallery at index active, resets the displayed media to
// the first item, and forces navigation back to Sequential. Out-of-bounds
// indices are ignored.
func (c *Collection) Select(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.galleries) {
		return
	}
	c.selectLocked(index)
}

func (c *Collection) selectLocked(index int) {
	c.active = index
	c.mediaIndex = 0
	c.nav.reset()
	debug.Log(debug.GALLERY, "Selected gallery %d (%q)", index, c.galleries[index].Name)
}

// Reorder moves the gallery at from to position to (remove then insert),
// tracks the active selection across the move, then reassigns every Order
// field densely and rewrites every record. The batch is sequential and
// non-atomic: a partial failure is logged and leaves stale orders until the
// next successful reorder.
func (c *Collection) Reorder(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.galleries)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	g := c.galleries[from]
	c.galleries = append(c.galleries[:from], c.galleries[from+1:]...)
	rest := make([]*Gallery, 0, n)
	rest = append(rest, c.galleries[:to]...)
	rest = append(rest, g)
	rest = append(rest, c.galleries[to:]...)
	c.galleries = rest

	// Keep the active index pointing at the same gallery
	switch {
	case c.active == from:
		c.active = to
	case from < c.active && to >= c.active:
		c.active--
	case from > c.active && to <= c.active:
		c.active++
	}

	for i, g := range c.galleries {
		g.Order = i
		if err := c.records.Put(g.record()); err != nil {
			log.Printf("Store Error: saving order of gallery %q: %v", g.Name, err)
		}
	}
	debug.Log(debug.GALLERY, "Reordered gallery %d -> %d", from, to)
	return nil
}

// ToggleShuffle flips the active gallery's shuffle flag. Turning it on
// applies a fresh random permutation to the current media list; turning it
// off restores the canonical newest-first order. No rescan happens. The
// displayed media resets to the first item.
func (c *Collection) ToggleShuffle() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active < 0 {
		return false, ErrNoActiveGallery
	}
	g := c.galleries[c.active]

	g.Shuffled = !g.Shuffled
	if g.Shuffled {
		scan.Shuffle(g.Media, c.rng)
	} else {
		scan.SortNewestFirst(g.Media)
	}
	if err := c.records.Put(g.record()); err != nil {
		log.Printf("Store Error: saving gallery %q: %v", g.Name, err)
	}

	c.mediaIndex = 0
	debug.Log(debug.GALLERY, "Gallery %q shuffled=%v", g.Name, g.Shuffled)
	return g.Shuffled, nil
}

// ImportFile writes the bytes as a new file in the active gallery's folder
// and rescans so the file appears in its sorted or shuffled position.
// Requires re-verified write access. Returns the stored file name. A failed
// write is a hard failure of this operation; a failed rescan afterwards is
// only logged.
func (c *Collection) ImportFile(data []byte, suggestedName, mimeType string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active < 0 {
		return "", ErrNoActiveGallery
	}
	g := c.galleries[c.active]
	if !fs.VerifyAccess(g.Folder, true) {
		return "", ErrAccessDenied
	}

	name := importFileName(suggestedName, mimeType, c.now())
	w, err := g.Folder.CreateFile(name)
	if err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("save file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	debug.Log(debug.GALLERY, "Imported %q into gallery %q", name, g.Name)

	if err := c.rescanLocked(g); err != nil {
		log.Printf("Rescan after import failed for gallery %q: %v", g.Name, err)
	}
	c.clampMediaIndexLocked()
	return name, nil
}

// Rescan rebuilds the media list of the gallery at index from disk,
// releasing the previous content handles first. Used after imports and by
// the folder watcher.
func (c *Collection) Rescan(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.galleries) {
		return ErrIndexOutOfRange
	}
	g := c.galleries[index]
	if !fs.VerifyAccess(g.Folder, false) {
		return ErrAccessDenied
	}
	if err := c.rescanLocked(g); err != nil {
		return err
	}
	c.clampMediaIndexLocked()
	return nil
}

// rescanLocked replaces g.Media wholesale. Releasing the old handles is a
// mandatory side effect of starting a rescan.
func (c *Collection) rescanLocked(g *Gallery) error {
	media.Release(g.Media)
	g.Media = nil

	descs, err := c.scanner.Scan(g.Folder)
	if err != nil {
		return err
	}
	// Shuffle state wins over the default sort after a (re)scan
	if g.Shuffled {
		scan.Shuffle(descs, c.rng)
	}
	g.Media = descs
	return nil
}

func (c *Collection) clampMediaIndexLocked() {
	if c.active < 0 {
		c.mediaIndex = 0
		return
	}
	count := len(c.galleries[c.active].Media)
	if count == 0 {
		c.mediaIndex = 0
	} else if c.mediaIndex >= count {
		c.mediaIndex = count - 1
	}
}

// --- Navigation ---

// NextMedia steps the displayed media forward: +1 with wraparound in
// Sequential, a fresh random draw in Random. Returns the new index.
func (c *Collection) NextMedia() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mediaIndex = c.nav.forward(c.mediaIndex, c.activeCountLocked())
	return c.mediaIndex
}

// PrevMedia steps backward: -1 with wraparound in Sequential; in Random it
// undoes the last jump once, then falls back to drawing.
func (c *Collection) PrevMedia() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mediaIndex = c.nav.backward(c.mediaIndex, c.activeCountLocked())
	return c.mediaIndex
}

// RandomMedia jumps to a random item, entering Random mode if needed.
func (c *Collection) RandomMedia() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mediaIndex = c.nav.jump(c.mediaIndex, c.activeCountLocked())
	return c.mediaIndex
}

// ToggleRandom flips Random mode. Turning it on jumps immediately; turning
// it off stays on the current item. Returns the new mode.
func (c *Collection) ToggleRandom() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.nav.random {
		c.nav.reset()
		return false
	}
	c.mediaIndex = c.nav.jump(c.mediaIndex, c.activeCountLocked())
	return true
}

func (c *Collection) activeCountLocked() int {
	if c.active < 0 {
		return 0
	}
	return len(c.galleries[c.active].Media)
}

// --- Read accessors for the presentation layer ---

// Galleries returns a snapshot of the gallery list in display order.
func (c *Collection) Galleries() []*Gallery {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Gallery, len(c.galleries))
	copy(out, c.galleries)
	return out
}

// Len returns the number of galleries.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.galleries)
}

// ActiveGalleryIndex returns the active gallery index, -1 if none.
func (c *Collection) ActiveGalleryIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// ActiveGallery returns the active gallery, or nil.
func (c *Collection) ActiveGallery() *Gallery {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active < 0 {
		return nil
	}
	return c.galleries[c.active]
}

// ActiveMediaIndex returns the index of the displayed media item.
func (c *Collection) ActiveMediaIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mediaIndex
}

// IsRandomMode reports whether navigation is in Random mode.
func (c *Collection) IsRandomMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nav.random
}

// CurrentMedia returns the displayed media descriptor, if any.
func (c *Collection) CurrentMedia() (media.Descriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active < 0 {
		return media.Descriptor{}, false
	}
	m := c.galleries[c.active].Media
	if c.mediaIndex < 0 || c.mediaIndex >= len(m) {
		return media.Descriptor{}, false
	}
	return m[c.mediaIndex], true
}
