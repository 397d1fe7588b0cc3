// Package gallery implements the gallery state and playback engine: the
// in-memory collection of galleries, sequential/random navigation, and the
// write-through synchronization with the record store.
package gallery

import (
	"galleria/internal/fs"
	"galleria/internal/media"
	"galleria/internal/store"
)

// Gallery is a named, persisted binding to one backing folder plus its
// scanned media and display preferences. The folder capability is owned
// exclusively by this gallery.
type Gallery struct {
	ID       int64 // creation timestamp (ms epoch), never reused
	Name     string
	Folder   fs.FolderAccess
	Shuffled bool
	Order    int // position among sibling galleries, dense 0..N-1

	// Media is rebuilt wholesale on every scan. Newest-first unless
	// Shuffled, in which case it holds a fixed random permutation.
	Media []media.Descriptor
}

func (g *Gallery) record() store.Record {
	return store.Record{
		ID:        g.ID,
		Name:      g.Name,
		FolderRef: g.Folder.Ref(),
		Shuffled:  g.Shuffled,
		Order:     g.Order,
	}
}

// RecordStore is the persistence capability consumed by the collection.
// Implemented by store.DB; tests inject fakes.
type RecordStore interface {
	Put(rec store.Record) error
	GetAll() ([]store.Record, error)
	Delete(id int64) error
}

// FolderOpener reconstructs a folder capability from its persisted
// reference. Implemented by fs.System; tests inject fakes.
type FolderOpener interface {
	Open(ref string) (fs.FolderAccess, error)
}

// Scanner produces a gallery's media list. Implemented by scan.Scanner.
type Scanner interface {
	Scan(folder fs.FolderAccess) ([]media.Descriptor, error)
}
