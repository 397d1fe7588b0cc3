package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	require.NoError(t, d.Open(filepath.Join(t.TempDir(), "galleria.db")))
	t.Cleanup(d.Close)
	return d
}

func TestPutGetDelete(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.Put(Record{ID: 100, Name: "Photos", FolderRef: "/pics", Shuffled: true, Order: 1}))
	require.NoError(t, d.Put(Record{ID: 50, Name: "Videos", FolderRef: "/vids", Order: 0}))

	recs, err := d.GetAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Records come back in id (insertion) order
	require.Equal(t, int64(50), recs[0].ID)
	require.Equal(t, "Videos", recs[0].Name)
	require.False(t, recs[0].Shuffled)
	require.Equal(t, int64(100), recs[1].ID)
	require.Equal(t, "/pics", recs[1].FolderRef)
	require.True(t, recs[1].Shuffled)
	require.Equal(t, 1, recs[1].Order)

	require.NoError(t, d.Delete(50))
	recs, err = d.GetAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, int64(100), recs[0].ID)

	// Deleting a missing id is not an error
	require.NoError(t, d.Delete(999))
}

func TestPutIsFullUpsert(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.Put(Record{ID: 7, Name: "Old", FolderRef: "/old", Shuffled: true, Order: 3}))
	require.NoError(t, d.Put(Record{ID: 7, Name: "New", FolderRef: "/new", Shuffled: false, Order: 0}))

	recs, err := d.GetAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "New", recs[0].Name)
	require.Equal(t, "/new", recs[0].FolderRef)
	require.False(t, recs[0].Shuffled)
	require.Equal(t, 0, recs[0].Order)
}

func TestSchemaSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "galleria.db")

	d := NewDB()
	require.NoError(t, d.Open(path))
	require.NoError(t, d.Put(Record{ID: 1, Name: "Keep", FolderRef: "/keep"}))
	d.Close()

	d2 := NewDB()
	require.NoError(t, d2.Open(path))
	defer d2.Close()

	recs, err := d2.GetAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Keep", recs[0].Name)
}
