// Package store persists gallery records in a local SQLite database.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"galleria/internal/debug"
)

// schemaVersion is bumped when the galleries table layout changes.
const schemaVersion = 1

// Record is the persisted form of a gallery. Every save is a full upsert
// keyed by ID, never a partial patch.
type Record struct {
	ID        int64  // creation timestamp in ms epoch, never reused
	Name      string
	FolderRef string // opaque folder reference (absolute path)
	Shuffled  bool
	Order     int // position among sibling galleries
}

// DB is the SQLite-backed record store.
type DB struct {
	conn *sql.DB
}

func NewDB() *DB {
	return &DB{}
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Performance Tuning
	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return err
	}

	// Schema - single galleries table, created on first use
	query := `
	CREATE TABLE IF NOT EXISTS galleries (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		folder TEXT NOT NULL,
		shuffled INTEGER NOT NULL DEFAULT 0,
		ord INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA user_version = " + strconv.Itoa(schemaVersion) + ";"); err != nil {
		return err
	}

	d.conn = db
	debug.Log(debug.STORE, "Opened record store at %s", dbPath)
	return nil
}

// Put upserts the full record keyed by its ID.
func (d *DB) Put(rec Record) error {
	_, err := d.conn.Exec(
		"INSERT OR REPLACE INTO galleries (id, name, folder, shuffled, ord) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.Name, rec.FolderRef, boolToInt(rec.Shuffled), rec.Order,
	)
	if err == nil {
		debug.Log(debug.STORE, "Saved gallery record id=%d name=%q ord=%d", rec.ID, rec.Name, rec.Order)
	}
	return err
}

// GetAll returns every record in insertion (id) order. Callers sort by the
// Order field; id order breaks ties.
func (d *DB) GetAll() ([]Record, error) {
	rows, err := d.conn.Query("SELECT id, name, folder, shuffled, ord FROM galleries ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var shuffled int
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.FolderRef, &shuffled, &rec.Order); err != nil {
			return nil, err
		}
		rec.Shuffled = shuffled != 0
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes the record with the given id. Deleting a missing id is not
// an error.
func (d *DB) Delete(id int64) error {
	_, err := d.conn.Exec("DELETE FROM galleries WHERE id = ?", id)
	if err == nil {
		debug.Log(debug.STORE, "Deleted gallery record id=%d", id)
	}
	return err
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
