// Package registry implements a local catalog of OpenCLI documents stored
// in SQLite and keyed by content fingerprint.
//
// The registry stores each document's canonical JSON body together with a
// few identifying columns for listing. Put is idempotent: storing a
// document whose fingerprint is already present returns the existing entry.
package registry

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openclispec/opencli-go/core/cache"
	cerrors "github.com/openclispec/opencli-go/core/errors"
	"github.com/openclispec/opencli-go/core/fingerprint"
	"github.com/openclispec/opencli-go/core/opencli"
	"github.com/openclispec/opencli-go/core/sqlite"
)

// ErrNotFound indicates the requested fingerprint is not in the registry.
var ErrNotFound = errors.New("document not found")

// docCacheSize bounds the number of decoded documents kept in memory.
const docCacheSize = 64

const schema = `CREATE TABLE IF NOT EXISTS documents (
	fingerprint TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	version     TEXT NOT NULL,
	opencli     TEXT NOT NULL,
	import_id   TEXT NOT NULL,
	imported_at TEXT NOT NULL,
	body        BLOB NOT NULL
)`

// Entry describes one registered document.
type Entry struct {
	// Fingerprint is the BLAKE3 digest of the document's canonical JSON body.
	Fingerprint string `json:"fingerprint"`

	// Title and Version identify the CLI the document describes.
	Title   string `json:"title"`
	Version string `json:"version"`

	// Opencli is the OpenCLI version number carried by the document.
	Opencli string `json:"opencli"`

	// ImportID tags the Put call that created this entry.
	ImportID string `json:"import_id"`

	// ImportedAt is when the entry was created, in UTC.
	ImportedAt time.Time `json:"imported_at"`
}

// Registry is a handle to an open registry database.
type Registry struct {
	db   *sql.DB
	docs *cache.LRU[string, *opencli.Document]
}

// Open opens (creating if necessary) the registry database at path.
func Open(path string) (*Registry, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to open registry database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, cerrors.Wrap(err, "failed to initialize registry schema")
	}
	return &Registry{
		db:   db,
		docs: cache.New[string, *opencli.Document](docCacheSize),
	}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Put stores a document and returns its entry. If a document with the same
// fingerprint is already registered, the existing entry is returned and
// nothing is written.
func (r *Registry) Put(doc *opencli.Document) (*Entry, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to encode document")
	}
	fp := fingerprint.SumBytes(body).BLAKE3

	if existing, err := r.entry(fp); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	e := Entry{
		Fingerprint: fp,
		Title:       doc.Info.Title,
		Version:     doc.Info.Version,
		Opencli:     doc.Opencli,
		ImportID:    uuid.NewString(),
		ImportedAt:  time.Now().UTC().Truncate(time.Second),
	}
	_, err = r.db.Exec(
		`INSERT INTO documents (fingerprint, title, version, opencli, import_id, imported_at, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Fingerprint, e.Title, e.Version, e.Opencli, e.ImportID,
		e.ImportedAt.Format(time.RFC3339), body,
	)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to store document")
	}
	return &e, nil
}

// Get returns the document registered under the given fingerprint.
func (r *Registry) Get(fp string) (*opencli.Document, error) {
	if doc, ok := r.docs.Get(fp); ok {
		return doc, nil
	}
	var body []byte
	err := r.db.QueryRow(`SELECT body FROM documents WHERE fingerprint = ?`, fp).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to read document")
	}
	doc, err := opencli.LoadBytes(body)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to decode stored document")
	}
	r.docs.Put(fp, doc)
	return doc, nil
}

// Entry returns the registry entry for the given fingerprint.
func (r *Registry) Entry(fp string) (*Entry, error) {
	return r.entry(fp)
}

// List returns all entries ordered by import time, then title.
func (r *Registry) List() ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT fingerprint, title, version, opencli, import_id, imported_at
		 FROM documents ORDER BY imported_at, title`)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to list documents")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, cerrors.Wrap(err, "failed to list documents")
	}
	return entries, nil
}

// Remove deletes the entry with the given fingerprint.
func (r *Registry) Remove(fp string) error {
	res, err := r.db.Exec(`DELETE FROM documents WHERE fingerprint = ?`, fp)
	if err != nil {
		return cerrors.Wrap(err, "failed to remove document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return cerrors.Wrap(err, "failed to remove document")
	}
	if n == 0 {
		return ErrNotFound
	}
	r.docs.Remove(fp)
	return nil
}

func (r *Registry) entry(fp string) (*Entry, error) {
	row := r.db.QueryRow(
		`SELECT fingerprint, title, version, opencli, import_id, imported_at
		 FROM documents WHERE fingerprint = ?`, fp)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func scanEntry(scan func(...any) error) (*Entry, error) {
	var e Entry
	var importedAt string
	if err := scan(&e.Fingerprint, &e.Title, &e.Version, &e.Opencli, &e.ImportID, &importedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, cerrors.Wrap(err, "failed to scan registry entry")
	}
	t, err := time.Parse(time.RFC3339, importedAt)
	if err != nil {
		return nil, cerrors.Wrap(err, "failed to parse import time")
	}
	e.ImportedAt = t
	return &e, nil
}
