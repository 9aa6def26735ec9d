// Package database implements manifest storage on a relational database
// over a MySQL connection. Manifests are stored as canonical JSON bodies
// keyed by id; listings decode each body to derive the manifest kind.
package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/provenact/provenact/errs"
	"github.com/provenact/provenact/manifest"
	"github.com/provenact/provenact/storage"
)

func init() {
	storage.Register("database", func(opts storage.Options) (storage.Backend, error) {
		return Open(opts.URL)
	})
}

const schema = `CREATE TABLE IF NOT EXISTS manifests (
	id         VARCHAR(191) PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	body       LONGTEXT     NOT NULL,
	created_at TIMESTAMP    NOT NULL
)`

// Backend persists manifests in a manifests table.
type Backend struct {
	db *sql.DB
}

// Open connects with a DSN and ensures the manifests table exists.
func Open(dsn string) (*Backend, error) {
	dsn, err := withParseTime(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to open database")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.KindStorage, err, "database unreachable")
	}
	b := &Backend{db: db}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrap(errs.KindStorage, err, "failed to create manifests table")
	}
	return b, nil
}

// NewWithDB wraps an existing connection without running migrations.
func NewWithDB(db *sql.DB) *Backend { return &Backend{db: db} }

// withParseTime forces parseTime on the DSN. Without it the driver hands
// Scan TIMESTAMP columns as []byte and listing fails on the created_at
// column.
func withParseTime(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", errs.Wrap(errs.KindValidation, err, "invalid database DSN")
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (b *Backend) Close() error { return b.db.Close() }

func (b *Backend) Store(id string, m *manifest.Manifest) error {
	body, err := m.CanonicalJSON()
	if err != nil {
		return err
	}
	_, err = b.db.Exec(
		`INSERT INTO manifests (id, name, body, created_at) VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE name = VALUES(name), body = VALUES(body)`,
		id, m.Title, body, m.CreatedAt.UTC())
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to store manifest %s", id)
	}
	return nil
}

func (b *Backend) Retrieve(id string) (*manifest.Manifest, error) {
	var body []byte
	err := b.db.QueryRow(`SELECT body FROM manifests WHERE id = ?`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to retrieve manifest %s", id)
	}
	var m manifest.Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errs.Wrap(errs.KindSerialization, err, "failed to decode manifest %s", id)
	}
	return &m, nil
}

func (b *Backend) List() ([]storage.Metadata, error) {
	rows, err := b.db.Query(`SELECT id, name, body, created_at FROM manifests ORDER BY created_at`)
	if err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to list manifests")
	}
	defer rows.Close()

	var out []storage.Metadata
	for rows.Next() {
		var (
			id, name  string
			body      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &name, &body, &createdAt); err != nil {
			return nil, errs.Wrap(errs.KindStorage, err, "failed to scan manifest row")
		}
		kind := manifest.KindUnknown
		var m manifest.Manifest
		if err := json.Unmarshal(body, &m); err == nil {
			kind = manifest.InferKind(&m)
		}
		out = append(out, storage.Metadata{ID: id, Name: name, Kind: kind, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindStorage, err, "failed to list manifests")
	}
	return out, nil
}

func (b *Backend) Delete(id string) error {
	res, err := b.db.Exec(`DELETE FROM manifests WHERE id = ?`, id)
	if err != nil {
		return errs.Wrap(errs.KindStorage, err, "failed to delete manifest %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.Wrap(errs.KindStorage, storage.ErrNotFound, "manifest %s", id)
	}
	return nil
}
