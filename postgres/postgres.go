// Package postgres provides PostgreSQL implementations of the domain
// store interfaces.
//
// Records and reports are stored as JSONB documents keyed by id, with the
// sort column (inspection date, week start) lifted out of the document so
// ordering stays in SQL.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waichung/safetyhub"
)

// DB wraps the connection pool and exposes the domain stores.
type DB struct {
	pool *pgxpool.Pool

	InspectionStore safetyhub.InspectionStore
	ReportStore     safetyhub.ReportStore
	SettingsStore   safetyhub.SettingsStore
}

// NewDB creates a database wrapper with all stores initialized.
func NewDB(pool *pgxpool.Pool) *DB {
	db := &DB{
		pool: pool,
	}
	db.InspectionStore = &InspectionStore{db: db}
	db.ReportStore = &ReportStore{db: db}
	db.SettingsStore = &SettingsStore{db: db}
	return db
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer using the stores.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
